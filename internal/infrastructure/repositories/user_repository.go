package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Filichkin/SA-RAG/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID              uint      `gorm:"primaryKey"`
	Email           string    `gorm:"uniqueIndex;size:255"`
	FirstName       string    `gorm:"size:100"`
	LastName        string    `gorm:"size:100"`
	Phone           string    `gorm:"size:32"`
	PasswordHash    string    `gorm:"column:hashed_password"`
	TokenVersion    int       `gorm:"not null;default:1"`
	IsActive        bool      `gorm:"index"`
	IsSuperuser     bool      `gorm:"not null;default:false"`
	IsAdministrator bool      `gorm:"not null;default:false"`
	IsDriver        bool      `gorm:"not null;default:false"`
	IsAssistant     bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if dbUser.TokenVersion == 0 {
		dbUser.TokenVersion = 1
	}
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.TokenVersion = dbUser.TokenVersion
	return nil
}

// FindByEmail implements domain.UserRepository. The lookup is
// case-insensitive so login does not depend on how the address was typed.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// List implements domain.UserRepository, newest accounts first
func (r *UserRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// Delete implements domain.UserRepository. One-time codes cascade via
// the foreign key, but the delete is issued explicitly as well so the
// invariant holds on stores without FK enforcement (sqlite tests).
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&DBTwoFactorCode{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&DBUser{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

// UpdatePassword implements domain.UserRepository. The hash swap and the
// version bump land in one conditional UPDATE: if another change won the
// race, zero rows match and the caller gets ErrConcurrentUpdate instead
// of a lost update.
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, newHash string, fromVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&DBUser{}).
		Where("id = ? AND token_version = ?", userID, fromVersion).
		Updates(map[string]interface{}{
			"hashed_password": newHash,
			"token_version":   fromVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

// BumpTokenVersion implements domain.UserRepository
func (r *UserRepositoryImpl) BumpTokenVersion(ctx context.Context, userID uint, fromVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&DBUser{}).
		Where("id = ? AND token_version = ?", userID, fromVersion).
		Update("token_version", fromVersion+1)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Phone:           user.Phone,
		PasswordHash:    user.PasswordHash,
		TokenVersion:    user.TokenVersion,
		IsActive:        user.IsActive,
		IsSuperuser:     user.IsSuperuser,
		IsAdministrator: user.IsAdministrator,
		IsDriver:        user.IsDriver,
		IsAssistant:     user.IsAssistant,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:              dbUser.ID,
		Email:           dbUser.Email,
		FirstName:       dbUser.FirstName,
		LastName:        dbUser.LastName,
		Phone:           dbUser.Phone,
		PasswordHash:    dbUser.PasswordHash,
		TokenVersion:    dbUser.TokenVersion,
		IsActive:        dbUser.IsActive,
		IsSuperuser:     dbUser.IsSuperuser,
		IsAdministrator: dbUser.IsAdministrator,
		IsDriver:        dbUser.IsDriver,
		IsAssistant:     dbUser.IsAssistant,
		CreatedAt:       dbUser.CreatedAt,
		UpdatedAt:       dbUser.UpdatedAt,
	}
}
