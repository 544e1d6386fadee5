package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Filichkin/SA-RAG/domain"
)

// TwoFactorCodeRepositoryImpl implements domain.TwoFactorCodeRepository
// using GORM
type TwoFactorCodeRepositoryImpl struct {
	db *gorm.DB
}

// DBTwoFactorCode represents the database model for one-time login codes
type DBTwoFactorCode struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Code      string    `gorm:"size:6;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
	IsUsed    bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (DBTwoFactorCode) TableName() string {
	return "two_factor_auth_codes"
}

// NewTwoFactorCodeRepository creates a new two-factor code repository
func NewTwoFactorCodeRepository(db *gorm.DB) domain.TwoFactorCodeRepository {
	return &TwoFactorCodeRepositoryImpl{db: db}
}

// Replace implements domain.TwoFactorCodeRepository. Delete-then-insert
// runs in one transaction so a concurrent verify sees either the old
// code set or the new one, never the gap in between.
func (r *TwoFactorCodeRepositoryImpl) Replace(ctx context.Context, code *domain.TwoFactorCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", code.UserID).Delete(&DBTwoFactorCode{}).Error; err != nil {
			return err
		}

		dbCode := &DBTwoFactorCode{
			UserID:    code.UserID,
			Code:      code.Code,
			CreatedAt: code.CreatedAt,
			IsUsed:    false,
		}
		if err := tx.Create(dbCode).Error; err != nil {
			return err
		}
		code.ID = dbCode.ID
		return nil
	})
}

// FindUnused implements domain.TwoFactorCodeRepository. A missing row
// and a wrong code are indistinguishable on purpose. More than one
// matching row violates the single-active-code invariant and is treated
// as invalid, never as "pick one".
func (r *TwoFactorCodeRepositoryImpl) FindUnused(ctx context.Context, userID uint, code string) (*domain.TwoFactorCode, error) {
	var dbCodes []DBTwoFactorCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND is_used = ?", userID, code, false).
		Limit(2).
		Find(&dbCodes).Error
	if err != nil {
		return nil, err
	}
	if len(dbCodes) != 1 {
		return nil, domain.ErrCodeInvalid
	}

	dbCode := dbCodes[0]
	return &domain.TwoFactorCode{
		ID:        dbCode.ID,
		UserID:    dbCode.UserID,
		Code:      dbCode.Code,
		CreatedAt: dbCode.CreatedAt,
		IsUsed:    dbCode.IsUsed,
	}, nil
}

// MarkUsed implements domain.TwoFactorCodeRepository. The conditional
// UPDATE is the single-use guarantee: of two concurrent verifies only
// one flips the row, the other sees zero rows affected.
func (r *TwoFactorCodeRepositoryImpl) MarkUsed(ctx context.Context, codeID uint) error {
	result := r.db.WithContext(ctx).
		Model(&DBTwoFactorCode{}).
		Where("id = ? AND is_used = ?", codeID, false).
		Update("is_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCodeInvalid
	}
	return nil
}

// DeleteByUser implements domain.TwoFactorCodeRepository
func (r *TwoFactorCodeRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBTwoFactorCode{}).Error
}

// DeleteExpired implements domain.TwoFactorCodeRepository
func (r *TwoFactorCodeRepositoryImpl) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&DBTwoFactorCode{})
	return result.RowsAffected, result.Error
}
