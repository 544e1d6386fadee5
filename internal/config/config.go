package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	SessionTTL string `yaml:"session_ttl"`
	PendingTTL string `yaml:"pending_ttl"`
}

type TwoFactorConfig struct {
	CodeLength   int    `yaml:"code_length"`
	CodeTTL      string `yaml:"code_ttl"`
	ResendWindow string `yaml:"resend_window"`
	Channel      string `yaml:"channel"` // "email" or "sms"
}

type PasswordConfig struct {
	MinLength int `yaml:"min_length"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	TwoFactor TwoFactorConfig `yaml:"two_factor"`
	Password  PasswordConfig  `yaml:"password"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Twilio    TwilioConfig    `yaml:"twilio"`
}

type Config struct {
	Port             string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	SessionTTL       time.Duration
	PendingTTL       time.Duration
	CodeLength       int
	CodeTTL          time.Duration
	ResendWindow     time.Duration
	TwoFactorChannel string
	PasswordMinLen   int
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml (overridable through CONFIG_PATH) and
// applies environment overrides for the secrets.
func Load() (*Config, error) {
	path := env("CONFIG_PATH", "config/config.yml")
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessionTTL, err := parseDuration(configFile.JWT.SessionTTL, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	pendingTTL, err := parseDuration(configFile.JWT.PendingTTL, 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid pending TTL: %w", err)
	}

	codeTTL, err := parseDuration(configFile.TwoFactor.CodeTTL, 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid code TTL: %w", err)
	}

	resendWindow, err := parseDuration(configFile.TwoFactor.ResendWindow, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid resend window: %w", err)
	}

	codeLength := configFile.TwoFactor.CodeLength
	if codeLength == 0 {
		codeLength = 6
	}

	passwordMinLen := configFile.Password.MinLength
	if passwordMinLen == 0 {
		passwordMinLen = 8
	}

	channel := configFile.TwoFactor.Channel
	if channel == "" {
		channel = "email"
	}

	return &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          configFile.App.GinMode,
		DSN:              env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:        configFile.Redis.Addr,
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          configFile.Redis.DB,
		JWTSecret:        env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:        configFile.JWT.Issuer,
		SessionTTL:       sessionTTL,
		PendingTTL:       pendingTTL,
		CodeLength:       codeLength,
		CodeTTL:          codeTTL,
		ResendWindow:     resendWindow,
		TwoFactorChannel: channel,
		PasswordMinLen:   passwordMinLen,
		SMTPHost:         configFile.SMTP.Host,
		SMTPPort:         configFile.SMTP.Port,
		SMTPUsername:     env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:     env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:         configFile.SMTP.From,
		TwilioSID:        env("TWILIO_SID", configFile.Twilio.AccountSID),
		TwilioToken:      env("TWILIO_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:       configFile.Twilio.FromNumber,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
