package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultSessionTTL    = 30 * time.Minute
	SessionSweepInterval = 1 * time.Minute
)

const (
	RecaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
)
