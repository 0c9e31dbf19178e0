package constants

import "time"

const (
	AppName    = "courtbook"
	Version    = "v0.3.0"
	LogDirName = "logs"

	// Environment variables are read as COURTBOOK_<NAME>, falling back to <NAME>
	EnvPrefix      = "COURTBOOK"
	DefaultEnvFile = ".env"

	// Keyring service name shared by every stored secret. Each secret is stored
	// under its own user key (see config.SecretKeys).
	KeyringService = AppName

	// Run lock constants
	LockfileName = "courtbook.lock"

	// Schedule grid constants
	BaseHour        = 6
	ValidHourLower  = 6
	ValidHourUpper  = 22 // exclusive: the last slot starts at 21:00
	DisabledMarker  = "disabled"
	TennisCourt     = "Tennis Ct"
	DefaultHours    = "18,19,20"
	DefaultTimezone = "America/Chicago"

	// Booking flow constants
	DaysInAdvance  = 6
	DefaultSignIn  = "07:00"
	DefaultTimeout = 60 * time.Second

	// Browser window defaults
	WindowWidth  = 1920
	WindowHeight = 1080
)
