package constants

import "errors"

// Configuration errors.
var (
	ErrNoServersConfigured = errors.New("no servers configured, use 'mas servers add' to add one")
	ErrServerNotFound      = errors.New("server profile not found")
	ErrServerExists        = errors.New("server profile already exists")
	ErrServerNameRequired  = errors.New("server name is required")
	ErrUnknownStoreType    = errors.New("unknown profile store type")
	ErrNATSURLRequired     = errors.New("NATS URL is required for the nats profile store")
	ErrStorePathRequired   = errors.New("path is required for the file profile store")
)

// Validation errors.
var (
	ErrInvalidUUID         = errors.New("invalid UUID")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidParameter    = errors.New("invalid parameter, expected key=value")
	ErrFilterNotBoolean    = errors.New("filter expression must return a boolean")
)
