package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrSessionEmpty       = errors.New("session path cannot be empty")
	ErrInvalidLogMode     = errors.New("invalid log mode (want off, dev or prod)")
)
