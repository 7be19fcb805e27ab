package config

import "errors"

var ErrMissingBaseURL = errors.New("base url is required")
var ErrInvalidBaseURL = errors.New("invalid base url")
var ErrInvalidForbiddenPatterns = errors.New("invalid forbidden patterns")
var ErrInvalidTimeout = errors.New("invalid duration")
var ErrEnvFileFail = errors.New("failed to load env file")
var ErrInvalidConfig = errors.New("invalid config")
