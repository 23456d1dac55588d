package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errPrefixRequired     = errors.New("bucket name prefix is required")
	errPrefixInvalid      = errors.New("prefix must be lowercase alphanumeric characters or hyphens, starting with alphanumeric")
	errOutputFileRequired = errors.New("output file is required")
	errNoCommands         = errors.New("at least one request is required")
)
