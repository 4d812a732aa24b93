package services

import "errors"

// Errors shared across services and the HTTP mapping layer.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrTokenRevoked       = errors.New("token has been revoked")

	ErrInvalidFormat      = errors.New("format must be single or double")
	ErrFormatMismatch     = errors.New("format does not match the championship format")
	ErrRegistrationClosed = errors.New("registration is closed once the bracket has been generated")

	ErrBracketAlreadyExists = errors.New("bracket has already been generated for this championship")
	ErrWinnerNotInMatch     = errors.New("winner must be one of the match teams")
	ErrMatchAlreadyScored   = errors.New("match result has already been registered")

	ErrLogoContentType = errors.New("logo must be a png or jpeg image")
)
