package domain

import "errors"

var (
	// ErrURLNotFound means no link exists for a short code.
	ErrURLNotFound = errors.New("short URL not found")

	// ErrURLGone means the link exists but is expired or deactivated.
	ErrURLGone = errors.New("short URL is no longer available")

	// ErrCodeGenerationExhausted means the unique-code retry bound was hit.
	ErrCodeGenerationExhausted = errors.New("short code generation exhausted retries")

	// ErrAliasTaken means a requested custom alias already maps to a link.
	ErrAliasTaken = errors.New("custom alias is already taken")

	// ErrRateLimitExceeded signals the caller to reject the request.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserExists         = errors.New("username or email already registered")
	ErrInactiveUser       = errors.New("inactive user")
)
