package repository

import "errors"

// Classification sentinels wrapped by repository implementations so the
// workers can branch with errors.Is without knowing provider error types.
var (
	ErrMissingConfig = errors.New("required configuration is missing")
	ErrRateLimited   = errors.New("remote rate limit exceeded")
	ErrNotFound      = errors.New("remote event not found")
)
