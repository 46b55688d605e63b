package service

import "errors"

// Common service errors.
var (
	// ErrInvalidCredentials is returned by Authenticate for both an
	// unknown username and a wrong password. The two cases are
	// deliberately indistinguishable to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
