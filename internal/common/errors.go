package common

import "errors"

// Session errors.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyToken       = errors.New("empty access token")
)
