package domain

import "errors"

var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNetwork       = errors.New("upstream fetch failed")
	ErrConfiguration = errors.New("missing required configuration")
)
