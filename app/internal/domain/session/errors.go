package session

import "errors"

var (
	ErrNoSession         = errors.New("no session")
	ErrInvalidCredential = errors.New("invalid credential")
)
