package entity

import "errors"

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidIdentity    = errors.New("invalid identity")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
