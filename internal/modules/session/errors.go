package session

import "errors"

var (
	ErrAccountNotFound     = errors.New("account does not exist")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("refresh token is expired or used")
)
