package account

import "errors"

var (
	ErrAccountExists   = errors.New("username or email already registered")
	ErrAccountNotFound = errors.New("account does not exist")
	ErrMissingFields   = errors.New("required fields are missing")
	ErrAvatarRequired  = errors.New("avatar image is required")
	ErrNothingToUpdate = errors.New("nothing to update")
)
