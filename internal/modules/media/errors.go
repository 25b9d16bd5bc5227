package media

import "errors"

var (
	ErrMissingFile     = errors.New("image file is required")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrAccountNotFound = errors.New("account does not exist")
)
