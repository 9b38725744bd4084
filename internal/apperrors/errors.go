package apperrors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrMissingImage = errors.New("an uploaded image or an image URL is required")
	ErrCorruptStore = errors.New("store file is corrupt")
)
