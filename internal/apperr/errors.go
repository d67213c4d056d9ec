package apperr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrParse              = errors.New("malformed note")
	ErrCollisionExhausted = errors.New("id collision space exhausted")
)
