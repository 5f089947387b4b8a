package adapter

import "errors"

var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("client unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("conflict")
	ErrGone               = errors.New("resource gone")
	ErrTooManyRequests    = errors.New("too many requests")
	ErrServerUnavailable  = errors.New("server unavailable")
	ErrTransport          = errors.New("transport error")
	ErrEmptyRecordID      = errors.New("empty record id")
	ErrInvalidAddress     = errors.New("invalid adapter address")
	ErrUnexpectedResponse = errors.New("unexpected response")
)
