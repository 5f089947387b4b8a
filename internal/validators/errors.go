package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyRecordID       = errors.New("record id is required")
	ErrEmptyPayload        = errors.New("payload is required")
	ErrTooManyPayloadKeys  = errors.New("payload has too many keys")
	ErrInvalidPayloadKey   = errors.New("invalid payload key")
	ErrInvalidNotification = errors.New("invalid notification reason")
)
