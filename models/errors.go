package models

import "errors"

// ErrPayloadFieldType is returned by ApplyPayload implementations when a
// payload value cannot be converted to the field's type.
var ErrPayloadFieldType = errors.New("payload field has unexpected type")
