package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/models"
)

// Field names accepted by RecordValidator.
const (
	FieldRecordID = "record_id"
	FieldPayload  = "payload"
	FieldReason   = "reason"
)

// Payload limits.
const (
	MaxPayloadKeys      = 256
	MaxPayloadKeyLength = 128
)

// RecordValidator validates record requests and notifications.
//
// Supported types, by value or pointer: models.CreateRecordRequest,
// models.ModifyRecordRequest, models.RemoteRecord and models.Notification.
type RecordValidator struct{}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateRecordRequest:
		return validatePayload(value.Payload)
	case *models.CreateRecordRequest:
		return validatePayload(value.Payload)

	case models.ModifyRecordRequest:
		return v.validateRecord(value.Record, fields...)
	case *models.ModifyRecordRequest:
		return v.validateRecord(value.Record, fields...)

	case models.RemoteRecord:
		return v.validateRecord(value, fields...)
	case *models.RemoteRecord:
		return v.validateRecord(*value, fields...)

	case models.Notification:
		return v.validateNotification(value, fields...)
	case *models.Notification:
		return v.validateNotification(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(record models.RemoteRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordID, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordID:
			if record.Identifier == "" {
				return ErrEmptyRecordID
			}
		case FieldPayload:
			if err := validatePayload(record.Payload); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateNotification(n models.Notification, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldReason, FieldRecordID}
	}

	for _, f := range fields {
		switch f {
		case FieldReason:
			if !n.Reason.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidNotification, n.Reason)
			}
		case FieldRecordID:
			if n.RecordID == "" {
				return ErrEmptyRecordID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validatePayload(p models.Payload) error {
	if p == nil {
		return ErrEmptyPayload
	}
	if len(p) > MaxPayloadKeys {
		return ErrTooManyPayloadKeys
	}
	for key := range p {
		if key == "" || len(key) > MaxPayloadKeyLength {
			return fmt.Errorf("%w: %q", ErrInvalidPayloadKey, key)
		}
	}
	return nil
}
