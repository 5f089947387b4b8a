// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
)

// mapAdapterError translates a RemoteInterface error into the sync
// taxonomy. The original error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrRemoteUnavailable), errors.Is(err, ErrRecordNotFound):
		return err
	case errors.Is(err, adapter.ErrNotFound), errors.Is(err, adapter.ErrGone):
		return fmt.Errorf("%w: %w", ErrRecordNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
}
