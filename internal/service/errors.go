package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sync error taxonomy. Match with errors.Is.
var (
	// ErrRemoteUnavailable wraps transport and backend failures.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrNotYetSynced is returned by Update for a record that has no remote
	// id yet. The record stays dirty and is created by the next sync.
	ErrNotYetSynced = errors.New("record not yet synced")

	// ErrRecordNotFound means the remote id is stale or deleted on the
	// backend.
	ErrRecordNotFound = errors.New("record not found")

	// ErrCursorInvalidated is absorbed by the sync cycle and never returned
	// from Sync.
	ErrCursorInvalidated = errors.New("change cursor invalidated")

	// ErrPartialSyncFailure is matched by every *PartialSyncError.
	ErrPartialSyncFailure = errors.New("partial sync failure")
)

var (
	ErrSyncInProgress            = errors.New("sync already in progress")
	ErrInvalidRecord             = errors.New("mutation returned no record")
	ErrUnknownNotificationReason = errors.New("unknown notification reason")
	ErrEmptyRecordID             = errors.New("empty record id")
)

// Backend errors.
var (
	ErrZoneNotFound        = errors.New("zone not found")
	ErrInvalidZone         = errors.New("invalid zone name")
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrNoPrincipal         = errors.New("no principal in context")
	ErrTokenIsExpired      = errors.New("token is expired")
	ErrInvalidToken        = errors.New("token is invalid")
	ErrVersionIsNotSet     = errors.New("app version is not specified")
)

// errRemoteFetch marks failures of the fetch step of a notification so the
// router can drop them.
var errRemoteFetch = errors.New("remote fetch failed")

// PartialSyncError aggregates the per-record and feed errors of one sync
// cycle.
type PartialSyncError struct {
	Errors []error
}

func (e *PartialSyncError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%s: %d error(s): %s", ErrPartialSyncFailure, len(e.Errors), strings.Join(msgs, "; "))
}

func (e *PartialSyncError) Unwrap() []error {
	return e.Errors
}

func (e *PartialSyncError) Is(target error) bool {
	return target == ErrPartialSyncFailure
}

func newPartialSyncError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &PartialSyncError{Errors: errs}
}
