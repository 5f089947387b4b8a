package store

import "errors"

// Domain errors. Callers match them with [errors.Is].
var (
	// ErrRecordNotFound is returned when a record addressed by id does not
	// exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordNotStored is returned when a record without a local id is
	// passed to a method that needs one.
	ErrRecordNotStored = errors.New("record has no local id")

	// ErrDuplicateRemoteID is returned when another local record is already
	// bound to the same remote id.
	ErrDuplicateRemoteID = errors.New("remote id already bound to another record")

	// ErrZoneNotFound is returned by the backend repository for unknown
	// zones.
	ErrZoneNotFound = errors.New("zone not found")
)

// Low-level database errors wrapped around driver errors.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrDecodingPayload      = errors.New("failed to decode payload")
)
