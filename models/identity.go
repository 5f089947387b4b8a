package models

// IdentityState is the outcome of comparing the remote principal identity
// with the one persisted by the previous session.
type IdentityState int

const (
	// IdentityFirstSync means no identity was persisted before.
	IdentityFirstSync IdentityState = iota
	// IdentityAlreadySynced means the identity did not change.
	IdentityAlreadySynced
	// IdentityChanged means a different principal is now signed in.
	IdentityChanged
)

func (s IdentityState) String() string {
	switch s {
	case IdentityFirstSync:
		return "first_sync"
	case IdentityAlreadySynced:
		return "already_synced"
	case IdentityChanged:
		return "changed"
	default:
		return "unknown"
	}
}
