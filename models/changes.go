package models

// ChangePage is one page of the incremental change feed.
type ChangePage struct {
	ChangedRecords     []RemoteRecord `json:"changed"`
	DeletedIdentifiers []string       `json:"deleted"`

	// NewCursor continues the feed after this page.
	NewCursor Cursor `json:"cursor"`

	// MorePages is true when the feed has further pages for NewCursor.
	MorePages bool `json:"more_pages"`

	// CursorInvalidated is set when the backend no longer accepts the cursor
	// the page was requested with. The client must drop it and resync from
	// a nil cursor.
	CursorInvalidated bool `json:"cursor_invalidated"`
}

// Change is one entry of the backend change log.
type Change struct {
	// Seq orders changes within a zone. It only grows.
	Seq      int64
	RecordID string

	// Deleted is true when the record no longer exists. Record then holds
	// only the identifier.
	Deleted bool
	Record  RemoteRecord
}
