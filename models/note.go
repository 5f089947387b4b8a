// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Note field names as they appear in the synchronized payload.
const (
	NoteFieldTitle    = "title"
	NoteFieldBody     = "body"
	NoteFieldPinned   = "pinned"
	NoteFieldPriority = "priority"
)

var noteSyncFields = []string{NoteFieldTitle, NoteFieldBody, NoteFieldPinned, NoteFieldPriority}

// Note is the demo record type synchronized by the client binary.
type Note struct {
	SyncMeta

	Title    string
	Body     string
	Pinned   bool
	Priority int64
}

// NewNote returns a blank note with default field values.
func NewNote() *Note {
	return &Note{}
}

// SyncFields implements Syncable.
func (n *Note) SyncFields() []string {
	return noteSyncFields
}

// Payload implements Syncable.
func (n *Note) Payload() Payload {
	return Payload{
		NoteFieldTitle:    n.Title,
		NoteFieldBody:     n.Body,
		NoteFieldPinned:   n.Pinned,
		NoteFieldPriority: n.Priority,
	}
}

// ApplyPayload implements Syncable.
func (n *Note) ApplyPayload(p Payload) error {
	if _, ok := p[NoteFieldTitle]; ok {
		title, ok := p.String(NoteFieldTitle)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPayloadFieldType, NoteFieldTitle)
		}
		n.Title = title
	}
	if _, ok := p[NoteFieldBody]; ok {
		body, ok := p.String(NoteFieldBody)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPayloadFieldType, NoteFieldBody)
		}
		n.Body = body
	}
	if _, ok := p[NoteFieldPinned]; ok {
		pinned, ok := p.Bool(NoteFieldPinned)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPayloadFieldType, NoteFieldPinned)
		}
		n.Pinned = pinned
	}
	if _, ok := p[NoteFieldPriority]; ok {
		priority, ok := p.Int(NoteFieldPriority)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPayloadFieldType, NoteFieldPriority)
		}
		n.Priority = priority
	}
	return nil
}
