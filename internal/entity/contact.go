package entity

import (
	"errors"
	"time"
)

// Contact is a record in the destination contact store (Freshdesk).
// ID is assigned by the store.
type Contact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *Contact) Validate() error {
	if c.ID <= 0 {
		return errors.New("id is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// SyncOutcome says which branch a sync run took.
type SyncOutcome string

const (
	OutcomeCreated SyncOutcome = "CREATED"
	OutcomeUpdated SyncOutcome = "UPDATED"
)

// ContactSyncedEvent is published after a successful sync run.
type ContactSyncedEvent struct {
	RunID     string      `json:"run_id"`
	Handle    string      `json:"handle"`
	Outcome   SyncOutcome `json:"outcome"`
	ContactID int64       `json:"contact_id"`
	Email     string      `json:"email"`
	SyncedAt  time.Time   `json:"synced_at"`
}
