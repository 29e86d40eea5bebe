package usecase

import "github.com/xavierca1/contactsync/internal/entity"

// UpdateMode decides which values are sent when a matching contact exists.
type UpdateMode int

const (
	// UpdateKeepExisting re-submits the stored contact's own name and email.
	UpdateKeepExisting UpdateMode = iota
	// UpdateFromDirectory sends the directory user's name and email.
	UpdateFromDirectory
)

type SyncContactInput struct {
	Handle     string
	RunID      string // generated when empty
	DryRun     bool
	UpdateMode UpdateMode
}

type SyncContactOutput struct {
	RunID   string
	Handle  string
	Outcome entity.SyncOutcome
	Contact *entity.Contact
	DryRun  bool
	Matches int // contacts the store returned for the email
}
