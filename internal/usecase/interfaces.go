package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/xavierca1/contactsync/internal/entity"
)

type DirectoryClient interface {
	FetchUser(ctx context.Context, handle string) (*entity.DirectoryUser, error)
}

type ContactStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.Contact, int, error)
	CreateContact(ctx context.Context, name, email string) (*entity.Contact, error)
	UpdateContact(ctx context.Context, id int64, name, email string) (*entity.Contact, error)
}

type EventPublisher interface {
	PublishContactSynced(ctx context.Context, event entity.ContactSyncedEvent) error
}

type SyncContactUseCase struct {
	Directory DirectoryClient
	Store     ContactStore
	Events    EventPublisher // optional
	Log       zerolog.Logger

	newRunID func() string
	now      func() time.Time
}
