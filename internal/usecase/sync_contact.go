package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xavierca1/contactsync/internal/entity"
	"github.com/xavierca1/contactsync/internal/infra/logger"
)

func NewSyncContactUseCase(
	directory DirectoryClient,
	store ContactStore,
	events EventPublisher,
	log zerolog.Logger,
) *SyncContactUseCase {
	return &SyncContactUseCase{
		Directory: directory,
		Store:     store,
		Events:    events,
		Log:       log,
		newRunID:  uuid.NewString,
		now:       time.Now,
	}
}

// Execute copies one directory user into the contact store. It creates the
// contact when no contact has the user's email and updates the first match
// otherwise. The first error aborts the run; nothing is rolled back because
// nothing local was changed.
func (uc *SyncContactUseCase) Execute(ctx context.Context, input SyncContactInput) (*SyncContactOutput, error) {
	if validationErrors := ValidateSyncContactInput(input); len(validationErrors) > 0 {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, e.Error())
		}
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: "validation failed: " + strings.Join(msgs, ", "),
		}
	}

	runID := input.RunID
	if runID == "" {
		runID = uc.newRunID()
	}
	log := uc.Log.With().Str("run_id", runID).Str("handle", input.Handle).Logger()

	log.Info().Bool("dry_run", input.DryRun).Msg("🔄 Starting contact sync")

	// 1. Directory user
	user, err := uc.Directory.FetchUser(ctx, input.Handle)
	if err != nil {
		return nil, fmt.Errorf("fetch directory user %q: %w", input.Handle, err)
	}

	// 2. Existing contact, keyed by email
	existing, matches, err := uc.Store.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("find contact by email: %w", err)
	}

	output := &SyncContactOutput{
		RunID:   runID,
		Handle:  input.Handle,
		DryRun:  input.DryRun,
		Matches: matches,
	}

	// 3. Create or update
	if existing == nil {
		output.Outcome = entity.OutcomeCreated
		output.Contact, err = uc.create(ctx, input, user)
	} else {
		output.Outcome = entity.OutcomeUpdated
		output.Contact, err = uc.update(ctx, input, user, existing)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("outcome", string(output.Outcome)).
		Int64("contact_id", output.Contact.ID).
		Str("email", logger.RedactEmail(output.Contact.Email)).
		Msg("🚀 Contact sync finished")

	// 4. Notify. A failed publish does not undo a contact that is already written.
	if uc.Events != nil && !input.DryRun {
		event := entity.ContactSyncedEvent{
			RunID:     runID,
			Handle:    input.Handle,
			Outcome:   output.Outcome,
			ContactID: output.Contact.ID,
			Email:     output.Contact.Email,
			SyncedAt:  uc.now().UTC(),
		}
		if err := uc.Events.PublishContactSynced(ctx, event); err != nil {
			log.Warn().Err(err).Msg("⚠️ Contact synced, but the event could not be published")
		}
	}

	return output, nil
}

func (uc *SyncContactUseCase) create(ctx context.Context, input SyncContactInput, user *entity.DirectoryUser) (*entity.Contact, error) {
	if input.DryRun {
		return &entity.Contact{Name: user.Name, Email: user.Email}, nil
	}

	contact, err := uc.Store.CreateContact(ctx, user.Name, user.Email)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// update re-submits the stored contact's own name and email unless the caller
// asked for UpdateFromDirectory.
func (uc *SyncContactUseCase) update(ctx context.Context, input SyncContactInput, user *entity.DirectoryUser, existing *entity.Contact) (*entity.Contact, error) {
	name, email := existing.Name, existing.Email
	if input.UpdateMode == UpdateFromDirectory {
		name, email = user.Name, user.Email
	}

	if input.DryRun {
		return &entity.Contact{ID: existing.ID, Name: name, Email: email}, nil
	}

	contact, err := uc.Store.UpdateContact(ctx, existing.ID, name, email)
	if err != nil {
		return nil, fmt.Errorf("update contact %d: %w", existing.ID, err)
	}
	return contact, nil
}
