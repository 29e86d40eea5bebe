package usecase

import (
	"fmt"
	"strings"
	"unicode"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// GitHub's own login length limit. Anything else about the charset is left to
// GitHub: managed-user logins carry underscores and old accounts may carry
// doubled or trailing hyphens.
const maxHandleLength = 39

func ValidateSyncContactInput(input SyncContactInput) []ValidationError {
	var errors []ValidationError

	handle := input.Handle
	switch {
	case strings.TrimSpace(handle) == "":
		errors = append(errors, ValidationError{"handle", "is required"})
	case len(handle) > maxHandleLength:
		errors = append(errors, ValidationError{"handle", fmt.Sprintf("must not exceed %d characters", maxHandleLength)})
	case strings.IndexFunc(handle, unicode.IsSpace) >= 0:
		errors = append(errors, ValidationError{"handle", "must not contain whitespace"})
	case strings.Contains(handle, "/"):
		errors = append(errors, ValidationError{"handle", "must not contain \"/\""})
	}

	if input.UpdateMode != UpdateKeepExisting && input.UpdateMode != UpdateFromDirectory {
		errors = append(errors, ValidationError{"update_mode", "is unknown"})
	}

	return errors
}
