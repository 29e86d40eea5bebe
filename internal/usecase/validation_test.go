package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSyncContactInput(t *testing.T) {
	cases := []struct {
		handle string
		valid  bool
	}{
		{"johndoe", true},
		{"john-doe", true},
		{"JohnDoe42", true},
		{"a", true},
		{"octocat_acme", true},
		{"john-", true},
		{"john--doe", true},
		{"", false},
		{"   ", false},
		{"john doe", false},
		{"john\tdoe", false},
		{"john/../admin", false},
		{"a234567890123456789012345678901234567890", false},
	}
	for _, c := range cases {
		errs := ValidateSyncContactInput(SyncContactInput{Handle: c.handle})
		assert.Equal(t, c.valid, len(errs) == 0, "handle %q", c.handle)
	}
}

func TestValidateSyncContactInputUnknownMode(t *testing.T) {
	errs := ValidateSyncContactInput(SyncContactInput{Handle: "johndoe", UpdateMode: UpdateMode(9)})

	assert.Len(t, errs, 1)
	assert.Equal(t, "update_mode", errs[0].Field)
}
