package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMessages(t *testing.T, err error, field string) []string {
	t.Helper()
	verr, ok := err.(ErrorValidation)
	require.True(t, ok, "expected ErrorValidation, got %T", err)
	return verr.Fields[field]
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.NoError(t, ValidateUsername("a.l-i_c+e@x"))

	err := ValidateUsername("me")
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "username")[0], `"me"`)

	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername("юзер!"))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 151)))
	assert.NoError(t, ValidateUsername(strings.Repeat("a", 150)))
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("sci-fi_2"))
	assert.Error(t, ValidateSlug("no spaces"))
	assert.Error(t, ValidateSlug("юмор"))
	assert.Error(t, ValidateSlug(strings.Repeat("x", 51)))
}

func TestValidateYear(t *testing.T) {
	current := time.Now().Year()

	assert.NoError(t, ValidateYear(0))
	assert.NoError(t, ValidateYear(1984))
	assert.NoError(t, ValidateYear(current))
	assert.Error(t, ValidateYear(-1))
	assert.Error(t, ValidateYear(current+1))
}

func TestValidateScoreMessages(t *testing.T) {
	assert.NoError(t, ValidateScore(1))
	assert.NoError(t, ValidateScore(10))

	err := ValidateScore(0)
	require.Error(t, err)
	assert.Equal(t, "minimum score is 1", fieldMessages(t, err, "score")[0])

	err = ValidateScore(11)
	require.Error(t, err)
	assert.Equal(t, "maximum score is 10", fieldMessages(t, err, "score")[0])
}

func TestValidateRole(t *testing.T) {
	for _, role := range []UserRole{RoleUser, RoleModerator, RoleAdmin} {
		assert.NoError(t, ValidateRole(role))
	}
	assert.Error(t, ValidateRole(UserRole("superuser")))
}

func TestBeforeSavePromotesAdminToStaff(t *testing.T) {
	user := &User{Username: "root", Role: RoleAdmin}
	require.NoError(t, user.BeforeSave(nil))
	assert.True(t, user.IsStaff)

	plain := &User{Username: "alice", Role: RoleUser}
	require.NoError(t, plain.BeforeSave(nil))
	assert.False(t, plain.IsStaff)
}

func TestValidationErrorMessage(t *testing.T) {
	err := ErrorValidation{Fields: map[string][]string{
		"year":  {"year must be between 0 and the current year"},
		"score": {"maximum score is 10"},
	}}
	// fields are reported in stable order
	assert.Equal(t, "score: maximum score is 10, year: year must be between 0 and the current year", err.Error())
}
