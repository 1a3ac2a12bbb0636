package fallback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/fallback"
)

func TestValidateEmailData_MissingRequiredIsWarning(t *testing.T) {
	t.Parallel()

	r := fallback.New()
	result := r.ValidateEmailData(emailctx.Variables{}, []string{"user_name", "trial_days_remaining"})

	assert.True(t, result.Valid, "warnings must never fail validation")
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "user_name")
	assert.Contains(t, result.Warnings[0], "Friend")
}

func TestValidateEmailData_MalformedEmailIsError(t *testing.T) {
	t.Parallel()

	r := fallback.New()
	result := r.ValidateEmailData(emailctx.Variables{"user_email": "not-an-email"}, nil)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "not-an-email")
}

func TestValidateEmailData_ValidEmail(t *testing.T) {
	t.Parallel()

	r := fallback.New()
	result := r.ValidateEmailData(emailctx.Variables{"user_email": "sarah@example.com"}, nil)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateEmailData_MalformedLinkIsError(t *testing.T) {
	t.Parallel()

	r := fallback.New()
	result := r.ValidateEmailData(emailctx.Variables{"story_link": "not a url"}, nil)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "story_link")
}

func TestValidateEmailData_PlaceholderLinkAllowed(t *testing.T) {
	t.Parallel()

	r := fallback.New()
	result := r.ValidateEmailData(emailctx.Variables{
		"story_link":          "#",
		"create_story_link":   "https://storybud.com/stories/create",
		"browse_stories_link": "",
	}, nil)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}
