package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	subject, text, html, err := Render(Welcome, map[string]any{
		"Name":    "Ada",
		"Email":   "ada@example.com",
		"AppName": "Clubhouse",
		"Time":    "01 January 2026, 10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Clubhouse, Ada", subject)
	assert.Contains(t, text, "ada@example.com")
	assert.Contains(t, html, "<strong>ada@example.com</strong>")
}

func TestRender_DefaultsApply(t *testing.T) {
	subject, _, _, err := Render(Welcome, map[string]any{"Name": "", "Email": "x@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the clubhouse, friend", subject)
}

func TestRender_RoleGrantedMember(t *testing.T) {
	subject, text, _, err := Render(RoleGranted, map[string]any{"Name": "Ada", "Role": "member", "AppName": "Clubhouse"})
	require.NoError(t, err)
	assert.Equal(t, "You are now a member at Clubhouse", subject)
	assert.Contains(t, text, "who wrote each message")
}

func TestRender_HTMLEscapes(t *testing.T) {
	_, _, html, err := Render(Welcome, map[string]any{"Name": "<script>", "Email": "e"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRender_Unknown(t *testing.T) {
	_, _, _, err := Render("login_otp", nil)
	assert.Error(t, err)
	assert.False(t, Known("login_otp"))
}
