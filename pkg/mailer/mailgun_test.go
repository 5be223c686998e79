package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailgun_RequiresConfiguration(t *testing.T) {
	_, err := NewMailgun("", "key", "board@example.com", "")
	assert.ErrorIs(t, err, ErrMailgunNotConfigured)
	_, err = NewMailgun("mg.example.com", "key", "", "")
	assert.ErrorIs(t, err, ErrMailgunNotConfigured)

	m, err := NewMailgun("mg.example.com", "key", "board@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "board@example.com", m.From)
	assert.Equal(t, []string{"clubhouse"}, m.Tags)
}
