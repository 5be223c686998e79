package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMemberSecrets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "json array", raw: `["joinme","letmein"]`, want: []string{"joinme", "letmein"}},
		{name: "json string scalar", raw: `"joinme"`, want: []string{"joinme"}},
		{name: "plain text fallback", raw: `joinme`, want: []string{"joinme"}},
		{name: "broken json array falls back to literal", raw: `["joinme"`, want: []string{`["joinme"`}},
		{name: "whitespace preserved in literal", raw: ` join me `, want: []string{" join me "}},
		{name: "whitespace preserved in array", raw: `[" a ", "b"]`, want: []string{" a ", "b"}},
		{name: "number scalar yields nothing", raw: `1234`, want: nil},
		{name: "boolean scalar yields nothing", raw: `true`, want: nil},
		{name: "object yields nothing", raw: `{"a":"b"}`, want: nil},
		{name: "non-string elements skipped", raw: `["a", 42, true, {"b":1}, ["c"]]`, want: []string{"a"}},
		{name: "null yields nothing", raw: `null`, want: nil},
		{name: "empty yields nothing", raw: ``, want: nil},
		{name: "empty and duplicate elements dropped", raw: `["", "a", "a", null]`, want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseMemberSecrets(tt.raw)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSecretConfiguration_Matching(t *testing.T) {
	t.Parallel()

	cfg := NewSecretConfiguration("open sesame", `["joinme","letmein"]`)

	assert.True(t, cfg.MatchesAdmin("open sesame"))
	assert.False(t, cfg.MatchesAdmin("open sesame "))
	assert.False(t, cfg.MatchesAdmin("Open Sesame"))
	assert.False(t, cfg.MatchesAdmin("joinme"))

	assert.True(t, cfg.MatchesMember("joinme"))
	assert.True(t, cfg.MatchesMember("letmein"))
	assert.False(t, cfg.MatchesMember(" joinme"))
	assert.False(t, cfg.MatchesMember("open sesame"))
}

func TestSecretConfiguration_NumericSecretsNeverMatch(t *testing.T) {
	t.Parallel()

	cfg := NewSecretConfiguration("", `[123, "456"]`)
	assert.False(t, cfg.MatchesMember("123"))
	assert.True(t, cfg.MatchesMember("456"))

	assert.False(t, NewSecretConfiguration("", `123`).MatchesMember("123"))
	// quoted, the same digits are a string secret
	assert.True(t, NewSecretConfiguration("", `"123"`).MatchesMember("123"))
}

func TestSecretConfiguration_EmptyNeverMatches(t *testing.T) {
	t.Parallel()

	cfg := NewSecretConfiguration("", "")

	assert.False(t, cfg.HasAdminSecret())
	assert.False(t, cfg.MatchesAdmin(""))
	assert.False(t, cfg.MatchesMember(""))
}

func TestSecretConfiguration_MemberSecretsIsACopy(t *testing.T) {
	t.Parallel()

	cfg := NewSecretConfiguration("x", `["a"]`)
	got := cfg.MemberSecrets()
	got[0] = "mutated"

	assert.True(t, cfg.MatchesMember("a"))
}
