package entity

import (
	"crypto/subtle"
	"encoding/json"
)

// SecretConfiguration holds the passphrases that unlock role escalation.
// It is built once at startup and never mutated afterwards.
//
// Matching is exact: case-sensitive, no trimming. An empty secret never matches.
type SecretConfiguration struct {
	adminSecret   string
	memberSecrets []string
}

// NewSecretConfiguration builds the configuration from the admin secret and the
// raw member secret value (see ParseMemberSecrets).
func NewSecretConfiguration(adminSecret, rawMemberSecrets string) SecretConfiguration {
	return SecretConfiguration{
		adminSecret:   adminSecret,
		memberSecrets: ParseMemberSecrets(rawMemberSecrets),
	}
}

// MemberSecrets returns a copy of the normalized member secret set.
func (s SecretConfiguration) MemberSecrets() []string {
	out := make([]string, len(s.memberSecrets))
	copy(out, s.memberSecrets)
	return out
}

// HasAdminSecret reports whether an admin secret is configured at all.
func (s SecretConfiguration) HasAdminSecret() bool { return s.adminSecret != "" }

// MatchesAdmin reports whether submitted is exactly the admin secret.
func (s SecretConfiguration) MatchesAdmin(submitted string) bool {
	return equalSecret(s.adminSecret, submitted)
}

// MatchesMember reports whether submitted is exactly one of the member secrets.
func (s SecretConfiguration) MatchesMember(submitted string) bool {
	matched := false
	for _, m := range s.memberSecrets {
		if equalSecret(m, submitted) {
			matched = true
		}
	}
	return matched
}

func equalSecret(configured, submitted string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(submitted)) == 1
}

// ParseMemberSecrets normalizes the MEMBER_SECRETS value into a set of secrets.
//
// Two branches:
//   - the value parses as JSON: an array yields its string elements, a string
//     yields itself; numbers, booleans, objects and null never equal a
//     submitted string, so they yield nothing;
//   - the value is not valid JSON: it is used verbatim as one literal secret.
//
// Empty strings are dropped.
func ParseMemberSecrets(raw string) []string {
	if raw == "" {
		return nil
	}
	var parsed json.RawMessage
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return []string{raw}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(parsed, &elems); err != nil {
		// valid JSON but not an array
		if s, ok := asJSONString(parsed); ok {
			return appendSecret(nil, s)
		}
		return nil
	}

	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if s, ok := asJSONString(e); ok {
			out = appendSecret(out, s)
		}
	}
	return out
}

func asJSONString(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

func appendSecret(set []string, s string) []string {
	if s == "" {
		return set
	}
	for _, existing := range set {
		if existing == s {
			return set
		}
	}
	return append(set, s)
}
