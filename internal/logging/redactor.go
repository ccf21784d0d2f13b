package logging

import "strings"

const redactedValue = "[REDACTED]"

// Redactor keeps the set of field names that must never reach a log
// line in the clear: the long-lived password and the values derived
// from it that an attacker could use to impersonate a party or brute
// force the password offline.
type Redactor struct {
	sensitiveKeys map[string]bool
}

// NewRedactor creates a Redactor preloaded with the SRP values that must
// never be logged: the password itself, the private key x, both
// ephemeral secrets, the shared session key, and both proofs.
func NewRedactor() *Redactor {
	return &Redactor{
		sensitiveKeys: map[string]bool{
			"password": true,
			"x":        true, // SRP private key derived from the password
			"a":        true, // client ephemeral secret
			"b":        true, // server ephemeral secret
			"k":        true, // multiplier parameter, H(N, g)
			"m1":       true, // client proof
			"m2":       true, // server proof
			"verifier": true,
		},
	}
}

// AddSensitiveKey marks an additional field name for redaction.
func (r *Redactor) AddSensitiveKey(key string) {
	r.sensitiveKeys[strings.ToLower(key)] = true
}

// RedactFields returns a copy of fields with every sensitive value
// replaced, recursing into nested maps.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))
	for k, v := range fields {
		switch {
		case r.isSensitiveKey(k):
			redacted[k] = redactedValue
		default:
			if nested, ok := v.(map[string]any); ok {
				redacted[k] = r.RedactFields(nested)
			} else {
				redacted[k] = v
			}
		}
	}
	return redacted
}

func (r *Redactor) isSensitiveKey(key string) bool {
	return r.sensitiveKeys[strings.ToLower(key)]
}
