// Package qrcode implements the structured QR token format and the
// normalization of raw scanner input into a single code string.
//
// A structured token is the prefix "cvx1_" followed by the base64url
// encoding (no padding) of the JSON payload:
//
//	{"v":1,"t":"activity"|"user","e":"<event uuid>","i":"<identifier uuid>"}
//
// Bare UUIDs from the two pre-token QR generations are still accepted at
// scan time; those are resolved by the scan service, not here.
package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
)

// TokenPrefix marks a structured token. Anything without it is treated as a
// legacy bare code.
const TokenPrefix = "cvx1_"

// PayloadVersion is the only payload version this codec understands.
const PayloadVersion = 1

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// TokenType discriminates what a structured token points at.
type TokenType string

const (
	TypeActivity TokenType = "activity"
	TypeUser     TokenType = "user"
)

// Valid reports whether the type is one of the two recognized variants.
func (t TokenType) Valid() bool {
	return t == TypeActivity || t == TypeUser
}

// Payload is the decoded content of a structured token. It is built at QR
// render time and consumed at scan time; it is never persisted.
type Payload struct {
	Version    int       `json:"v"`
	Type       TokenType `json:"t"`
	EventID    string    `json:"e"`
	Identifier string    `json:"i"`
}

// IsUUID reports whether s has the canonical 8-4-4-4-12 hexadecimal UUID
// shape. Other spellings accepted by uuid.Parse (braces, urn prefix, no
// hyphens) are deliberately rejected: legacy codes were always printed in
// canonical form.
func IsUUID(s string) bool {
	return uuidRegex.MatchString(s)
}

// Encode builds a structured token for the given type, event and identifier.
// The caller is responsible for passing UUID-shaped ids; Encode does not
// re-validate them.
func Encode(t TokenType, eventID, identifier string) string {
	payload := Payload{Version: PayloadVersion, Type: t, EventID: eventID, Identifier: identifier}
	raw, _ := json.Marshal(payload)
	return TokenPrefix + base64.RawURLEncoding.EncodeToString(raw)
}

// Decode parses a structured token. It returns ok=false for anything that is
// not a well-formed, version-1, correctly typed, UUID-scoped token; it never
// returns an error. Callers treat ok=false as "fall back to legacy handling".
func Decode(token string) (Payload, bool) {
	encoded, hasPrefix := strings.CutPrefix(token, TokenPrefix)
	if !hasPrefix || encoded == "" {
		return Payload{}, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, false
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Payload{}, false
	}

	if payload.Version != PayloadVersion {
		return Payload{}, false
	}
	if !payload.Type.Valid() {
		return Payload{}, false
	}
	if !IsUUID(payload.EventID) || !IsUUID(payload.Identifier) {
		return Payload{}, false
	}

	return payload, true
}

// HasTokenPrefix reports whether the code claims to be a structured token.
// A code that carries the prefix but fails Decode is corrupted, not legacy.
func HasTokenPrefix(code string) bool {
	return strings.HasPrefix(code, TokenPrefix)
}

// BuildURL returns the full scannable URL for a token: <base>code/<token>.
// baseURL is expected to end with a slash.
func BuildURL(baseURL string, t TokenType, eventID, identifier string) string {
	return baseURL + "code/" + Encode(t, eventID, identifier)
}
