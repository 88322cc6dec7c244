package qrcode

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventID    = "22222222-2222-2222-2222-222222222222"
	testIdentifier = "44444444-4444-4444-4444-444444444444"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, tokenType := range []TokenType{TypeActivity, TypeUser} {
		token := Encode(tokenType, testEventID, testIdentifier)

		assert.True(t, HasTokenPrefix(token))

		payload, ok := Decode(token)
		require.True(t, ok)
		assert.Equal(t, PayloadVersion, payload.Version)
		assert.Equal(t, tokenType, payload.Type)
		assert.Equal(t, testEventID, payload.EventID)
		assert.Equal(t, testIdentifier, payload.Identifier)
	}
}

func TestEncodeWireFormat(t *testing.T) {
	token := Encode(TypeActivity, testEventID, testIdentifier)

	require.True(t, HasTokenPrefix(token))
	raw, err := base64.RawURLEncoding.DecodeString(token[len(TokenPrefix):])
	require.NoError(t, err)

	// Field order and shortened keys are part of the wire format: tokens are
	// rendered into printed QR material and decoded by other consumers.
	assert.Equal(t,
		`{"v":1,"t":"activity","e":"22222222-2222-2222-2222-222222222222","i":"44444444-4444-4444-4444-444444444444"}`,
		string(raw))
	assert.NotContains(t, token, "=", "tokens use unpadded base64url")
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	valid := Encode(TypeUser, testEventID, testIdentifier)

	encode := func(jsonPayload string) string {
		return TokenPrefix + base64.RawURLEncoding.EncodeToString([]byte(jsonPayload))
	}

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no prefix", valid[len(TokenPrefix):]},
		{"wrong prefix", "cvx2_" + valid[len(TokenPrefix):]},
		{"prefix only", TokenPrefix},
		{"not base64", TokenPrefix + "!!!not-base64!!!"},
		{"padded base64", TokenPrefix + base64.URLEncoding.EncodeToString([]byte(`{"v":1}`))},
		{"not json", encode("plain text")},
		{"json array", encode(`[1,2,3]`)},
		{"wrong version", encode(`{"v":2,"t":"user","e":"` + testEventID + `","i":"` + testIdentifier + `"}`)},
		{"missing version", encode(`{"t":"user","e":"` + testEventID + `","i":"` + testIdentifier + `"}`)},
		{"unknown type", encode(`{"v":1,"t":"sponsor","e":"` + testEventID + `","i":"` + testIdentifier + `"}`)},
		{"missing type", encode(`{"v":1,"e":"` + testEventID + `","i":"` + testIdentifier + `"}`)},
		{"event not a uuid", encode(`{"v":1,"t":"user","e":"not-a-uuid","i":"` + testIdentifier + `"}`)},
		{"identifier not a uuid", encode(`{"v":1,"t":"user","e":"` + testEventID + `","i":"123"}`)},
		{"missing identifier", encode(`{"v":1,"t":"user","e":"` + testEventID + `"}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Decode(tc.token)
			assert.False(t, ok)
		})
	}
}

func TestDecodeIgnoresExtraFields(t *testing.T) {
	token := TokenPrefix + base64.RawURLEncoding.EncodeToString(
		[]byte(`{"v":1,"t":"user","e":"`+testEventID+`","i":"`+testIdentifier+`","x":"extra"}`))

	payload, ok := Decode(token)
	require.True(t, ok, "unknown fields are forward-compatible noise")
	assert.Equal(t, TypeUser, payload.Type)
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID(testEventID))
	assert.True(t, IsUUID("ABCDEF01-2345-6789-ABCD-EF0123456789"), "uppercase hex is canonical too")

	// Shapes uuid.Parse would accept but printed legacy codes never used.
	assert.False(t, IsUUID("{22222222-2222-2222-2222-222222222222}"))
	assert.False(t, IsUUID("urn:uuid:22222222-2222-2222-2222-222222222222"))
	assert.False(t, IsUUID("22222222222222222222222222222222"))

	assert.False(t, IsUUID(""))
	assert.False(t, IsUUID("22222222-2222-2222-2222-22222222222"))
	assert.False(t, IsUUID("22222222-2222-2222-2222-222222222222 "))
	assert.False(t, IsUUID("g2222222-2222-2222-2222-222222222222"))
}

func TestBuildURL(t *testing.T) {
	url := BuildURL("https://app.conexa.events/", TypeActivity, testEventID, testIdentifier)

	expected := "https://app.conexa.events/code/" + Encode(TypeActivity, testEventID, testIdentifier)
	assert.Equal(t, expected, url)

	// And the produced URL survives a round trip through Extract and Decode.
	payload, ok := Decode(Extract(url))
	require.True(t, ok)
	assert.Equal(t, testEventID, payload.EventID)
}
