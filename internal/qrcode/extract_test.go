package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	token := Encode(TypeActivity, testEventID, testIdentifier)

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"bare legacy uuid", testIdentifier, testIdentifier},
		{"bare token", token, token},
		{"surrounding whitespace", "  " + testIdentifier + "\n", testIdentifier},
		{"scan url", "https://app.conexa.events/code/" + token, token},
		{"scan url with deep path", "https://app.conexa.events/scan/code/" + token, token},
		{"code keyword beats last segment", "https://app.conexa.events/code/" + token + "/extra", token},
		{"url without keyword falls back to last segment", "https://app.conexa.events/events/" + testIdentifier, testIdentifier},
		{"trailing slash", "https://app.conexa.events/code/" + token + "/", token},
		{"path only", "/code/" + token, token},
		{"scheme relative", "//app.conexa.events/code/" + token, token},
		{"slashes but no segments", "///", ""},
		{"keyword as last segment falls back to it", "https://app.conexa.events/code", "code"},
		{"query string stays attached to nothing", "https://app.conexa.events/code/" + token + "?utm_source=qr", token},
		{"unparseable url uses naive split", "http://bad host/code/" + token, token},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Extract(tc.raw))
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	inputs := []string{
		testIdentifier,
		Encode(TypeUser, testEventID, testIdentifier),
		"https://app.conexa.events/code/" + testIdentifier,
	}

	for _, raw := range inputs {
		once := Extract(raw)
		assert.Equal(t, once, Extract(once))
	}
}
