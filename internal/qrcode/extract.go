package qrcode

import (
	"net/url"
	"strings"
)

// pathKeyword is the URL path segment that precedes the code in scannable
// URLs (<base>/code/<token>).
const pathKeyword = "code"

// Extract normalizes a raw scanned value into a single code string.
//
// Scanners hand us three shapes: a bare code (legacy UUID or structured
// token), a full scannable URL, or an arbitrary URL someone pointed a camera
// at. Extract trims whitespace, keeps slash-free values as-is and otherwise
// pulls the most likely code segment out of the path: the segment after
// "code" when present, the last non-empty segment otherwise.
//
// It never fails; unusable input yields the empty string.
func Extract(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if !strings.Contains(value, "/") {
		return value
	}

	if parsed, err := url.Parse(value); err == nil {
		if segment := segmentFromPath(parsed.Path); segment != "" {
			return segment
		}
		// Scheme-relative or opaque URLs can leave the path empty.
		if parsed.Opaque != "" {
			return segmentFromPath(parsed.Opaque)
		}
	}

	return segmentFromPath(value)
}

// segmentFromPath picks the code segment out of a slash-separated path.
func segmentFromPath(path string) string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return ""
	}

	for i, s := range segments {
		if s == pathKeyword && i+1 < len(segments) {
			return segments[i+1]
		}
	}

	return segments[len(segments)-1]
}
