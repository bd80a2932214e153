package relay

import (
	"net/url"
	"regexp"
	"strings"
)

var reLink = regexp.MustCompile(`(?i)https://(?:[\w-]+\.)+[a-z]{2,6}(?:/[^/\s]+)+`)

// ExtractURL returns the first https link in text with its fragment removed and
// its query parameters sorted by key. ok is false when there is no usable link.
func ExtractURL(text string) (string, bool) {
	match := reLink.FindString(text)
	if match == "" {
		return "", false
	}

	decoded, err := url.PathUnescape(match)
	if err != nil {
		return "", false
	}

	u, err := url.Parse(strings.TrimSpace(decoded))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}

	u.Fragment = ""
	u.RawFragment = ""
	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}
	return u.String(), true
}
