package services

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidTabURL = errors.New("invalid tab URL")

// tabHostname extracts the lower-cased hostname of a tab URL the way the
// browser reports it: IPv6 literals keep their brackets and a bad escape
// outside the authority does not invalidate the URL. URLs without a scheme
// are rejected; opaque URLs such as about:blank yield "".
func tabHostname(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidTabURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		var escErr url.EscapeError
		if !errors.As(err, &escErr) {
			return "", ErrInvalidTabURL
		}
		if u, err = parseAuthority(raw); err != nil {
			return "", ErrInvalidTabURL
		}
	}
	if u.Scheme == "" {
		return "", ErrInvalidTabURL
	}
	host := u.Hostname()
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return strings.ToLower(host), nil
}

// parseAuthority parses only scheme://authority, dropping path, query and fragment.
func parseAuthority(raw string) (*url.URL, error) {
	i := strings.Index(raw, "://")
	if i < 0 {
		return nil, ErrInvalidTabURL
	}
	rest := raw[i+3:]
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		rest = rest[:j]
	}
	return url.Parse(raw[:i+3] + rest)
}
