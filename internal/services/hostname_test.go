package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabHostname(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		valid    bool
	}{
		{"https://a.com/x", "a.com", true},
		{"https://Mail.Google.com:8443/inbox", "mail.google.com", true},
		{"chrome://newtab/", "newtab", true},
		{"about:blank", "", true},
		{"http://[::1]:8080/", "[::1]", true},
		{"https://a.com/%zz", "a.com", true},
		{"https://a.com/search?q=100%", "a.com", true},
		{"https://A.com#frag%zz", "a.com", true},
		{"", "", false},
		{"a.com/x", "", false},
		{"http://bad host/", "", false},
		{"http://a%zz.com/", "", false},
	}
	for _, tt := range tests {
		host, err := tabHostname(tt.url)
		if !tt.valid {
			assert.ErrorIs(t, err, ErrInvalidTabURL, tt.url)
			continue
		}
		assert.NoError(t, err, tt.url)
		assert.Equal(t, tt.expected, host, tt.url)
	}
}
