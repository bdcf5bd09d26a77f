package util

import (
	"crypto/tls"
	"strings"
)

// DefaultScheme prepends given scheme to uri if uri has none
func DefaultScheme(uri, scheme string) string {
	if !strings.Contains(uri, "://") {
		uri = scheme + "://" + uri
	}

	return uri
}

// InsecureTLS returns a TLS config that skips certificate verification
func InsecureTLS() *tls.Config {
	return &tls.Config{InsecureSkipVerify: true}
}
