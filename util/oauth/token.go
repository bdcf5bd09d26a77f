package oauth

import (
	"github.com/vwid-io/vwid/util/oauth/internal"
	"golang.org/x/oauth2"
)

// Token is an OAuth2 token that decodes expires_in and error responses
type Token = internal.Token

// AsOAuth2 returns the embedded oauth2 token
func AsOAuth2(t *Token) *oauth2.Token {
	if t == nil {
		return nil
	}

	res := t.Token
	return &res
}
