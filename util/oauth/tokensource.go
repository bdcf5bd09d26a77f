package oauth

import (
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// expiryDelta is the safety margin before a token is considered expired
const expiryDelta = 10 * time.Second

// TokenRefresher refreshes a token
type TokenRefresher func(token *oauth2.Token) (*oauth2.Token, error)

type tokenSource struct {
	mu        sync.Mutex
	token     *oauth2.Token
	refresher TokenRefresher
}

// RefreshTokenSource creates a token source that uses the refresher to renew
// the token once it is no longer valid
func RefreshTokenSource(token *oauth2.Token, refresher TokenRefresher) oauth2.TokenSource {
	if token == nil {
		// allocate an expired token
		token = new(oauth2.Token)
	}

	return &tokenSource{token: token, refresher: refresher}
}

// valid reports whether the access token can be used. A zero expiry never expires.
func valid(token *oauth2.Token) bool {
	return token.AccessToken != "" && (token.Expiry.IsZero() || time.Until(token.Expiry) > expiryDelta)
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if valid(ts.token) {
		return ts.token, nil
	}

	token, err := ts.refresher(ts.token)
	if err != nil {
		return ts.token, err
	}

	// keep the refresh token if the server did not rotate it
	if token.RefreshToken == "" {
		token.RefreshToken = ts.token.RefreshToken
	}

	ts.token = token

	return ts.token, nil
}
