package vw

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/vwid-io/vwid/util"
	"github.com/vwid-io/vwid/util/oauth"
	"github.com/vwid-io/vwid/util/request"
	"golang.org/x/oauth2"
)

const (
	// TokenURL is the refresh token endpoint
	TokenURL = BaseURL + "/user-login/refresh/v1"

	// tokenLifetime applies when the response carries no expiry
	tokenLifetime = time.Hour
)

// ErrMissingToken indicates that no refresh token has been configured
var ErrMissingToken = errors.New("missing refresh token")

// Identity provides access tokens from a refresh token
type Identity struct {
	*request.Helper
	oauth2.TokenSource
	log     *util.Logger
	uri     string
	persist func(refresh string)
}

// NewIdentity creates VW identity. The persist callback receives rotated refresh tokens.
func NewIdentity(log *util.Logger, refresh string, persist func(string)) (*Identity, error) {
	if strings.TrimSpace(refresh) == "" {
		return nil, ErrMissingToken
	}

	log.Redact(refresh)

	v := &Identity{
		Helper:  request.NewHelper(log),
		log:     log,
		uri:     TokenURL,
		persist: persist,
	}

	v.TokenSource = oauth.RefreshTokenSource(&oauth2.Token{RefreshToken: refresh}, v.RefreshToken)

	return v, nil
}

// tokenResponse is the login service token pair
type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IDToken      string `json:"idToken"`
}

// decodeToken decodes the login service response, falling back to the OAuth2 format
func decodeToken(b []byte) (*oauth2.Token, error) {
	var res tokenResponse
	if err := json.Unmarshal(b, &res); err == nil && res.AccessToken != "" {
		tok := &oauth2.Token{
			AccessToken:  res.AccessToken,
			RefreshToken: res.RefreshToken,
			TokenType:    "Bearer",
		}

		if res.IDToken != "" {
			tok = tok.WithExtra(map[string]interface{}{"id_token": res.IDToken})
		}

		return tok, nil
	}

	var tok oauth.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, err
	}

	if tok.AccessToken == "" {
		return nil, errors.New("missing access token")
	}

	return oauth.AsOAuth2(&tok), nil
}

// RefreshToken implements oauth.TokenRefresher
func (v *Identity) RefreshToken(token *oauth2.Token) (*oauth2.Token, error) {
	req, err := request.New(http.MethodGet, v.uri, nil, request.AcceptJSON, map[string]string{
		"Authorization": "Bearer " + token.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	b, err := v.DoBody(req)
	if err != nil {
		return nil, err
	}

	tok, err := decodeToken(b)
	if err != nil {
		return nil, err
	}

	if tok.Expiry.IsZero() {
		tok.Expiry = time.Now().Add(tokenLifetime)
	}

	v.log.Redact(tok.AccessToken, tok.RefreshToken)

	if tok.RefreshToken != "" && tok.RefreshToken != token.RefreshToken && v.persist != nil {
		v.log.DEBUG.Println("refresh token rotated")
		v.persist(tok.RefreshToken)
	}

	return tok, nil
}
