package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// Token is an OAuth2 token which support decoding the expires_in attribute and return content errors
type Token struct {
	oauth2.Token
	ExpiresIn int64 `json:"expires_in"` // expiration time in seconds
}

// UnmarshalJSON decodes the token and turns error attributes into errors
func (t *Token) UnmarshalJSON(data []byte) error {
	var s struct {
		oauth2.Token
		IDToken   string `json:"id_token,omitempty"`
		ExpiresIn int64  `json:"expires_in,omitempty"`
		// used by VW
		Error            *string `json:"error"`
		ErrorDescription *string `json:"error_description"`
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s.Error != nil {
		if s.ErrorDescription != nil {
			return fmt.Errorf("%s: %s", *s.Error, *s.ErrorDescription)
		}
		return errors.New(*s.Error)
	}

	t.Token = s.Token
	t.ExpiresIn = s.ExpiresIn

	if t.Expiry.IsZero() && s.ExpiresIn != 0 {
		t.Expiry = time.Now().Add(time.Second * time.Duration(s.ExpiresIn))
	}

	if s.IDToken != "" {
		t.Token = *t.Token.WithExtra(map[string]interface{}{
			"id_token": s.IDToken,
		})
	}

	return nil
}
