package oauth

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRefreshTokenSource(t *testing.T) {
	var calls int

	ts := RefreshTokenSource(&oauth2.Token{RefreshToken: "r1"}, func(token *oauth2.Token) (*oauth2.Token, error) {
		calls++
		require.Equal(t, "r1", token.RefreshToken)

		return &oauth2.Token{
			AccessToken: "a1",
			Expiry:      time.Now().Add(time.Hour),
		}, nil
	})

	token, err := ts.Token()
	require.NoError(t, err)
	require.Equal(t, "a1", token.AccessToken)
	require.Equal(t, "r1", token.RefreshToken, "refresh token must survive")

	_, err = ts.Token()
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestRefreshTokenSourceExpiry(t *testing.T) {
	var calls int

	expiry := time.Time{}
	ts := RefreshTokenSource(nil, func(token *oauth2.Token) (*oauth2.Token, error) {
		calls++
		return &oauth2.Token{AccessToken: "a", Expiry: expiry}, nil
	})

	// no expiry
	for i := 0; i < 3; i++ {
		_, err := ts.Token()
		require.NoError(t, err)
	}
	require.Equal(t, 1, calls)

	// inside safety margin
	ts = RefreshTokenSource(&oauth2.Token{AccessToken: "a", Expiry: time.Now().Add(expiryDelta / 2)}, func(token *oauth2.Token) (*oauth2.Token, error) {
		calls++
		return &oauth2.Token{AccessToken: "b", Expiry: time.Now().Add(time.Hour)}, nil
	})

	token, err := ts.Token()
	require.NoError(t, err)
	require.Equal(t, "b", token.AccessToken)
	require.Equal(t, 2, calls)
}

func TestRefreshTokenSourceError(t *testing.T) {
	ts := RefreshTokenSource(nil, func(token *oauth2.Token) (*oauth2.Token, error) {
		return nil, errors.New("invalid_grant")
	})

	_, err := ts.Token()
	require.Error(t, err)
}

func TestTokenUnmarshal(t *testing.T) {
	var token Token
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"a","refresh_token":"r","expires_in":3600,"id_token":"i"}`), &token))

	require.Equal(t, "a", token.AccessToken)
	require.Equal(t, "r", token.RefreshToken)
	require.Equal(t, "i", token.Extra("id_token"))
	require.WithinDuration(t, time.Now().Add(time.Hour), token.Expiry, time.Minute)
	require.Equal(t, "a", AsOAuth2(&token).AccessToken)

	err := json.Unmarshal([]byte(`{"error":"invalid_grant","error_description":"token expired"}`), &token)
	require.EqualError(t, err, "invalid_grant: token expired")
}
