package vw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vwid-io/vwid/util"
)

func TestIdentityRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, http.MethodGet, req.Method)

		switch req.Header.Get("Authorization") {
		case "Bearer refresh":
			_, _ = w.Write([]byte(`{"accessToken":"access","refreshToken":"rotated","idToken":"id"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
		}
	}))
	defer srv.Close()

	var persisted string
	id, err := NewIdentity(util.NewLogger("test"), "refresh", func(s string) { persisted = s })
	require.NoError(t, err)
	id.uri = srv.URL

	token, err := id.Token()
	require.NoError(t, err)
	require.Equal(t, "access", token.AccessToken)
	require.Equal(t, "id", token.Extra("id_token"))
	require.WithinDuration(t, time.Now().Add(tokenLifetime), token.Expiry, time.Minute)
	require.Equal(t, "rotated", persisted)

	// cached until expiry
	token, err = id.Token()
	require.NoError(t, err)
	require.Equal(t, "access", token.AccessToken)

	id2, err := NewIdentity(util.NewLogger("test"), "expired", nil)
	require.NoError(t, err)
	id2.uri = srv.URL

	_, err = id2.Token()
	require.Error(t, err)
}

func TestDecodeToken(t *testing.T) {
	token, err := decodeToken([]byte(`{"access_token":"a","refresh_token":"r","expires_in":600}`))
	require.NoError(t, err)
	require.Equal(t, "a", token.AccessToken)
	require.Equal(t, "r", token.RefreshToken)
	require.WithinDuration(t, time.Now().Add(10*time.Minute), token.Expiry, time.Minute)

	_, err = decodeToken([]byte(`{"error":"invalid_grant","error_description":"token expired"}`))
	require.EqualError(t, err, "invalid_grant: token expired")

	_, err = decodeToken([]byte(`{}`))
	require.Error(t, err)
}

func TestIdentityMissingToken(t *testing.T) {
	_, err := NewIdentity(util.NewLogger("test"), " ", nil)
	require.ErrorIs(t, err, ErrMissingToken)
}
