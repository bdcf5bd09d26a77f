package request

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vwid-io/vwid/util"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, JSONContent, r.Header.Get("Accept"))

		switch r.URL.Path {
		case "/ok":
			fmt.Fprint(w, `{"vin":"WVWZZZE1ZMP000001"}`)
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	helper := NewHelper(util.NewLogger("test"))

	var res struct{ VIN string }
	require.NoError(t, helper.GetJSON(srv.URL+"/ok", &res))
	require.Equal(t, "WVWZZZE1ZMP000001", res.VIN)

	require.NoError(t, helper.GetJSON(srv.URL+"/empty", &res))

	err := helper.GetJSON(srv.URL+"/fail", &res)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.True(t, se.HasStatus(http.StatusUnauthorized))
	require.Equal(t, http.StatusUnauthorized, se.StatusCode())
}

func TestMarshalJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	helper := NewHelper(util.NewLogger("test"))

	req, err := New(http.MethodPut, srv.URL, MarshalJSON(map[string]int{"targetSOC_pct": 80}), JSONEncoding)
	require.NoError(t, err)

	b, err := helper.DoBody(req)
	require.NoError(t, err)
	require.JSONEq(t, `{"targetSOC_pct":80}`, string(b))
}
