package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedactor(t *testing.T) {
	r := new(Redactor)
	r.Redact("secret", "", "  ", "WVWZZZE1ZMP000001")

	require.Equal(t, "token=*** vin=***", r.Safe("token=secret vin=WVWZZZE1ZMP000001"))
	require.Equal(t, "nothing to hide", r.Safe("nothing to hide"))
}

func TestRedactWriter(t *testing.T) {
	var b bytes.Buffer

	r := new(Redactor)
	r.Redact("hunter2")

	w := &redactWriter{r, &b}
	n, err := w.Write([]byte("password hunter2\n"))

	require.NoError(t, err)
	require.Equal(t, len("password hunter2\n"), n)
	require.Equal(t, "password ***\n", b.String())
}
