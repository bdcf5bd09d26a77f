package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultScheme(t *testing.T) {
	for _, tc := range []struct {
		in, scheme, out string
	}{
		{"localhost:1883", "tcp", "tcp://localhost:1883"},
		{"ssl://broker:8883", "tcp", "ssl://broker:8883"},
		{"influx:8086", "http", "http://influx:8086"},
	} {
		require.Equal(t, tc.out, DefaultScheme(tc.in, tc.scheme))
	}
}
