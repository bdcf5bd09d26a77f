package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheRun(t *testing.T) {
	c := NewCache()
	in := make(chan Param)
	done := make(chan struct{})

	go func() {
		c.Run(in)
		close(done)
	}()

	in <- Param{Vehicle: "VIN2", Key: "odometer", Val: 1200.0}
	in <- Param{Vehicle: "VIN1", Key: "odometer", Val: 100.0}
	in <- Param{Vehicle: "VIN1", Key: "odometer", Val: 101.0}
	in <- Param{Key: "updated", Val: "now"}
	close(in)
	<-done

	all := c.All()
	require.Len(t, all, 3)
	require.Equal(t, "VIN1-odometer", all[0].UniqueID())
	require.Equal(t, 101.0, all[0].Val)
	require.Equal(t, "updated", all[2].UniqueID())

	require.Equal(t, map[string]interface{}{"odometer": 1200.0}, c.Vehicle("VIN2"))
	require.Equal(t, Param{}, c.Get("missing"))
}
