package util

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaiterInitialUpdate(t *testing.T) {
	w := NewWaiter(time.Minute)
	require.Error(t, w.Overdue())

	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Update()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, w.Wait(ctx))
	require.NoError(t, w.Overdue())
}

func TestWaiterTimeout(t *testing.T) {
	w := NewWaiter(0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := w.Wait(ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestWaiterOutdated(t *testing.T) {
	w := NewWaiter(time.Millisecond)
	w.Update()

	time.Sleep(5 * time.Millisecond)
	require.Error(t, w.Overdue())
}
