package provider

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

type fetcher struct {
	calls int32
	err   error
	delay time.Duration
}

func (f *fetcher) FetchAll(ctx context.Context) error {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.err
}

func (f *fetcher) count() int {
	return int(atomic.LoadInt32(&f.calls))
}

func newTestThrottle() (*Throttle, *clock.Mock) {
	clck := clock.NewMock()
	t := NewThrottle(ThrottleWindow)
	t.clock = clck
	return t, clck
}

func TestThrottleWindow(t *testing.T) {
	require.Equal(t, 24*time.Second, ThrottleWindow)
}

func TestThrottleSkipsWithinWindow(t *testing.T) {
	th, clck := newTestThrottle()
	f := new(fetcher)
	ctx := context.Background()

	require.NoError(t, th.Update(ctx, f))
	require.Equal(t, 1, f.count())

	clck.Add(10 * time.Second)
	require.NoError(t, th.Update(ctx, f))
	require.Equal(t, 1, f.count())

	// window boundary is inclusive
	clck.Add(14 * time.Second)
	require.NoError(t, th.Update(ctx, f))
	require.Equal(t, 1, f.count())

	clck.Add(time.Second)
	require.NoError(t, th.Update(ctx, f))
	require.Equal(t, 2, f.count())
	require.Equal(t, clck.Now(), th.Updated())
}

func TestThrottleConcurrentCallers(t *testing.T) {
	th, _ := newTestThrottle()
	f := &fetcher{delay: 10 * time.Millisecond}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, th.Update(context.Background(), f))
		}()
	}
	wg.Wait()

	require.Equal(t, 1, f.count())
}

func TestThrottleDifferentClient(t *testing.T) {
	th, _ := newTestThrottle()
	f1, f2 := new(fetcher), new(fetcher)
	ctx := context.Background()

	require.NoError(t, th.Update(ctx, f1))
	require.NoError(t, th.Update(ctx, f2))
	require.Equal(t, 1, f1.count())
	require.Equal(t, 1, f2.count())

	// switching back is another client change
	require.NoError(t, th.Update(ctx, f1))
	require.Equal(t, 2, f1.count())
}

func TestThrottleErrorNotThrottled(t *testing.T) {
	th, clck := newTestThrottle()
	ctx := context.Background()

	ok := new(fetcher)
	require.NoError(t, th.Update(ctx, ok))
	updated := th.Updated()

	bad := &fetcher{err: errors.New("boom")}
	require.Error(t, th.Update(ctx, bad))
	require.Error(t, th.Update(ctx, bad))
	require.Equal(t, 2, bad.count())

	// failed refresh leaves previous state untouched
	require.Equal(t, updated, th.Updated())
	clck.Add(time.Second)
	require.NoError(t, th.Update(ctx, ok))
	require.Equal(t, 1, ok.count())
}

func TestThrottleReset(t *testing.T) {
	th, _ := newTestThrottle()
	f := new(fetcher)
	ctx := context.Background()

	require.NoError(t, th.Update(ctx, f))
	th.Reset()
	require.NoError(t, th.Update(ctx, f))
	require.Equal(t, 2, f.count())

	ResetCached()
	require.NoError(t, th.Update(ctx, f))
	require.Equal(t, 3, f.count())
}
