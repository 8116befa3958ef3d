package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoller(t *testing.T) {
	t.Run("Defaults Interval", func(t *testing.T) {
		p := NewPoller(0, func(ctx context.Context) error { return nil }, nil)
		if p.Interval() != 30*time.Second {
			t.Errorf("expected 30s default, got %v", p.Interval())
		}
	})

	t.Run("Invokes Refresh Until Cancelled", func(t *testing.T) {
		var calls atomic.Int32
		p := NewPoller(5*time.Millisecond, func(ctx context.Context) error {
			calls.Add(1)
			return nil
		}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			p.Run(ctx)
			close(done)
		}()

		time.Sleep(60 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("poller did not stop after cancel")
		}

		if calls.Load() == 0 {
			t.Error("expected at least one refresh call")
		}
	})

	t.Run("Continues After Refresh Error", func(t *testing.T) {
		var calls atomic.Int32
		p := NewPoller(5*time.Millisecond, func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("backend down")
		}, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()
		p.Run(ctx)

		if calls.Load() < 2 {
			t.Errorf("expected poller to keep refreshing after errors, got %d calls", calls.Load())
		}
	})
}
