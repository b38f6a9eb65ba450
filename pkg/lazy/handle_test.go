package lazy

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestConcurrentGetInitialisesOnce(t *testing.T) {
	var dials int32
	h := New[int](func(ctx context.Context) (int, error) {
		atomic.AddInt32(&dials, 1)
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := h.Get(context.Background())
			if err != nil || v != 42 {
				t.Errorf("Get = %d, %v", v, err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&dials); got != 1 {
		t.Fatalf("initialised %d times, want 1", got)
	}
}

func TestFailedInitIsRetried(t *testing.T) {
	calls := 0
	h := New[string](func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("store unavailable")
		}
		return "conn", nil
	}, nil)

	if _, err := h.Get(context.Background()); err == nil {
		t.Fatalf("expected first Get to fail")
	}
	v, err := h.Get(context.Background())
	if err != nil || v != "conn" {
		t.Fatalf("second Get = %q, %v", v, err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestGetHonoursCancelledContext(t *testing.T) {
	h := New[int](func(ctx context.Context) (int, error) {
		t.Fatalf("init must not run for a cancelled context")
		return 0, nil
	}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.Get(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCloseReleasesAndAllowsReinit(t *testing.T) {
	released := 0
	inits := 0
	h := New[int](func(ctx context.Context) (int, error) {
		inits++
		return inits, nil
	}, func(v int) error {
		released++
		return nil
	})

	if err := h.Close(); err != nil || released != 0 {
		t.Fatalf("Close before init: err=%v released=%d", err, released)
	}
	if v, _ := h.Get(context.Background()); v != 1 {
		t.Fatalf("first value = %d", v)
	}
	if err := h.Close(); err != nil || released != 1 {
		t.Fatalf("Close: err=%v released=%d", err, released)
	}
	if v, _ := h.Get(context.Background()); v != 2 {
		t.Fatalf("value after reinit = %d", v)
	}
}
