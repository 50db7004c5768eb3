package retry_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lifelegallysingle/prswarm/internal/retry"
)

func TestDoRetriesTransient(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	calls := 0
	failUntil := 2

	out, err := retry.Do(context.Background(), retry.Options{
		MaxRetries:        3,
		BackoffInitial:    1 * time.Millisecond,
		BackoffMax:        2 * time.Millisecond,
		BackoffJitterFrac: 0,
	}, func(context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls <= failUntil {
			return "", &retry.Transient{Err: errors.New("try again")}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Fatalf("unexpected output: %q", out)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDoDoesNotRetryPermanent(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := retry.Do(context.Background(), retry.Options{
		MaxRetries:        10,
		BackoffInitial:    1 * time.Millisecond,
		BackoffMax:        1 * time.Millisecond,
		BackoffJitterFrac: 0,
	}, func(context.Context) (string, error) {
		calls++
		return "", errors.New("permanent")
	})
	if err == nil || err.Error() != "permanent" {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoStopsAtRetryBudget(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := retry.Do(context.Background(), retry.Options{
		MaxRetries:        2,
		BackoffInitial:    1 * time.Millisecond,
		BackoffMax:        1 * time.Millisecond,
		BackoffJitterFrac: 0,
	}, func(context.Context) (string, error) {
		calls++
		return "", &retry.Transient{Err: errors.New("still down")}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls (1 initial + 2 retries), got %d", calls)
	}
}

func TestDoHonorsContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := retry.Do(ctx, retry.Options{}, func(context.Context) (int, error) {
		calls++
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected 0 calls, got %d", calls)
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	if retry.IsTransient(errors.New("plain")) {
		t.Fatal("plain errors are not transient")
	}
	if !retry.IsTransient(&retry.Transient{Err: errors.New("x")}) {
		t.Fatal("Transient marker should be transient")
	}
	if !retry.IsTransient(context.DeadlineExceeded) {
		t.Fatal("deadline exceeded should be transient")
	}
}
