package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRegister_InvalidSchedule(t *testing.T) {
	s := New(time.Second)
	err := s.Register("broken", "every tuesday", func(ctx context.Context) error { return nil })
	if err == nil {
		t.Fatal("Register() error = nil, want parse error")
	}
}

func TestRun_BoundsJobWithTimeout(t *testing.T) {
	s := New(10 * time.Millisecond)

	done := make(chan error, 1)
	s.run("slow", func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	})

	if err := <-done; !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("job context error = %v, want deadline exceeded", err)
	}
}

func TestStartStop(t *testing.T) {
	s := New(time.Second)
	if err := s.Register("noop", "@every 1h", func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
