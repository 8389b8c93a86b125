package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForReturnsImmediatelyForNonPositiveDuration(t *testing.T) {
	t.Parallel()

	start := time.Now()
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("expected immediate return, waited %v", elapsed)
	}
}

func TestWaitForHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitFor(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitForCompletes(t *testing.T) {
	originalSleep := sleep
	sleep = func(time.Duration) {}
	defer func() { sleep = originalSleep }()

	if err := WaitFor(context.Background(), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
