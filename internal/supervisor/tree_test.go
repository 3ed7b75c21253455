// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func testTreeLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// blockingService runs until its context is canceled.
type blockingService struct {
	name    string
	started atomic.Int32
}

func (s *blockingService) Serve(ctx context.Context) error {
	s.started.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingService) String() string { return s.name }

func TestNewTreeDefaults(t *testing.T) {
	tree := NewTree(testTreeLogger(), TreeConfig{})

	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("expected default FailureThreshold 5.0, got %f", tree.config.FailureThreshold)
	}
	if tree.config.FailureDecay != 30.0 {
		t.Errorf("expected default FailureDecay 30.0, got %f", tree.config.FailureDecay)
	}
	if tree.config.FailureBackoff != 15*time.Second {
		t.Errorf("expected default FailureBackoff 15s, got %v", tree.config.FailureBackoff)
	}
	if tree.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected default ShutdownTimeout 10s, got %v", tree.config.ShutdownTimeout)
	}
}

func TestTreeLifecycle(t *testing.T) {
	tree := NewTree(testTreeLogger(), TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   100 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	svc := &blockingService{name: "mock-api"}
	tree.AddAPIService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- tree.Serve(ctx)
	}()

	deadline := time.Now().Add(time.Second)
	for svc.started.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("service was not started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("tree did not shut down in time")
	}

	unstopped, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("unstopped service report: %v", err)
	}
	if len(unstopped) != 0 {
		t.Errorf("expected no unstopped services, got %d", len(unstopped))
	}
}
