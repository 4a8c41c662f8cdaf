package service

import (
	"context"
	"testing"
	"time"

	"github.com/foodbridge/donation-platform/internal/core/domain"
)

func TestSweep_RetentionBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubListingRepo()

	// Stale: available and older than 12h.
	repo.add(availableListing("stale", "rest_1", now.Add(-12*time.Hour-time.Second)))
	// Fresh: available, not yet past retention.
	repo.add(availableListing("fresh", "rest_1", now.Add(-11*time.Hour-59*time.Minute)))
	// Old but booked: immune regardless of age.
	booked := availableListing("booked", "rest_1", now.Add(-48*time.Hour))
	booked.Status = domain.StatusBooked
	booked.NgoID = "ngo_1"
	repo.add(booked)

	sweeper := NewSweeper(repo, 30*time.Minute, domain.ListingRetention, testLogger())

	deleted, err := sweeper.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}
	if repo.get("stale") != nil {
		t.Fatalf("stale listing survived the sweep")
	}
	if repo.get("fresh") == nil {
		t.Fatalf("fresh listing was deleted")
	}
	if repo.get("booked") == nil {
		t.Fatalf("booked listing was deleted")
	}
}

func TestSweep_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubListingRepo()
	repo.add(availableListing("stale", "rest_1", now.Add(-13*time.Hour)))

	sweeper := NewSweeper(repo, 30*time.Minute, domain.ListingRetention, testLogger())
	ctx := context.Background()

	first, err := sweeper.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if first != 1 {
		t.Fatalf("first sweep deleted %d, want 1", first)
	}

	second, err := sweeper.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if second != 0 {
		t.Fatalf("second sweep deleted %d, want 0", second)
	}
}

func TestSweep_SurfacesStoreErrors(t *testing.T) {
	repo := newStubListingRepo()
	repo.failWith = context.DeadlineExceeded

	sweeper := NewSweeper(repo, 30*time.Minute, domain.ListingRetention, testLogger())
	if _, err := sweeper.Sweep(context.Background(), time.Now().UTC()); err == nil {
		t.Fatalf("expected store error to surface from Sweep")
	}
}

func TestSweeperRun_StopsOnCancel(t *testing.T) {
	repo := newStubListingRepo()
	sweeper := NewSweeper(repo, time.Millisecond, domain.ListingRetention, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("sweeper did not stop after context cancellation")
	}
}
