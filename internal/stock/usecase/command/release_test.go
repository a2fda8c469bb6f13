package command

import (
	"context"
	"errors"
	"testing"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/internal/stock/repository/memory"
)

func TestReleaseHandler_ReturnsHeldQuantity(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 100)
	ctx := context.Background()

	reserve := NewReserveHandler(store.Reservations(), nil, nil, nil)
	release := NewReleaseHandler(store.Reservations(), nil, nil)

	if _, err := reserve.Handle(ctx, ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     30,
		TechnicianID: 7,
		Author:       "dispatcher",
	}); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	result, err := release.Handle(ctx, ReleaseCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     10,
		TechnicianID: 7,
		Author:       "dispatcher",
	})
	if err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	if result.Resource.AssignedQuantity != 20 {
		t.Errorf("Expected assigned quantity 20, got %v", result.Resource.AssignedQuantity)
	}
	if result.Attribution.Action != domain.ActionReprise {
		t.Errorf("Expected REPRISE entry, got %s", result.Attribution.Action)
	}

	entries, _ := store.Ledger().ListByResource(domain.ResourceMaterial, resource.ID)
	if got := domain.AssignedTo(entries, 7); got != 20 {
		t.Errorf("Expected holding 20 after release, got %v", got)
	}
}

func TestReleaseHandler_CappedByTechnicianHolding(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 100)
	ctx := context.Background()

	reserve := NewReserveHandler(store.Reservations(), nil, nil, nil)
	release := NewReleaseHandler(store.Reservations(), nil, nil)

	// Two technicians share the assigned pool: 30 + 20 = 50 assigned total
	for _, c := range []struct {
		technician uint
		qty        float64
	}{{7, 30}, {9, 20}} {
		if _, err := reserve.Handle(ctx, ReserveCommand{
			ResourceType: domain.ResourceMaterial,
			ResourceID:   resource.ID,
			Quantity:     c.qty,
			TechnicianID: c.technician,
			Author:       "dispatcher",
		}); err != nil {
			t.Fatalf("Reserve for technician %d failed: %v", c.technician, err)
		}
	}

	// Technician 9 holds 20. The resource-wide assigned quantity is 50,
	// but that is not the gate: releasing 25 must fail.
	_, err := release.Handle(ctx, ReleaseCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     25,
		TechnicianID: 9,
		Author:       "dispatcher",
	})
	if !errors.Is(err, domain.ErrExceedsAssigned) {
		t.Fatalf("Expected ErrExceedsAssigned, got %v", err)
	}

	after, _ := store.Resources().FindByID(resource.ID)
	if after.AssignedQuantity != 50 {
		t.Errorf("Expected assigned quantity untouched at 50, got %v", after.AssignedQuantity)
	}
	entries, _ := store.Ledger().ListByResource(domain.ResourceMaterial, resource.ID)
	if len(entries) != 2 {
		t.Errorf("Expected no entry appended on rejection, got %d entries", len(entries))
	}

	// Releasing exactly the holding succeeds
	if _, err := release.Handle(ctx, ReleaseCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     20,
		TechnicianID: 9,
		Author:       "dispatcher",
	}); err != nil {
		t.Fatalf("Release of exact holding failed: %v", err)
	}

	entries, _ = store.Ledger().ListByResource(domain.ResourceMaterial, resource.ID)
	if got := domain.AssignedTo(entries, 9); got != 0 {
		t.Errorf("Expected technician 9 holding 0, got %v", got)
	}
	if got := domain.AssignedTo(entries, 7); got != 30 {
		t.Errorf("Expected technician 7 holding untouched at 30, got %v", got)
	}
}

func TestReleaseHandler_NothingHeld(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 100)

	release := NewReleaseHandler(store.Reservations(), nil, nil)

	_, err := release.Handle(context.Background(), ReleaseCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     1,
		TechnicianID: 7,
		Author:       "dispatcher",
	})
	if !errors.Is(err, domain.ErrExceedsAssigned) {
		t.Errorf("Expected ErrExceedsAssigned with no prior attribution, got %v", err)
	}
}

func TestCancelAttributionHandler_RestoresAvailability(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 100)
	ctx := context.Background()

	reserve := NewReserveHandler(store.Reservations(), nil, nil, nil)
	cancel := NewCancelAttributionHandler(store.Reservations(), nil, nil)

	reserved, err := reserve.Handle(ctx, ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     40,
		TechnicianID: 7,
		Author:       "dispatcher",
	})
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	result, err := cancel.Handle(ctx, CancelAttributionCommand{
		EntryID: reserved.Attribution.ID,
		Author:  "supervisor",
	})
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	if result.Resource.AssignedQuantity != 0 {
		t.Errorf("Expected assigned quantity restored to 0, got %v", result.Resource.AssignedQuantity)
	}
	if result.Attribution.Status != domain.StatusCanceled {
		t.Errorf("Expected CANCELED entry, got %s", result.Attribution.Status)
	}

	// The entry stays in the ledger but stops counting
	entries, _ := store.Ledger().ListByResource(domain.ResourceMaterial, resource.ID)
	if len(entries) != 1 {
		t.Fatalf("Expected entry retained in ledger, got %d entries", len(entries))
	}
	if got := domain.AssignedTo(entries, 7); got != 0 {
		t.Errorf("Expected holding 0 after cancel, got %v", got)
	}

	// Canceling twice is rejected
	if _, err := cancel.Handle(ctx, CancelAttributionCommand{
		EntryID: reserved.Attribution.ID,
		Author:  "supervisor",
	}); !errors.Is(err, domain.ErrAlreadyCanceled) {
		t.Errorf("Expected ErrAlreadyCanceled, got %v", err)
	}
}
