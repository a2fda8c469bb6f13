package command

import (
	"context"
	"errors"
	"testing"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/internal/stock/repository/memory"
)

func float64Ptr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }

func TestUpdateResourceHandler_QuantityBelowAssignedRejected(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 10)

	reserve := NewReserveHandler(store.Reservations(), nil, nil, nil)
	update := NewUpdateResourceHandler(store.Reservations())
	ctx := context.Background()

	if _, err := reserve.Handle(ctx, ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     8,
		TechnicianID: 7,
		Author:       "dispatcher",
	}); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	// Shrinking the total under the committed holding must be rejected
	// against the live assigned quantity, not a pre-reserve snapshot
	_, err := update.Handle(ctx, UpdateResourceCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     float64Ptr(5),
		Author:       "admin",
	})
	if !errors.Is(err, domain.ErrQuantityBelowAssigned) {
		t.Fatalf("Expected ErrQuantityBelowAssigned, got %v", err)
	}

	after, err := store.Resources().FindByID(resource.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if after.Quantity != 10 || after.AssignedQuantity != 8 {
		t.Errorf("Expected quantity=10 assigned=8 after rejection, got quantity=%v assigned=%v",
			after.Quantity, after.AssignedQuantity)
	}
	if after.Inconsistent() {
		t.Errorf("Resource left inconsistent: quantity=%v assigned=%v", after.Quantity, after.AssignedQuantity)
	}

	// Dropping exactly to the holding is allowed
	updated, err := update.Handle(ctx, UpdateResourceCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     float64Ptr(8),
		Author:       "admin",
	})
	if err != nil {
		t.Fatalf("Update to assigned quantity failed: %v", err)
	}
	if updated.Quantity != 8 || updated.Available() != 0 {
		t.Errorf("Expected quantity=8 available=0, got quantity=%v available=%v",
			updated.Quantity, updated.Available())
	}
}

func TestUpdateResourceHandler_QuantityChangeRecordsMovement(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 10)

	update := NewUpdateResourceHandler(store.Reservations())
	ctx := context.Background()

	if _, err := update.Handle(ctx, UpdateResourceCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     float64Ptr(25),
		Author:       "admin",
	}); err != nil {
		t.Fatalf("Increase failed: %v", err)
	}
	if _, err := update.Handle(ctx, UpdateResourceCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     float64Ptr(20),
		Author:       "admin",
	}); err != nil {
		t.Fatalf("Decrease failed: %v", err)
	}

	movements, total, err := store.Movements().FindAll(domain.MovementFilter{ResourceID: resource.ID})
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if total != 2 {
		t.Fatalf("Expected two adjustment movements, got %d", total)
	}

	// Most recent first: the decrease, then the increase
	if movements[0].Action != domain.MovementOut || movements[0].Quantity != 5 {
		t.Errorf("Expected OUT of 5, got %s %v", movements[0].Action, movements[0].Quantity)
	}
	if movements[1].Action != domain.MovementIn || movements[1].Quantity != 15 {
		t.Errorf("Expected IN of 15, got %s %v", movements[1].Action, movements[1].Quantity)
	}
}

func TestUpdateResourceHandler_MetadataOnlyEdit(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 10)

	update := NewUpdateResourceHandler(store.Reservations())

	updated, err := update.Handle(context.Background(), UpdateResourceCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Name:         stringPtr("Copper cable"),
		MinQuantity:  float64Ptr(3),
		Author:       "admin",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if updated.Name != "Copper cable" || updated.MinQuantity != 3 {
		t.Errorf("Expected renamed resource with min 3, got %q min=%v", updated.Name, updated.MinQuantity)
	}
	if updated.Quantity != 10 {
		t.Errorf("Expected quantity untouched at 10, got %v", updated.Quantity)
	}

	_, total, _ := store.Movements().FindAll(domain.MovementFilter{ResourceID: resource.ID})
	if total != 0 {
		t.Errorf("Expected no movement for a metadata-only edit, got %d", total)
	}
}

func TestUpdateResourceHandler_Validation(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 10)

	update := NewUpdateResourceHandler(store.Reservations())
	ctx := context.Background()

	if _, err := update.Handle(ctx, UpdateResourceCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Name:         stringPtr(""),
		Author:       "admin",
	}); err == nil {
		t.Error("Expected error for empty name")
	}
	if _, err := update.Handle(ctx, UpdateResourceCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     float64Ptr(-1),
		Author:       "admin",
	}); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity for negative quantity, got %v", err)
	}
	if _, err := update.Handle(ctx, UpdateResourceCommand{
		ResourceType: domain.ResourceVehicle,
		ResourceID:   resource.ID,
		Quantity:     float64Ptr(5),
		Author:       "admin",
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on type mismatch, got %v", err)
	}
}
