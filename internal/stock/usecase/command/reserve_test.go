package command

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/fleetops/depot-backend/internal/stock/client"
	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/internal/stock/repository/memory"
)

// stubDirectory answers every lookup with a fixed technician or error
type stubDirectory struct {
	technician *client.Technician
	err        error
}

func (d *stubDirectory) GetTechnician(ctx context.Context, id uint) (*client.Technician, error) {
	return d.technician, d.err
}

func seedResource(t *testing.T, store *memory.Store, quantity float64) *domain.Resource {
	t.Helper()

	depot := domain.Depot{Name: "Depot Nord"}
	if err := store.Depots().Create(&depot); err != nil {
		t.Fatalf("Failed to create depot: %v", err)
	}

	resource := domain.Resource{
		Type:     domain.ResourceMaterial,
		Name:     "Steel cable",
		Unit:     "m",
		Quantity: quantity,
		DepotID:  &depot.ID,
	}
	if err := store.Resources().Create(&resource); err != nil {
		t.Fatalf("Failed to create resource: %v", err)
	}
	return &resource
}

func TestReserveHandler_CommitsAttribution(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 100)

	handler := NewReserveHandler(store.Reservations(), nil, nil, nil)

	result, err := handler.Handle(context.Background(), ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     30,
		TechnicianID: 7,
		Author:       "dispatcher",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if result.Resource.AssignedQuantity != 30 {
		t.Errorf("Expected assigned quantity 30, got %v", result.Resource.AssignedQuantity)
	}
	if result.Resource.Available() != 70 {
		t.Errorf("Expected available 70, got %v", result.Resource.Available())
	}

	entry := result.Attribution
	if entry.Action != domain.ActionAttribution {
		t.Errorf("Expected ATTRIBUTION entry, got %s", entry.Action)
	}
	if entry.Status != domain.StatusCommitted {
		t.Errorf("Expected COMMITTED entry, got %s", entry.Status)
	}
	if entry.ToUserID == nil || *entry.ToUserID != 7 {
		t.Errorf("Expected entry bound to technician 7, got %v", entry.ToUserID)
	}

	entries, err := store.Ledger().ListByResource(domain.ResourceMaterial, resource.ID)
	if err != nil {
		t.Fatalf("ListByResource returned error: %v", err)
	}
	if got := domain.AssignedTo(entries, 7); got != 30 {
		t.Errorf("Expected ledger fold 30 for technician 7, got %v", got)
	}

	movements, total, err := store.Movements().FindAll(domain.MovementFilter{ResourceID: resource.ID})
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if total != 1 {
		t.Fatalf("Expected one movement, got %d", total)
	}
	if movements[0].Action != domain.MovementAssign {
		t.Errorf("Expected assign movement, got %s", movements[0].Action)
	}
}

func TestReserveHandler_InsufficientStockLeavesNothingBehind(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 10)

	handler := NewReserveHandler(store.Reservations(), nil, nil, nil)
	ctx := context.Background()

	if _, err := handler.Handle(ctx, ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     8,
		TechnicianID: 7,
		Author:       "dispatcher",
	}); err != nil {
		t.Fatalf("Initial reserve failed: %v", err)
	}

	_, err := handler.Handle(ctx, ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     5,
		TechnicianID: 9,
		Author:       "dispatcher",
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got %v", err)
	}

	// The rejection must not have mutated anything
	after, err := store.Resources().FindByID(resource.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if after.AssignedQuantity != 8 {
		t.Errorf("Expected assigned quantity still 8, got %v", after.AssignedQuantity)
	}

	entries, _ := store.Ledger().ListByResource(domain.ResourceMaterial, resource.ID)
	if len(entries) != 1 {
		t.Errorf("Expected one ledger entry after rejection, got %d", len(entries))
	}
	_, total, _ := store.Movements().FindAll(domain.MovementFilter{ResourceID: resource.ID})
	if total != 1 {
		t.Errorf("Expected one movement after rejection, got %d", total)
	}
}

func TestReserveHandler_InvalidQuantities(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 10)

	handler := NewReserveHandler(store.Reservations(), nil, nil, nil)

	for _, qty := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := handler.Handle(context.Background(), ReserveCommand{
			ResourceType: domain.ResourceMaterial,
			ResourceID:   resource.ID,
			Quantity:     qty,
			TechnicianID: 7,
			Author:       "dispatcher",
		})
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("Expected ErrInvalidQuantity for %v, got %v", qty, err)
		}
	}
}

func TestReserveHandler_UnknownResource(t *testing.T) {
	store := memory.NewStore()
	seedResource(t, store, 10)

	handler := NewReserveHandler(store.Reservations(), nil, nil, nil)

	_, err := handler.Handle(context.Background(), ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   999,
		Quantity:     1,
		TechnicianID: 7,
		Author:       "dispatcher",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestReserveHandler_DirectoryFailureIsUpstreamError(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 10)

	directory := &stubDirectory{err: errors.New("user service unreachable: connection refused")}
	handler := NewReserveHandler(store.Reservations(), directory, nil, nil)

	_, err := handler.Handle(context.Background(), ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     1,
		TechnicianID: 7,
		Author:       "dispatcher",
	})
	if !errors.Is(err, ErrDirectoryUnavailable) {
		t.Fatalf("Expected ErrDirectoryUnavailable, got %v", err)
	}

	// A lookup failure must not be conflated with a missing technician
	directory.err = client.ErrUserNotFound
	_, err = handler.Handle(context.Background(), ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     1,
		TechnicianID: 7,
		Author:       "dispatcher",
	})
	if err == nil || errors.Is(err, ErrDirectoryUnavailable) {
		t.Fatalf("Expected plain unknown-technician error, got %v", err)
	}

	// Nothing reserved on either path
	after, _ := store.Resources().FindByID(resource.ID)
	if after.AssignedQuantity != 0 {
		t.Errorf("Expected assigned quantity 0, got %v", after.AssignedQuantity)
	}
}

func TestReserveHandler_InactiveTechnicianRejected(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 10)

	directory := &stubDirectory{technician: &client.Technician{ID: 7, Username: "jdupont", IsActive: false}}
	handler := NewReserveHandler(store.Reservations(), directory, nil, nil)

	_, err := handler.Handle(context.Background(), ReserveCommand{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
		Quantity:     1,
		TechnicianID: 7,
		Author:       "dispatcher",
	})
	if err == nil {
		t.Fatal("Expected error for deactivated technician")
	}
	if errors.Is(err, ErrDirectoryUnavailable) {
		t.Errorf("Deactivated technician is a client error, got %v", err)
	}
}

func TestReserveHandler_TypeMismatchIsNotFound(t *testing.T) {
	store := memory.NewStore()
	resource := seedResource(t, store, 10)

	handler := NewReserveHandler(store.Reservations(), nil, nil, nil)

	// The resource exists but lives under a different type segment
	_, err := handler.Handle(context.Background(), ReserveCommand{
		ResourceType: domain.ResourceVehicle,
		ResourceID:   resource.ID,
		Quantity:     1,
		TechnicianID: 7,
		Author:       "dispatcher",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on type mismatch, got %v", err)
	}
}
