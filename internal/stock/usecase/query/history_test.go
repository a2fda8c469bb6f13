package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/internal/stock/repository/memory"
)

func uintPtr(v uint) *uint {
	return &v
}

func seedLedger(t *testing.T, store *memory.Store, resourceID uint, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		entry := domain.AttributionEntry{
			ResourceType: domain.ResourceMaterial,
			ResourceID:   resourceID,
			Action:       domain.ActionAttribution,
			Quantity:     1,
			ToUserID:     uintPtr(7),
			Author:       "dispatcher",
			Note:         fmt.Sprintf("entry %d", i+1),
			Status:       domain.StatusCommitted,
		}
		if err := store.Ledger().Append(&entry); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
}

func TestHistoryHandler_PagesMostRecentFirst(t *testing.T) {
	store := memory.NewStore()
	seedLedger(t, store, 1, 25)

	handler := NewHistoryHandler(store.Ledger())

	page, err := handler.Handle(context.Background(), HistoryQuery{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   1,
		Page:         1,
		Limit:        10,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if page.Total != 25 {
		t.Errorf("Expected total 25, got %d", page.Total)
	}
	if len(page.Items) != 10 {
		t.Fatalf("Expected 10 items, got %d", len(page.Items))
	}
	if page.Items[0].ID != 25 {
		t.Errorf("Expected most recent entry first, got id %d", page.Items[0].ID)
	}

	last, err := handler.Handle(context.Background(), HistoryQuery{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   1,
		Page:         3,
		Limit:        10,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(last.Items) != 5 {
		t.Errorf("Expected 5 items on the last page, got %d", len(last.Items))
	}

	empty, err := handler.Handle(context.Background(), HistoryQuery{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   1,
		Page:         4,
		Limit:        10,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(empty.Items) != 0 {
		t.Errorf("Expected empty page past the end, got %d items", len(empty.Items))
	}
	if empty.Total != 25 {
		t.Errorf("Expected total preserved on empty page, got %d", empty.Total)
	}
}

func TestAssignedHandler_IndependentOfHistoryPaging(t *testing.T) {
	store := memory.NewStore()
	seedLedger(t, store, 1, 25)

	history := NewHistoryHandler(store.Ledger())
	assigned := NewAssignedHandler(store.Ledger(), nil)
	ctx := context.Background()

	// A small display page must not change what the fold sees
	page, err := history.Handle(ctx, HistoryQuery{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   1,
		Page:         1,
		Limit:        5,
	})
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(page.Items) != 5 {
		t.Fatalf("Expected 5 items on display page, got %d", len(page.Items))
	}

	totals, err := assigned.Handle(ctx, AssignedQuery{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   1,
	})
	if err != nil {
		t.Fatalf("Assigned returned error: %v", err)
	}
	if got := totals[7]; got != 25 {
		t.Errorf("Expected fold over all 25 entries, got %v", got)
	}
}

func TestGetResourceHandler_TypeScoping(t *testing.T) {
	store := memory.NewStore()
	resource := domain.Resource{
		Type:     domain.ResourceMaterial,
		Name:     "Steel cable",
		Quantity: 10,
	}
	if err := store.Resources().Create(&resource); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	handler := NewGetResourceHandler(store.Resources())
	ctx := context.Background()

	view, err := handler.Handle(ctx, GetResourceQuery{
		ResourceType: domain.ResourceMaterial,
		ResourceID:   resource.ID,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if view.AvailableQuantity != 10 {
		t.Errorf("Expected available 10, got %v", view.AvailableQuantity)
	}

	// Same id under the wrong type segment is a 404, not a leak
	if _, err := handler.Handle(ctx, GetResourceQuery{
		ResourceType: domain.ResourceVehicle,
		ResourceID:   resource.ID,
	}); err != domain.ErrNotFound {
		t.Errorf("Expected ErrNotFound for type mismatch, got %v", err)
	}
}

func TestNewResourceView_ClampsInconsistentData(t *testing.T) {
	resource := domain.Resource{ID: 1, Quantity: 10, AssignedQuantity: 12}

	view := NewResourceView(context.Background(), &resource)

	if view.AvailableQuantity != 0 {
		t.Errorf("Expected clamped availability 0, got %v", view.AvailableQuantity)
	}
	// The raw fields pass through unmodified for diagnosis
	if view.AssignedQuantity != 12 {
		t.Errorf("Expected raw assigned quantity preserved, got %v", view.AssignedQuantity)
	}
}
