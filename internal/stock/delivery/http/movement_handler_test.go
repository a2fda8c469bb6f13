package http

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/internal/stock/repository/memory"
)

func seedMovements(t *testing.T, store *memory.Store, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		movement := domain.Movement{
			ResourceType: domain.ResourceMaterial,
			ResourceID:   1,
			Action:       domain.MovementAssign,
			FromKind:     domain.EndpointDepot,
			ToKind:       domain.EndpointUser,
			Quantity:     float64(i + 1),
			Unit:         "m",
			Author:       "dispatcher",
			Status:       domain.StatusCommitted,
		}
		if err := store.Movements().Create(&movement); err != nil {
			t.Fatalf("Create movement failed: %v", err)
		}
	}
}

func TestExportMovements_IncludesEveryRow(t *testing.T) {
	store := memory.NewStore()
	// Well past the display page size of 20
	seedMovements(t, store, 25)

	handler := NewMovementHandler(store.Movements())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/movements/export", nil)
	handler.ExportMovements(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	workbook, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("Failed to reopen exported workbook: %v", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(workbook.GetActiveSheetIndex())
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		t.Fatalf("Failed to read exported rows: %v", err)
	}

	// Header plus one row per movement, no paging applied
	if len(rows) != 26 {
		t.Fatalf("Expected 26 rows (header + 25 movements), got %d", len(rows))
	}
}

func TestExportMovements_HonorsFilter(t *testing.T) {
	store := memory.NewStore()
	seedMovements(t, store, 3)
	vehicle := domain.Movement{
		ResourceType: domain.ResourceVehicle,
		ResourceID:   9,
		Action:       domain.MovementTransfer,
		FromKind:     domain.EndpointDepot,
		ToKind:       domain.EndpointDepot,
		Quantity:     1,
		Author:       "dispatcher",
		Status:       domain.StatusCommitted,
	}
	if err := store.Movements().Create(&vehicle); err != nil {
		t.Fatalf("Create movement failed: %v", err)
	}

	handler := NewMovementHandler(store.Movements())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/movements/export?resourceType=vehicles", nil)
	handler.ExportMovements(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	workbook, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("Failed to reopen exported workbook: %v", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(workbook.GetActiveSheetIndex())
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		t.Fatalf("Failed to read exported rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 vehicle movement, got %d rows", len(rows))
	}
	if rows[1][1] != string(domain.ResourceVehicle) {
		t.Errorf("Expected vehicle row, got %v", rows[1])
	}
}

func TestExportMovements_RejectsUnknownResourceType(t *testing.T) {
	handler := NewMovementHandler(memory.NewStore().Movements())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/movements/export?resourceType=%s", "products"), nil)
	handler.ExportMovements(rec, req)

	if rec.Code != 400 {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
}
