package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/internal/stock/usecase/query"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// MovementHandler handles HTTP requests for the movement log
type MovementHandler struct {
	listHandler *query.ListMovementsHandler
	repo        domain.MovementRepository
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(repo domain.MovementRepository) *MovementHandler {
	return &MovementHandler{
		listHandler: query.NewListMovementsHandler(repo),
		repo:        repo,
	}
}

// ListMovements handles GET /api/movements
func (h *MovementHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	q := query.ListMovementsQuery{
		Action: domain.MovementAction(r.URL.Query().Get("action")),
		Page:   page,
		Limit:  limit,
	}
	if raw := r.URL.Query().Get("resourceType"); raw != "" {
		rt, err := domain.ParseResourceType(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Unknown resource type"})
			return
		}
		q.ResourceType = rt
	}
	if raw := r.URL.Query().Get("resource"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid resource ID"})
			return
		}
		q.ResourceID = uint(id)
	}

	result, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list movements")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list movements"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// ExportMovements handles GET /api/movements/export and streams the
// filtered movement log as an XLSX workbook
func (h *MovementHandler) ExportMovements(w http.ResponseWriter, r *http.Request) {
	filter := domain.MovementFilter{}
	if raw := r.URL.Query().Get("resourceType"); raw != "" {
		rt, err := domain.ParseResourceType(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Unknown resource type"})
			return
		}
		filter.ResourceType = rt
	}
	if raw := r.URL.Query().Get("resource"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid resource ID"})
			return
		}
		filter.ResourceID = uint(id)
	}

	// The export is the full filtered log; FindAll would page it
	movements, err := h.repo.ListAll(filter)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load movements for export")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to load movements"})
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"resource_type",
		"resource_id",
		"action",
		"from_kind",
		"from_id",
		"to_kind",
		"to_id",
		"quantity",
		"unit",
		"author",
		"status",
		"created_at",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to write export header")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to build export"})
		return
	}

	row := 2
	for _, m := range movements {
		excelRow := []interface{}{
			m.ID,
			string(m.ResourceType),
			m.ResourceID,
			string(m.Action),
			string(m.FromKind),
			uintOrEmpty(m.FromID),
			string(m.ToKind),
			uintOrEmpty(m.ToID),
			m.Quantity,
			m.Unit,
			m.Author,
			string(m.Status),
			m.CreatedAt.Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to build export"})
			return
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to build export"})
			return
		}
		row++
	}

	fileName := fmt.Sprintf("movements_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := f.Write(w); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to stream export")
	}
}

// RegisterRoutes registers all movement routes
func (h *MovementHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/movements", AuthMiddleware(h.ListMovements)).Methods("GET")
	router.HandleFunc("/api/movements/export", AdminMiddleware(h.ExportMovements)).Methods("GET")
}

func uintOrEmpty(v *uint) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
