package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// DepotHandler handles HTTP requests for depots
type DepotHandler struct {
	repo domain.DepotRepository
}

// NewDepotHandler creates a new depot handler
func NewDepotHandler(repo domain.DepotRepository) *DepotHandler {
	return &DepotHandler{repo: repo}
}

// CreateDepot handles POST /api/depots
func (h *DepotHandler) CreateDepot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Name == "" {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Depot name is required"})
		return
	}

	depot := &domain.Depot{
		Name:    req.Name,
		Address: req.Address,
	}

	if err := h.repo.Create(depot); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create depot")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Depot created successfully", Data: depot})
}

// GetDepot handles GET /api/depots/{id}
func (h *DepotHandler) GetDepot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid depot ID"})
		return
	}

	depot, err := h.repo.FindByID(uint(id))
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Depot not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: depot})
}

// ListDepots handles GET /api/depots
func (h *DepotHandler) ListDepots(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	if limit == 0 {
		limit = 10
	}

	depots, err := h.repo.FindAll(limit, offset)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list depots")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list depots"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: depots})
}

// UpdateDepot handles PUT /api/depots/{id}
func (h *DepotHandler) UpdateDepot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid depot ID"})
		return
	}

	depot, err := h.repo.FindByID(uint(id))
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Depot not found"})
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Name != nil {
		depot.Name = *req.Name
	}
	if req.Address != nil {
		depot.Address = *req.Address
	}

	if err := h.repo.Update(depot); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update depot")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Depot updated successfully", Data: depot})
}

// DeleteDepot handles DELETE /api/depots/{id}
func (h *DepotHandler) DeleteDepot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid depot ID"})
		return
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Depot not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Depot deleted successfully"})
}

// RegisterRoutes registers all depot routes
func (h *DepotHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/depots", AuthMiddleware(h.ListDepots)).Methods("GET")
	router.HandleFunc("/api/depots", AdminMiddleware(h.CreateDepot)).Methods("POST")
	router.HandleFunc("/api/depots/{id}", AuthMiddleware(h.GetDepot)).Methods("GET")
	router.HandleFunc("/api/depots/{id}", AdminMiddleware(h.UpdateDepot)).Methods("PUT")
	router.HandleFunc("/api/depots/{id}", AdminMiddleware(h.DeleteDepot)).Methods("DELETE")
}
