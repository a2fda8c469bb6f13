package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/internal/stock/usecase/command"
	"github.com/fleetops/depot-backend/internal/stock/usecase/query"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// StockHandler handles HTTP requests for depot stock
type StockHandler struct {
	// Command handlers
	reserveHandler  *command.ReserveHandler
	releaseHandler  *command.ReleaseHandler
	cancelHandler   *command.CancelAttributionHandler
	createHandler   *command.CreateResourceHandler
	updateHandler   *command.UpdateResourceHandler
	deleteHandler   *command.DeleteResourceHandler
	transferHandler *command.TransferResourceHandler

	// Query handlers
	getHandler      *query.GetResourceHandler
	listHandler     *query.ListResourcesHandler
	historyHandler  *query.HistoryHandler
	assignedHandler *query.AssignedHandler
	lowStockHandler *query.LowStockHandler

	requestCounter  *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	protocolCounter *prometheus.CounterVec
}

// NewStockHandler creates a new stock handler. directory, cache and
// publisher may be nil when the corresponding backing service is not
// configured.
func NewStockHandler(
	store domain.ReservationStore,
	resources domain.ResourceRepository,
	ledger domain.LedgerRepository,
	movements domain.MovementRepository,
	depots domain.DepotRepository,
	directory command.TechnicianDirectory,
	cache domain.AggregateCache,
	publisher command.MovementPublisher,
) *StockHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_service_requests_total",
			Help: "Total number of requests to stock service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_service_request_duration_seconds",
			Help:    "Duration of stock service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	protocolCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_service_protocol_operations_total",
			Help: "Reserve and release outcomes by action",
		},
		[]string{"action", "outcome"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(protocolCounter)

	return &StockHandler{
		reserveHandler:  command.NewReserveHandler(store, directory, cache, publisher),
		releaseHandler:  command.NewReleaseHandler(store, cache, publisher),
		cancelHandler:   command.NewCancelAttributionHandler(store, cache, publisher),
		createHandler:   command.NewCreateResourceHandler(resources, movements, publisher),
		updateHandler:   command.NewUpdateResourceHandler(store),
		deleteHandler:   command.NewDeleteResourceHandler(resources, movements),
		transferHandler: command.NewTransferResourceHandler(store, depots, publisher),
		getHandler:      query.NewGetResourceHandler(resources),
		listHandler:     query.NewListResourcesHandler(resources),
		historyHandler:  query.NewHistoryHandler(ledger),
		assignedHandler: query.NewAssignedHandler(ledger, cache),
		lowStockHandler: query.NewLowStockHandler(resources),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		protocolCounter: protocolCounter,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *StockHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// statusFromError maps domain errors to HTTP status codes. Unknown
// errors land on 400: commands reject with plain errors for bad input
// and the repositories wrap everything else in domain sentinels.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrExceedsAssigned),
		errors.Is(err, domain.ErrQuantityBelowAssigned),
		errors.Is(err, domain.ErrAlreadyCanceled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, command.ErrDirectoryUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// resourceType resolves the {resourceType} path segment. Accepts both
// singular and plural route forms.
func resourceType(r *http.Request) (domain.ResourceType, bool) {
	rt, err := domain.ParseResourceType(mux.Vars(r)["resourceType"])
	return rt, err == nil
}

func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	return uint(id), err == nil
}

// Reserve handles POST /api/{resourceType}/reserve
func (h *StockHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}

	var req struct {
		Resource   domain.Ref      `json:"resource_id"`
		Quantity   domain.Quantity `json:"qty"`
		Technician domain.Ref      `json:"to_user"`
		Depot      domain.Ref      `json:"from_depot"`
		Author     string          `json:"author"`
		Note       string          `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Resource.Zero() {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "resource is required"})
		return
	}

	cmd := command.ReserveCommand{
		ResourceType: rt,
		ResourceID:   req.Resource.ID,
		Quantity:     float64(req.Quantity),
		TechnicianID: req.Technician.ID,
		DepotID:      req.Depot.Ptr(),
		Author:       authorOrUsername(r, req.Author),
		Note:         req.Note,
	}

	result, err := h.reserveHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.protocolCounter.WithLabelValues("reserve", "rejected").Inc()
		logger.Warn(r.Context()).Err(err).Uint("resource_id", cmd.ResourceID).Msg("Reserve rejected")
		respondJSON(w, statusFromError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.protocolCounter.WithLabelValues("reserve", "committed").Inc()
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Quantity reserved", Data: result})
}

// Release handles POST /api/{resourceType}/reserve/release
func (h *StockHandler) Release(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}

	var req struct {
		Resource   domain.Ref      `json:"resource_id"`
		Quantity   domain.Quantity `json:"qty"`
		Technician domain.Ref      `json:"to_user"`
		Depot      domain.Ref      `json:"from_depot"`
		Author     string          `json:"author"`
		Note       string          `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Resource.Zero() {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "resource is required"})
		return
	}

	cmd := command.ReleaseCommand{
		ResourceType: rt,
		ResourceID:   req.Resource.ID,
		Quantity:     float64(req.Quantity),
		TechnicianID: req.Technician.ID,
		DepotID:      req.Depot.Ptr(),
		Author:       authorOrUsername(r, req.Author),
		Note:         req.Note,
	}

	result, err := h.releaseHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.protocolCounter.WithLabelValues("release", "rejected").Inc()
		logger.Warn(r.Context()).Err(err).Uint("resource_id", cmd.ResourceID).Msg("Release rejected")
		respondJSON(w, statusFromError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.protocolCounter.WithLabelValues("release", "committed").Inc()
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Quantity released", Data: result})
}

// CancelAttribution handles POST /api/attributions/{id}/cancel
func (h *StockHandler) CancelAttribution(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid attribution ID"})
		return
	}

	var req struct {
		Author string `json:"author"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.cancelHandler.Handle(r.Context(), command.CancelAttributionCommand{
		EntryID: id,
		Author:  authorOrUsername(r, req.Author),
	})
	if err != nil {
		respondJSON(w, statusFromError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Attribution canceled", Data: result})
}

// CreateResource handles POST /api/{resourceType}
func (h *StockHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}

	var req struct {
		Name        string          `json:"name"`
		Unit        string          `json:"unit"`
		Quantity    domain.Quantity `json:"quantity"`
		MinQuantity domain.Quantity `json:"min_quantity"`
		Depot       domain.Ref      `json:"depot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resource, err := h.createHandler.Handle(r.Context(), command.CreateResourceCommand{
		Type:        rt,
		Name:        req.Name,
		Unit:        req.Unit,
		Quantity:    float64(req.Quantity),
		MinQuantity: float64(req.MinQuantity),
		DepotID:     req.Depot.Ptr(),
		Author:      authorOrUsername(r, ""),
	})
	if err != nil {
		respondJSON(w, statusFromError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Resource created successfully", Data: resource})
}

// GetResource handles GET /api/{resourceType}/{id}
func (h *StockHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid resource ID"})
		return
	}

	view, err := h.getHandler.Handle(r.Context(), query.GetResourceQuery{ResourceType: rt, ResourceID: id})
	if err != nil {
		respondJSON(w, statusFromError(err), Response{Success: false, Error: "Resource not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// ListResources handles GET /api/{resourceType}
func (h *StockHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var depotID *uint
	if raw := r.URL.Query().Get("depot"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid depot ID"})
			return
		}
		u := uint(id)
		depotID = &u
	}

	result, err := h.listHandler.Handle(r.Context(), query.ListResourcesQuery{
		ResourceType: rt,
		DepotID:      depotID,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list resources")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list resources"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// UpdateResource handles PUT /api/{resourceType}/{id}
func (h *StockHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid resource ID"})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Unit        *string  `json:"unit"`
		Quantity    *float64 `json:"quantity"`
		MinQuantity *float64 `json:"min_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resource, err := h.updateHandler.Handle(r.Context(), command.UpdateResourceCommand{
		ResourceType: rt,
		ResourceID:   id,
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		MinQuantity:  req.MinQuantity,
		Author:       authorOrUsername(r, ""),
	})
	if err != nil {
		respondJSON(w, statusFromError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Resource updated successfully", Data: resource})
}

// DeleteResource handles DELETE /api/{resourceType}/{id}
func (h *StockHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid resource ID"})
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteResourceCommand{
		ResourceType: rt,
		ResourceID:   id,
		Author:       authorOrUsername(r, ""),
	}); err != nil {
		respondJSON(w, statusFromError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Resource deleted successfully"})
}

// TransferResource handles POST /api/{resourceType}/{id}/transfer
func (h *StockHandler) TransferResource(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid resource ID"})
		return
	}

	var req struct {
		Depot domain.Ref `json:"depot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resource, movement, err := h.transferHandler.Handle(r.Context(), command.TransferResourceCommand{
		ResourceType: rt,
		ResourceID:   id,
		ToDepotID:    req.Depot.Ptr(),
		Author:       authorOrUsername(r, ""),
	})
	if err != nil {
		respondJSON(w, statusFromError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Resource transferred", Data: map[string]interface{}{
		"resource": resource,
		"movement": movement,
	}})
}

// History handles GET /api/{resourceType}/{id}/history
func (h *StockHandler) History(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid resource ID"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.historyHandler.Handle(r.Context(), query.HistoryQuery{
		ResourceType: rt,
		ResourceID:   id,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("resource_id", id).Msg("Failed to load history")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to load history"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// Assigned handles GET /api/{resourceType}/{id}/assigned
func (h *StockHandler) Assigned(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceType(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Unknown resource type"})
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid resource ID"})
		return
	}

	totals, err := h.assignedHandler.Handle(r.Context(), query.AssignedQuery{ResourceType: rt, ResourceID: id})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("resource_id", id).Msg("Failed to compute assigned totals")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to compute assigned totals"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: totals})
}

// LowStock handles GET /api/low-stock
func (h *StockHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit == 0 {
		limit = 50
	}

	views, err := h.lowStockHandler.Handle(r.Context(), query.LowStockQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list low stock resources")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list low stock resources"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: views})
}

// RegisterRoutes registers all stock routes
func (h *StockHandler) RegisterRoutes(router *mux.Router) {
	// Protocol routes
	router.HandleFunc("/api/{resourceType}/reserve", h.metricsMiddleware("/api/{resourceType}/reserve", AuthMiddleware(h.Reserve))).Methods("POST")
	router.HandleFunc("/api/{resourceType}/reserve/release", h.metricsMiddleware("/api/{resourceType}/reserve/release", AuthMiddleware(h.Release))).Methods("POST")
	router.HandleFunc("/api/attributions/{id}/cancel", h.metricsMiddleware("/api/attributions/{id}/cancel", AdminMiddleware(h.CancelAttribution))).Methods("POST")

	// Reporting routes
	router.HandleFunc("/api/low-stock", h.metricsMiddleware("/api/low-stock", AuthMiddleware(h.LowStock))).Methods("GET")

	// Resource CRUD and read routes
	router.HandleFunc("/api/{resourceType}", h.metricsMiddleware("/api/{resourceType}", h.ListResources)).Methods("GET")
	router.HandleFunc("/api/{resourceType}", h.metricsMiddleware("/api/{resourceType}", AdminMiddleware(h.CreateResource))).Methods("POST")
	router.HandleFunc("/api/{resourceType}/{id}", h.metricsMiddleware("/api/{resourceType}/{id}", h.GetResource)).Methods("GET")
	router.HandleFunc("/api/{resourceType}/{id}", h.metricsMiddleware("/api/{resourceType}/{id}", AdminMiddleware(h.UpdateResource))).Methods("PUT", "PATCH")
	router.HandleFunc("/api/{resourceType}/{id}", h.metricsMiddleware("/api/{resourceType}/{id}", AdminMiddleware(h.DeleteResource))).Methods("DELETE")
	router.HandleFunc("/api/{resourceType}/{id}/history", h.metricsMiddleware("/api/{resourceType}/{id}/history", h.History)).Methods("GET")
	router.HandleFunc("/api/{resourceType}/{id}/assigned", h.metricsMiddleware("/api/{resourceType}/{id}/assigned", h.Assigned)).Methods("GET")
	router.HandleFunc("/api/{resourceType}/{id}/transfer", h.metricsMiddleware("/api/{resourceType}/{id}/transfer", AdminMiddleware(h.TransferResource))).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *StockHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Database unavailable"})
			return
		}

		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock service is healthy"})
	}).Methods("GET")
}

// authorOrUsername prefers the explicit author from the request body and
// falls back to the authenticated username
func authorOrUsername(r *http.Request, author string) string {
	if author != "" {
		return author
	}
	if username, ok := r.Context().Value(UsernameKey).(string); ok {
		return username
	}
	return ""
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
