package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fleetops/depot-backend/internal/user/domain"
	"github.com/fleetops/depot-backend/internal/user/usecase/command"
	"github.com/fleetops/depot-backend/internal/user/usecase/query"
)

// CommandHandlers holds all user command handlers
type CommandHandlers struct {
	RegisterHandler     *command.RegisterUserHandler
	LoginHandler        *command.LoginUserHandler
	UpdateHandler       *command.UpdateUserHandler
	DeleteHandler       *command.DeleteUserHandler
	ChangeRoleHandler   *command.ChangeRoleHandler
	ToggleActiveHandler *command.ToggleActiveHandler
}

// QueryHandlers holds all user query handlers
type QueryHandlers struct {
	GetUserHandler *query.GetUserHandler
	ListHandler    *query.ListUsersHandler
	StatsHandler   *query.GetStatsHandler
}

// UserHandler handles HTTP requests for users
type UserHandler struct {
	commands *CommandHandlers
	queries  *QueryHandlers

	repo           domain.UserRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	activeUsers    prometheus.Gauge
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	commands := &CommandHandlers{
		RegisterHandler:     command.NewRegisterUserHandler(repo),
		LoginHandler:        command.NewLoginUserHandler(repo),
		UpdateHandler:       command.NewUpdateUserHandler(repo),
		DeleteHandler:       command.NewDeleteUserHandler(repo),
		ChangeRoleHandler:   command.NewChangeRoleHandler(repo),
		ToggleActiveHandler: command.NewToggleActiveHandler(repo),
	}
	queries := &QueryHandlers{
		GetUserHandler: query.NewGetUserHandler(repo),
		ListHandler:    query.NewListUsersHandler(repo),
		StatsHandler:   query.NewGetStatsHandler(repo),
	}
	return NewUserHandlerWithDI(commands, queries, repo)
}

// NewUserHandlerWithDI creates a new user handler from pre-built
// command and query handlers
func NewUserHandlerWithDI(commands *CommandHandlers, queries *QueryHandlers, repo domain.UserRepository) *UserHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_requests_total",
			Help: "Total number of requests to user service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_service_request_duration_seconds",
			Help:    "Duration of user service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	activeUsers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_service_active_users",
			Help: "Number of active users in the system",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(activeUsers)

	return &UserHandler{
		commands:       commands,
		queries:        queries,
		repo:           repo,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		activeUsers:    activeUsers,
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
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     domain.RoleTechnician, // Default role
	}

	user, err := h.commands.RegisterHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.updateActiveUsersMetric()
	h.respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	}

	response, err := h.commands.LoginHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

// GetProfile handles GET /users/me (authenticated user)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	q := query.GetUserQuery{ID: userID}
	user, err := h.queries.GetUserHandler.Handle(q)
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /users/me (authenticated user)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateUserCommand{
		ID:       userID,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	}

	user, err := h.commands.UpdateHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// GetInternalUser handles GET /internal/users/{id}. The stock service
// calls this to validate attribution targets; it returns the bare user
// record without the response envelope and without auth, so it must
// only ever be reachable on the internal network.
func (h *UserHandler) GetInternalUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.queries.GetUserHandler.Handle(query.GetUserQuery{ID: uint(id)})
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// --- ADMIN ENDPOINTS ---

// CreateAdmin handles POST /admin/users (admin only)
func (h *UserHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role, // Admin can set role
	}

	user, err := h.commands.RegisterHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.updateActiveUsersMetric()
	h.respondJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /admin/users/{id} (admin only)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	q := query.GetUserQuery{ID: uint(id)}
	user, err := h.queries.GetUserHandler.Handle(q)
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /admin/users (manager or admin)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListUsersQuery{
		Limit:  limit,
		Offset: offset,
		Role:   r.URL.Query().Get("role"),
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid active filter")
			return
		}
		q.Active = &active
	}

	result, err := h.queries.ListHandler.Handle(q)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.updateActiveUsersMetric()
	h.respondJSON(w, http.StatusOK, result)
}

// UpdateUser handles PUT /admin/users/{id} (admin only)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateUserCommand{
		ID:       uint(id),
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	}

	user, err := h.commands.UpdateHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/{id} (admin only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	cmd := command.DeleteUserCommand{ID: uint(id)}
	if err := h.commands.DeleteHandler.Handle(cmd); err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.updateActiveUsersMetric()
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// ChangeRole handles PUT /admin/users/{id}/role (admin only)
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.ChangeRoleCommand{
		UserID: uint(id),
		Role:   req.Role,
	}

	user, err := h.commands.ChangeRoleHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// ToggleActive handles PUT /admin/users/{id}/active (admin only)
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.ToggleActiveCommand{
		UserID:   uint(id),
		IsActive: req.IsActive,
	}

	user, err := h.commands.ToggleActiveHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// GetStats handles GET /admin/stats (admin only)
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	q := query.GetStatsQuery{}
	stats, err := h.queries.StatsHandler.Handle(q)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

// HealthCheck handles GET /health
func (h *UserHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		// Check database connectivity
		if err := db.PingContext(ctx); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// updateActiveUsersMetric updates the active users gauge
func (h *UserHandler) updateActiveUsersMetric() {
	count, err := h.repo.CountActive()
	if err == nil {
		h.activeUsers.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func (h *UserHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *UserHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/auth/register", h.metricsMiddleware("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("/auth/login", h.Login)).Methods("POST")

	// Internal service-to-service route
	router.HandleFunc("/internal/users/{id}", h.metricsMiddleware("/internal/users/{id}", h.GetInternalUser)).Methods("GET")

	// Authenticated user routes
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", AuthMiddleware(h.GetProfile))).Methods("GET")
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", AuthMiddleware(h.UpdateProfile))).Methods("PUT")

	// Account management routes. Reads are open to managers so they can
	// look up the technicians they dispatch to; mutations stay admin.
	router.HandleFunc("/admin/users", h.metricsMiddleware("/admin/users", AdminMiddleware(h.CreateAdmin))).Methods("POST")
	router.HandleFunc("/admin/users", h.metricsMiddleware("/admin/users", ManagerMiddleware(h.ListUsers))).Methods("GET")
	router.HandleFunc("/admin/users/{id}", h.metricsMiddleware("/admin/users/{id}", ManagerMiddleware(h.GetUser))).Methods("GET")
	router.HandleFunc("/admin/users/{id}", h.metricsMiddleware("/admin/users/{id}", AdminMiddleware(h.UpdateUser))).Methods("PUT")
	router.HandleFunc("/admin/users/{id}", h.metricsMiddleware("/admin/users/{id}", AdminMiddleware(h.DeleteUser))).Methods("DELETE")
	router.HandleFunc("/admin/users/{id}/role", h.metricsMiddleware("/admin/users/{id}/role", AdminMiddleware(h.ChangeRole))).Methods("PUT")
	router.HandleFunc("/admin/users/{id}/active", h.metricsMiddleware("/admin/users/{id}/active", AdminMiddleware(h.ToggleActive))).Methods("PUT")
	router.HandleFunc("/admin/stats", h.metricsMiddleware("/admin/stats", AdminMiddleware(h.GetStats))).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *UserHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
