package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for User Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a new user
// @Description Create a new account with the default technician role
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,full_name=string} true "Registration data"
// @Success 201 {object} object{id=int,username=string,email=string,full_name=string,role=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary Login
// @Description Authenticate and receive a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Credentials"
// @Success 200 {object} object{token=string,user=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// GetInternalUser godoc
// @Summary Internal user lookup
// @Description Bare user record for service-to-service calls; not exposed through the gateway
// @Tags Internal
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{id=int,username=string,full_name=string,role=string,is_active=bool}
// @Failure 404 {object} object{error=string}
// @Router /internal/users/{id} [get]
func (h *UserHandler) GetInternalUserDoc() {}

// ListUsers godoc
// @Summary List users
// @Description List users with pagination and optional role filter (Admin only)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Param role query string false "Role filter" Enums(technician, manager, admin)
// @Success 200 {array} object
// @Failure 403 {object} object{error=string}
// @Router /admin/users [get]
func (h *UserHandler) ListUsersDoc() {}

// GetStats godoc
// @Summary User statistics
// @Description Aggregate user counts by role (Admin only)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{total_users=int,technicians=int,managers=int,admins=int}
// @Failure 403 {object} object{error=string}
// @Router /admin/stats [get]
func (h *UserHandler) GetStatsDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string}
// @Failure 503 {object} object{status=string,error=string}
// @Router /health [get]
func (h *UserHandler) HealthCheckDoc() {}
