package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fleetops/depot-backend/internal/user/domain"
	"github.com/fleetops/depot-backend/pkg/auth"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)

// roleRank orders the account roles. Every manager can do what a
// technician can; every admin what a manager can.
var roleRank = map[string]int{
	domain.RoleTechnician: 1,
	domain.RoleManager:    2,
	domain.RoleAdmin:      3,
}

// AuthMiddleware validates the JWT and puts the caller's identity on
// the request context
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireRole authenticates the caller and rejects roles below minimum
func RequireRole(minimum string, next http.HandlerFunc) http.HandlerFunc {
	required := roleRank[minimum]
	return AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(RoleKey).(string)
		if roleRank[role] < required {
			respondError(w, http.StatusForbidden, minimum+" access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ManagerMiddleware admits managers and admins. Managers look up the
// technicians they dispatch to but cannot change accounts.
func ManagerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return RequireRole(domain.RoleManager, next)
}

// AdminMiddleware admits admins only
func AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return RequireRole(domain.RoleAdmin, next)
}

// Helper function for error responses
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
