package middleware

import (
	"testing"
	"time"
)

func TestClassifyRoute(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   RouteClass
	}{
		{"POST", "/auth/login", ClassAuth},
		{"GET", "/users/me", ClassAccount},
		{"GET", "/admin/users", ClassAccount},
		{"GET", "/api/materials", ClassRead},
		{"GET", "/api/materials/3/history", ClassRead},
		{"GET", "/api/low-stock", ClassRead},
		{"POST", "/api/materials/reserve", ClassMutation},
		{"POST", "/api/materials/reserve/release", ClassMutation},
		{"POST", "/api/attributions/9/cancel", ClassMutation},
		{"PATCH", "/api/vehicles/2", ClassMutation},
		{"GET", "/api/movements/export", ClassExport},
		{"GET", "/health", ClassInternal},
		{"GET", "/gateway/stats", ClassInternal},
	}

	for _, tt := range tests {
		if got := ClassifyRoute(tt.method, tt.path); got != tt.want {
			t.Errorf("ClassifyRoute(%s %s) = %s, want %s", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestDetermineServiceFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/auth/login", "user"},
		{"/users/me", "user"},
		{"/admin/users/3", "user"},
		{"/api/materials/reserve", "stock"},
		{"/api/depots", "stock"},
		{"/health", ""},
	}

	for _, tt := range tests {
		if got := determineServiceFromPath(tt.path); got != tt.want {
			t.Errorf("determineServiceFromPath(%s) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCacheTTL(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		cacheable bool
		ttl       time.Duration
	}{
		{"resource list", "GET", "/api/materials", true, 5 * time.Minute},
		{"low stock ages fast", "GET", "/api/low-stock", true, 30 * time.Second},
		{"assigned totals", "GET", "/api/materials/3/assigned", true, time.Minute},
		{"history", "GET", "/api/materials/3/history", true, time.Minute},
		{"mutations never cached", "POST", "/api/materials/reserve", false, 0},
		{"exports never cached", "GET", "/api/movements/export", false, 0},
		{"login never cached", "POST", "/auth/login", false, 0},
		{"profile never cached", "GET", "/users/me", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ttl, cacheable := cacheTTL(tt.method, tt.path)
			if cacheable != tt.cacheable {
				t.Fatalf("cacheTTL(%s %s) cacheable = %v, want %v", tt.method, tt.path, cacheable, tt.cacheable)
			}
			if cacheable && ttl != tt.ttl {
				t.Errorf("cacheTTL(%s %s) = %v, want %v", tt.method, tt.path, ttl, tt.ttl)
			}
		})
	}
}

func TestRatePoliciesCoverEveryClass(t *testing.T) {
	for _, class := range []RouteClass{ClassAuth, ClassAccount, ClassRead, ClassMutation, ClassExport, ClassInternal} {
		policy, ok := ratePolicies[class]
		if !ok || policy.Limit == 0 {
			t.Errorf("No rate policy for route class %s", class)
		}
	}

	if ratePolicies[ClassMutation].Limit >= ratePolicies[ClassRead].Limit {
		t.Error("Mutations should be throttled harder than reads")
	}
	if ratePolicies[ClassExport].Limit >= ratePolicies[ClassMutation].Limit {
		t.Error("Exports should be throttled harder than mutations")
	}
}
