package middleware

import "strings"

// RouteClass groups gateway routes by how they touch depot stock. The
// rate limiter, the response cache and the logs all key off it, so the
// classification lives in one place.
type RouteClass string

const (
	// ClassAuth covers login and registration
	ClassAuth RouteClass = "auth"
	// ClassAccount covers technician profiles and account management
	ClassAccount RouteClass = "account"
	// ClassRead covers stock reads: lists, detail, history, assigned totals
	ClassRead RouteClass = "read"
	// ClassMutation covers reserve, release, cancel and resource CRUD
	ClassMutation RouteClass = "mutation"
	// ClassExport covers the XLSX movement exports
	ClassExport RouteClass = "export"
	// ClassInternal covers gateway-local endpoints: health, stats, cache
	ClassInternal RouteClass = "internal"
)

// ClassifyRoute maps a request to its route class
func ClassifyRoute(method, path string) RouteClass {
	switch {
	case strings.HasPrefix(path, "/auth"):
		return ClassAuth
	case strings.HasPrefix(path, "/users"), strings.HasPrefix(path, "/admin"):
		return ClassAccount
	case strings.HasSuffix(path, "/export"):
		return ClassExport
	case strings.HasPrefix(path, "/api/"):
		if method == "GET" || method == "HEAD" {
			return ClassRead
		}
		return ClassMutation
	default:
		return ClassInternal
	}
}

// determineServiceFromPath extracts the backend service name from the
// request path. Empty means the gateway answers the route itself.
func determineServiceFromPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/auth"),
		strings.HasPrefix(path, "/users"),
		strings.HasPrefix(path, "/admin"):
		return "user"
	case strings.HasPrefix(path, "/api/"):
		// Every /api prefix (materials, consumables, vehicles, depots,
		// movements, attributions, low-stock) is served by the stock service.
		return "stock"
	default:
		return ""
	}
}
