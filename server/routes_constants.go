package server

// Route path constants
const (
	// API Routes
	RouteAPIToken = "/api/token"

	// Operational Routes
	RouteHealth = "/healthz"

	// RouteAnyPath matches every path; used for CORS preflight and the
	// not-found fallback.
	RouteAnyPath = "/"
)
