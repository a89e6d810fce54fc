// Package session remembers where a device last was so the app can
// resume there on the next launch.
package session

import "frylyle/internal/storage"

// Routes never remembered: landing on one of these after a relaunch
// would trap the user in the auth flow.
var excludedRoutes = map[string]struct{}{
	"/splash":  {},
	"/welcome": {},
	"/signin":  {},
	"/signup":  {},
}

const (
	FallbackRoute = "/home"
	WelcomeRoute  = "/welcome"
)

// RouteMemory tracks the last visited non-auth route and the first-visit
// flag for one device.
type RouteMemory struct {
	bridge *storage.Bridge
}

func NewRouteMemory(bridge *storage.Bridge) *RouteMemory {
	return &RouteMemory{bridge: bridge}
}

// SaveLastRoute records path unconditionally, last write wins. Paths in
// the exclusion set are ignored.
func (r *RouteMemory) SaveLastRoute(path string) {
	if _, excluded := excludedRoutes[path]; excluded {
		return
	}
	r.bridge.Write(storage.KeyLastRoute, path)
}

// LastRoute returns the stored route, or the fallback when nothing is
// stored or the store failed.
func (r *RouteMemory) LastRoute() string {
	if v, ok := r.bridge.Read(storage.KeyLastRoute); ok && v != "" {
		return v
	}
	return FallbackRoute
}

// IsFirstVisit is true unless the stored flag is the literal "false".
func (r *RouteMemory) IsFirstVisit() bool {
	v, ok := r.bridge.Read(storage.KeyFirstVisit)
	return !ok || v != "false"
}

func (r *RouteMemory) SetFirstVisitComplete() {
	r.bridge.Write(storage.KeyFirstVisit, "false")
}

// ResetFirstVisit is called on logout so the next launch re-evaluates
// the landing decision.
func (r *RouteMemory) ResetFirstVisit() {
	r.bridge.Write(storage.KeyFirstVisit, "true")
}

// Landing makes the once-per-bootstrap decision:
//
//	no session            -> /welcome
//	session + first visit -> /home
//	session + returning   -> last stored route
//
// The first-visit flag is consumed unconditionally after deciding.
func (r *RouteMemory) Landing(authenticated bool) string {
	var dest string
	switch {
	case !authenticated:
		dest = WelcomeRoute
	case r.IsFirstVisit():
		dest = FallbackRoute
	default:
		dest = r.LastRoute()
	}
	r.SetFirstVisitComplete()
	return dest
}
