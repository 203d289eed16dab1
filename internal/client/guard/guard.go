// Package guard gates access to views that require a signed-in user.
//
// The check is synchronous and re-evaluated on every navigation, never
// cached: a logout while a protected view is open redirects on the next
// check. When a request is denied, the originally requested route is kept
// so a successful login can resume there.
package guard

import (
	"sync"

	"github.com/avesnin/inkpress-cli/internal/client/session"
)

// Route names a navigable view.
type Route string

const (
	RouteLogin       Route = "/login"
	RouteFeed        Route = "/"
	RouteWrite       Route = "/create-post"
	RouteEditPost    Route = "/edit-post"
	RouteDeletePost  Route = "/delete-post"
	RouteProfile     Route = "/profile"
	RouteEditProfile Route = "/profile/edit"
)

// Decision is the outcome of a guard check. Either Allowed is true, or
// Redirect names the view to go to instead.
type Decision struct {
	Allowed  bool
	Redirect Route
}

// Sessions is the read-only slice of the session manager the guard needs.
type Sessions interface {
	Current() session.Session
}

type Guard struct {
	sessions Sessions

	mu     sync.Mutex
	resume Route
	armed  bool
}

func New(sessions Sessions) *Guard {
	return &Guard{sessions: sessions}
}

// Check decides whether the requested route may render. An anonymous
// session is redirected to the login view and requested is recorded as the
// resume target, replacing any earlier one.
func (g *Guard) Check(requested Route) Decision {
	if g.sessions.Current().Authenticated() {
		return Decision{Allowed: true}
	}

	g.mu.Lock()
	g.resume = requested
	g.armed = true
	g.mu.Unlock()

	return Decision{Redirect: RouteLogin}
}

// TakeResume pops the stored resume target. The second return is false when
// no redirect is pending. Each recorded target is handed out once.
func (g *Guard) TakeResume() (Route, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.armed {
		return "", false
	}
	g.armed = false
	r := g.resume
	g.resume = ""
	return r, true
}
