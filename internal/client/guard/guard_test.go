package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avesnin/inkpress-cli/internal/client/models"
	"github.com/avesnin/inkpress-cli/internal/client/session"
)

// fakeSessions serves a controllable session snapshot.
type fakeSessions struct {
	cur session.Session
}

func (f *fakeSessions) Current() session.Session { return f.cur }

func signedIn() session.Session {
	return session.Session{
		User:  &models.User{ID: "u1", Username: "alice", Email: "a@x.com"},
		Token: "tok",
	}
}

func TestCheck_AnonymousRedirectsAndRecordsResume(t *testing.T) {
	g := New(&fakeSessions{})

	d := g.Check(RouteWrite)

	assert.False(t, d.Allowed)
	assert.Equal(t, RouteLogin, d.Redirect)

	route, ok := g.TakeResume()
	require.True(t, ok)
	assert.Equal(t, RouteWrite, route)
}

func TestCheck_AuthenticatedAllows(t *testing.T) {
	g := New(&fakeSessions{cur: signedIn()})

	d := g.Check(RouteWrite)

	assert.True(t, d.Allowed)
	_, ok := g.TakeResume()
	assert.False(t, ok, "an allowed check must not arm a resume target")
}

func TestCheck_ReEvaluatedEveryNavigation(t *testing.T) {
	fs := &fakeSessions{cur: signedIn()}
	g := New(fs)

	require.True(t, g.Check(RouteProfile).Allowed)

	// Logout between navigations: the next check must redirect.
	fs.cur = session.Session{}
	d := g.Check(RouteProfile)
	assert.False(t, d.Allowed)
	assert.Equal(t, RouteLogin, d.Redirect)
}

func TestTakeResume_HandedOutOnce(t *testing.T) {
	g := New(&fakeSessions{})
	g.Check(RouteEditProfile)

	route, ok := g.TakeResume()
	require.True(t, ok)
	assert.Equal(t, RouteEditProfile, route)

	_, ok = g.TakeResume()
	assert.False(t, ok)
}

func TestCheck_LaterDenialReplacesResumeTarget(t *testing.T) {
	g := New(&fakeSessions{})
	g.Check(RouteWrite)
	g.Check(RouteDeletePost)

	route, ok := g.TakeResume()
	require.True(t, ok)
	assert.Equal(t, RouteDeletePost, route)
}
