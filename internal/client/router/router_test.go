package router

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docdesk/internal/client/session"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name   string
		target string
		state  session.State
		want   Decision
	}{
		{"loading defers protected", "/documents", session.Loading, Decision{Action: Defer}},
		{"loading defers public", "/login", session.Loading, Decision{Action: Defer}},
		{"anonymous protected", "/documents", session.Anonymous, Decision{Action: Redirect, Route: RouteLogin}},
		{"anonymous home", "/", session.Anonymous, Decision{Action: Redirect, Route: RouteLogin}},
		{"anonymous login", "/login", session.Anonymous, Decision{Action: Render, Route: RouteLogin}},
		{"anonymous register", "/register", session.Anonymous, Decision{Action: Render, Route: RouteRegister}},
		{"authenticated login", "/login", session.Authenticated, Decision{Action: Redirect, Route: RouteHome}},
		{"authenticated register", "/register", session.Authenticated, Decision{Action: Redirect, Route: RouteHome}},
		{"authenticated profile", "/profile", session.Authenticated, Decision{Action: Render, Route: RouteProfile}},
		{"unknown anonymous", "/nowhere", session.Anonymous, Decision{Action: Redirect, Route: RouteHome}},
		{"unknown authenticated", "/admin/users", session.Authenticated, Decision{Action: Redirect, Route: RouteHome}},
		{"trailing slash", "/documents/", session.Authenticated, Decision{Action: Render, Route: RouteDocuments}},
		{"empty is home", "", session.Authenticated, Decision{Action: Render, Route: RouteHome}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.target, tc.state))
		})
	}
}

func TestDecide_KeepsQueryOnRender(t *testing.T) {
	d := Decide("/search?doc=7", session.Authenticated)
	require.Equal(t, Render, d.Action)
	require.Equal(t, RouteSearch, d.Route)
	require.Equal(t, url.Values{"doc": {"7"}}, d.Query)
	require.Equal(t, "/search?doc=7", d.Path())
}

func TestResolve_FollowsRedirects(t *testing.T) {
	d := Resolve("/nowhere", session.Anonymous)
	require.Equal(t, Decision{Action: Render, Route: RouteLogin}, d)

	d = Resolve("/login", session.Authenticated)
	require.Equal(t, Decision{Action: Render, Route: RouteHome}, d)

	require.Equal(t, Defer, Resolve("/documents", session.Loading).Action)
}
