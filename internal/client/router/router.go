// Package router decides what the shell shows for a navigation target given
// the session state.
package router

import (
	"net/url"
	"path"
	"strings"

	"github.com/dmitrijs2005/docdesk/internal/client/session"
)

type Route string

const (
	RouteHome      Route = "/"
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDocuments Route = "/documents"
	RouteSearch    Route = "/search"
	RouteProfile   Route = "/profile"
)

type access int

const (
	publicOnly access = iota
	protected
)

var routes = map[Route]access{
	RouteLogin:     publicOnly,
	RouteRegister:  publicOnly,
	RouteHome:      protected,
	RouteDocuments: protected,
	RouteSearch:    protected,
	RouteProfile:   protected,
}

type Action int

const (
	// Defer means the session is still loading; show nothing yet.
	Defer Action = iota
	Render
	Redirect
)

func (a Action) String() string {
	switch a {
	case Defer:
		return "defer"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one navigation. For Render, Route is the view
// to show and Query the parameters it was asked for; for Redirect, Route is
// where to go instead.
type Decision struct {
	Action Action
	Route  Route
	Query  url.Values
}

// Path is the decision's target including its query string.
func (d Decision) Path() string {
	if len(d.Query) == 0 {
		return string(d.Route)
	}
	return string(d.Route) + "?" + d.Query.Encode()
}

// Decide applies the navigation rules to target, e.g. "/search?doc=7".
func Decide(target string, state session.State) Decision {
	if state == session.Loading {
		return Decision{Action: Defer}
	}

	route, query := parse(target)

	acc, known := routes[route]
	if !known {
		return Decision{Action: Redirect, Route: RouteHome}
	}

	authed := state == session.Authenticated
	switch {
	case acc == protected && !authed:
		return Decision{Action: Redirect, Route: RouteLogin}
	case acc == publicOnly && authed:
		return Decision{Action: Redirect, Route: RouteHome}
	}

	return Decision{Action: Render, Route: route, Query: query}
}

// Resolve follows redirects until a Render or Defer decision is reached.
// Redirect targets are always known routes, so this settles in two steps
// at most.
func Resolve(target string, state session.State) Decision {
	d := Decide(target, state)
	for i := 0; d.Action == Redirect && i < len(routes); i++ {
		d = Decide(d.Path(), state)
	}
	return d
}

func parse(target string) (Route, url.Values) {
	target = strings.TrimSpace(target)
	u, err := url.Parse(target)
	if err != nil {
		return Route(target), nil
	}

	p := u.Path
	if p == "" {
		p = "/"
	}
	p = path.Clean("/" + p)

	q := u.Query()
	if len(q) == 0 {
		q = nil
	}
	return Route(p), q
}
