package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/docdesk/internal/client/client"
	"github.com/dmitrijs2005/docdesk/internal/client/router"
	"github.com/dmitrijs2005/docdesk/internal/client/session"
)

// Navigate passes target through the route gate and renders whatever view
// it settles on. A redirect to the login page shows the login form.
func (a *App) Navigate(ctx context.Context, target string) error {
	d := router.Resolve(target, a.session.State())
	if d.Action == router.Defer {
		a.info("Loading...")
		return nil
	}
	a.log.Debug(ctx, "navigate", "target", target, "route", d.Path())
	a.setRoute(d)
	return a.render(ctx, d)
}

func (a *App) render(ctx context.Context, d router.Decision) error {
	switch d.Route {
	case router.RouteHome:
		return a.showDashboard(ctx)
	case router.RouteDocuments:
		return a.showDocuments(ctx)
	case router.RouteSearch:
		return a.showSearch(ctx, d.Query)
	case router.RouteProfile:
		return a.showProfile(ctx)
	case router.RouteLogin:
		return a.loginForm(ctx)
	case router.RouteRegister:
		return a.registerForm(ctx)
	}
	return nil
}

// enter makes route the current view, rendering it first when the shell is
// elsewhere. ok is false when the gate sent the shell somewhere else.
func (a *App) enter(ctx context.Context, route router.Route) (ok bool, err error) {
	d := router.Resolve(string(route), a.session.State())
	cur := a.current()
	if d.Action == router.Render && d.Route == route && cur.Action == router.Render && cur.Route == route {
		return true, nil
	}
	if err := a.Navigate(ctx, string(route)); err != nil {
		return false, err
	}
	cur = a.current()
	return cur.Action == router.Render && cur.Route == route, nil
}

// Report prints err. A rejected token ends the session and brings up the
// login form.
func (a *App) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, client.ErrUnauthorized) && a.session.State() == session.Authenticated {
		a.log.Info(ctx, "token rejected, signing out", "error", err)
		a.session.Expire(ctx)
		a.profile.DiscardAvatar()
		a.warn("Your session has expired, please sign in again.")
		if err := a.Navigate(ctx, string(router.RouteLogin)); err != nil {
			a.failure(err)
		}
		return
	}
	a.failure(err)
}
