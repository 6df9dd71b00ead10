package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/client/router"
	"github.com/dmitrijs2005/docdesk/internal/client/views"
	"github.com/dmitrijs2005/docdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readPassword(prompt string) (string, error) {
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// loginForm prompts for credentials and signs in. On success the shell
// moves to the dashboard.
func (a *App) loginForm(ctx context.Context) error {
	a.heading("Sign in")
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Password")
	if err != nil {
		return err
	}

	if err := views.SubmitLogin(ctx, a.session, views.LoginForm{Email: email, Password: password}); err != nil {
		return err
	}

	u, _ := a.session.User()
	a.success("Signed in as %s", u.DisplayName())
	return a.Navigate(ctx, string(router.RouteHome))
}

// registerForm creates an account, signs it in and moves to the dashboard.
func (a *App) registerForm(ctx context.Context) error {
	a.heading("Create an account")

	var f views.RegisterForm
	for _, field := range []struct {
		prompt string
		dst    *string
	}{
		{"First name", &f.FirstName},
		{"Last name", &f.LastName},
		{"Email", &f.Email},
	} {
		v, err := getSimpleText(a.reader, field.prompt, a.out)
		if err != nil {
			return err
		}
		*field.dst = v
	}

	var err error
	if f.Password, err = a.readPassword("Password"); err != nil {
		return err
	}
	if f.ConfirmPassword, err = a.readPassword("Confirm password"); err != nil {
		return err
	}

	if err := views.SubmitRegister(ctx, a.session, f); err != nil {
		return err
	}

	u, _ := a.session.User()
	a.success("Welcome, %s", u.DisplayName())
	return a.Navigate(ctx, string(router.RouteHome))
}

// Logout ends the session and leaves the shell on the login page without
// prompting.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}
	a.session.Logout(ctx)
	a.profile.DiscardAvatar()
	a.setRoute(router.Resolve(string(router.RouteLogin), a.session.State()))
	a.success("Signed out")
	return nil
}

// Whoami prints the signed-in user.
func (a *App) Whoami(ctx context.Context) error {
	u, err := a.session.Require()
	if err != nil {
		return err
	}
	a.info("%s <%s>", u.DisplayName(), u.Email)
	a.info("%s", dimColor.Sprint(fmt.Sprintf("id %s, username %s, role %s", u.ID, u.Username, u.Role)))
	if st, ok := a.tokens.(tokenAger); ok {
		if at, found, err := st.SavedAt(ctx); err != nil {
			a.log.Warn(ctx, "reading token timestamp", "error", err)
		} else if found {
			a.info("%s", dimColor.Sprint("signed in since "+at.Local().Format(dateLayout)))
		}
	}
	return nil
}

// tokenAger is implemented by token stores that remember when the token was
// written.
type tokenAger interface {
	SavedAt(ctx context.Context) (time.Time, bool, error)
}
