package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/docdesk/internal/client/router"
	"github.com/dmitrijs2005/docdesk/internal/client/views"
)

func (a *App) showProfile(ctx context.Context) error {
	if err := a.profile.Load(ctx); err != nil {
		return err
	}
	a.heading("Profile")
	a.printProfile()
	return nil
}

func (a *App) printProfile() {
	p, ok := a.profile.Profile()
	if !ok {
		return
	}
	form := a.profile.Form()

	picture := a.profile.Preview()
	if picture == "" {
		picture = fmt.Sprintf("(none, showing %s)", views.Initials(p.DisplayName()))
	}

	row := func(label, value string) {
		fmt.Fprintf(a.out, "  %-14s %s\n", dimColor.Sprint(label), value)
	}
	row("Name", form.FullName)
	row("Email", form.Email)
	row("Username", p.Username)
	row("Role", string(p.Role))
	row("Active", fmt.Sprintf("%t", p.IsActive))
	row("Member since", formatDate(p.CreatedAt))
	if p.LastLogin != nil {
		row("Last login", formatDate(*p.LastLogin))
	}
	row("Picture", picture)

	if form.FullName != p.FullName || form.Email != p.Email || form.ShowPasswordFields || a.profile.HasStagedAvatar() {
		a.warn("You have unsaved changes. Type 'save' to apply them.")
	}
}

// EditProfile prompts for a new name and email. Blank answers keep the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	if ok, err := a.enter(ctx, router.RouteProfile); !ok || err != nil {
		return err
	}

	form := a.profile.Form()
	name, err := getSimpleText(a.reader, fmt.Sprintf("Full name [%s]", form.FullName), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", form.Email), a.out)
	if err != nil {
		return err
	}

	a.profile.Edit(func(f *views.ProfileForm) {
		if name != "" {
			f.FullName = name
		}
		if email != "" {
			f.Email = email
		}
	})
	a.printProfile()
	return nil
}

// ChangePassword stages a password change. It is checked right away and
// sent with the next save.
func (a *App) ChangePassword(ctx context.Context) error {
	if ok, err := a.enter(ctx, router.RouteProfile); !ok || err != nil {
		return err
	}

	old, err := a.readPassword("Current password")
	if err != nil {
		return err
	}
	next, err := a.readPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.readPassword("Confirm new password")
	if err != nil {
		return err
	}

	a.profile.Edit(func(f *views.ProfileForm) {
		f.ShowPasswordFields = true
		f.OldPassword = old
		f.NewPassword = next
		f.ConfirmPassword = confirm
	})

	if _, err := a.profile.Form().PasswordChange(); err != nil {
		a.profile.Edit(func(f *views.ProfileForm) {
			f.ShowPasswordFields = false
			f.OldPassword, f.NewPassword, f.ConfirmPassword = "", "", ""
		})
		return err
	}
	a.info("Password change staged. Type 'save' to apply it.")
	return nil
}

// Avatar stages the image at path as the new profile picture.
func (a *App) Avatar(ctx context.Context, path string) error {
	if ok, err := a.enter(ctx, router.RouteProfile); !ok || err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := a.profile.StageAvatar(filepath.Base(path), f); err != nil {
		return err
	}
	a.info("Picture staged as %s. Type 'save' to upload it.", a.profile.Preview())
	return nil
}

// SaveProfile sends the staged changes.
func (a *App) SaveProfile(ctx context.Context) error {
	if ok, err := a.enter(ctx, router.RouteProfile); !ok || err != nil {
		return err
	}

	if err := spin(a.out, "saving", func() error { return a.profile.Save(ctx) }); err != nil {
		return err
	}
	a.success("Profile updated")
	a.printProfile()
	return nil
}
