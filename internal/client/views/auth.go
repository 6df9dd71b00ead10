package views

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
)

// Authenticator is the session side of the sign-in forms.
type Authenticator interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req models.RegisterRequest) error
}

type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return ErrCredentialsRequired
	}
	return nil
}

// SubmitLogin signs in through the session.
func SubmitLogin(ctx context.Context, auth Authenticator, f LoginForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := auth.Login(ctx, strings.TrimSpace(f.Email), f.Password); err != nil {
		return fail(err, "login failed, please check your details")
	}
	return nil
}

type RegisterForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f RegisterForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return ErrCredentialsRequired
	}
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Request builds the registration payload. The email doubles as username.
func (f RegisterForm) Request() models.RegisterRequest {
	email := strings.TrimSpace(f.Email)
	return models.RegisterRequest{
		Username: email,
		Email:    email,
		Password: f.Password,
		FullName: strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName)),
	}
}

// SubmitRegister creates the account and signs it in.
func SubmitRegister(ctx context.Context, auth Authenticator, f RegisterForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := auth.Register(ctx, f.Request()); err != nil {
		return fail(err, "registration failed, please check your details")
	}
	return nil
}
