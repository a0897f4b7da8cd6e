package screen

import (
	"context"

	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
)

type AuthAPI interface {
	Signup(ctx context.Context, req dmodel.SignupRequest) (*dmodel.Message, error)
	Login(ctx context.Context, req dmodel.LoginRequest) (*dmodel.LoginResponse, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*dmodel.SessionStatus, error)
}

// SignupForm is what the signup page collects.
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthScreen backs the login and signup pages and tracks who is signed in.
type AuthScreen struct {
	state
	api           AuthAPI
	Authenticated bool
	User          *dmodel.User
	// Notice is the server's acknowledgement of the last signup.
	Notice string
}

func NewAuth(api AuthAPI) *AuthScreen {
	return &AuthScreen{api: api}
}

func (s *AuthScreen) Login(ctx context.Context, email, password string) error {
	req := dmodel.LoginRequest{Email: email, Password: password}
	return s.mutate(ctx, req, nil, func() error {
		resp, err := s.api.Login(ctx, req)
		if err != nil {
			return err
		}
		s.Authenticated = true
		s.User = &dmodel.User{ID: resp.ID, Email: resp.Email, Role: resp.Role}
		return nil
	}, noReload)
}

// Signup registers an account. It does not sign the user in.
func (s *AuthScreen) Signup(ctx context.Context, form SignupForm) error {
	s.Notice = ""
	req := dmodel.SignupRequest{Name: form.Name, Email: form.Email, Password: form.Password}

	var mismatch validation.FieldErrors
	if form.Password != form.ConfirmPassword {
		mismatch = mismatch.Add("confirmPassword", "Passwords do not match")
	}
	return s.mutate(ctx, req, mismatch, func() error {
		msg, err := s.api.Signup(ctx, req)
		if err != nil {
			return err
		}
		s.Notice = msg.Message
		return nil
	}, noReload)
}

func (s *AuthScreen) Logout(ctx context.Context) error {
	return s.mutate(ctx, nil, nil, func() error {
		if err := s.api.Logout(ctx); err != nil {
			return err
		}
		s.Authenticated = false
		s.User = nil
		return nil
	}, noReload)
}

// Refresh asks the server whether the session cookie is still valid.
func (s *AuthScreen) Refresh(ctx context.Context) error {
	return s.load(func() error {
		status, err := s.api.Status(ctx)
		if err != nil {
			return err
		}
		s.Authenticated = status.Authenticated
		s.User = status.User
		return nil
	})
}

func noReload(context.Context) error { return nil }
