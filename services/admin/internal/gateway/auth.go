package gateway

import (
	"context"
	"net/http"

	"store-admin/pkg/dmodel"
)

var (
	opSignup = operation{action: "signing up", fallback: "Registration failed. Please try again.", jsonOnly: true}
	opLogin  = operation{action: "logging in", fallback: "Invalid email or password"}
	opLogout = operation{action: "logging out", fallback: "Failed to log out"}
	opStatus = operation{action: "checking session", fallback: "Failed to fetch session status"}
)

// Signup registers an account and returns the server's acknowledgement.
func (c *Client) Signup(ctx context.Context, req dmodel.SignupRequest) (*dmodel.Message, error) {
	return sendJSON[dmodel.Message](ctx, c, opSignup, http.MethodPost, "/auth/signup", req)
}

// Login stores the session cookie in the client's jar on success.
func (c *Client) Login(ctx context.Context, req dmodel.LoginRequest) (*dmodel.LoginResponse, error) {
	return sendJSON[dmodel.LoginResponse](ctx, c, opLogin, http.MethodPost, "/auth/login", req)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, opLogout, request{method: http.MethodPost, path: "/auth/logout"}, nil)
}

func (c *Client) Status(ctx context.Context) (*dmodel.SessionStatus, error) {
	var status dmodel.SessionStatus
	if err := c.do(ctx, opStatus, request{method: http.MethodGet, path: "/auth/status"}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
