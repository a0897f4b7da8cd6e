package backend_controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
	"store-admin/services/backend/internal"
)

const (
	RoleUser   = "USER"
	SessionTTL = 24 * time.Hour
)

type if_repo_users interface {
	CreateUser(_ context.Context, user dmodel.User) (*dmodel.User, error)
	GetUserByEmail(_ context.Context, email string) (*dmodel.User, error)
	GetUser(_ context.Context, id string) (*dmodel.User, error)
}

// sessionClaims is the payload of the session cookie.
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Controller_Auth struct {
	repo   if_repo_users
	secret []byte
	now    func() time.Time
}

func NewAuth(repo if_repo_users, secret string) *Controller_Auth {
	return &Controller_Auth{
		repo:   repo,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Signup registers a new account with the USER role.
func (c *Controller_Auth) Signup(ctx context.Context, req dmodel.SignupRequest) (*dmodel.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := c.repo.CreateUser(ctx, dmodel.User{
		Name:         req.Name,
		Email:        strings.TrimSpace(req.Email),
		Role:         RoleUser,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns the user with a signed session token.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (c *Controller_Auth) Login(ctx context.Context, req dmodel.LoginRequest) (*dmodel.User, string, error) {
	user, err := c.repo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, internal.ErrItemNotFound) {
		return nil, "", internal.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", internal.ErrInvalidCredentials
	}

	token, err := c.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (c *Controller_Auth) IssueToken(user *dmodel.User) (string, error) {
	now := c.now()
	claims := sessionClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves a session token to its user. Any invalid, expired or orphaned
// token is reported as ErrUnauthenticated.
func (c *Controller_Auth) Authenticate(ctx context.Context, token string) (*dmodel.User, error) {
	if token == "" {
		return nil, internal.ErrUnauthenticated
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrUnauthenticated, err)
	}

	user, err := c.repo.GetUser(ctx, claims.Subject)
	if errors.Is(err, internal.ErrItemNotFound) {
		return nil, internal.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	return user, nil
}

// Status never fails on a bad token; it reports the session as anonymous instead.
func (c *Controller_Auth) Status(ctx context.Context, token string) (dmodel.SessionStatus, error) {
	user, err := c.Authenticate(ctx, token)
	if errors.Is(err, internal.ErrUnauthenticated) {
		return dmodel.SessionStatus{Authenticated: false}, nil
	}
	if err != nil {
		return dmodel.SessionStatus{}, err
	}

	return dmodel.SessionStatus{Authenticated: true, User: user}, nil
}
