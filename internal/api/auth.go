package api

import (
	"context"
	"net/http"

	"github.com/dukalink/storefront-gateway/internal/model"
)

type AuthAPI interface {
	Login(ctx context.Context, req LoginRequest) (*Credentials, error)
	Register(ctx context.Context, req RegisterRequest) (*Credentials, error)
	CurrentUser(ctx context.Context) (*model.User, error)
}

var _ AuthAPI = (*Client)(nil)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Credentials is the backend's auth grant: the bearer token the
// gateway stores in the session plus the authenticated user.
type Credentials struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*Credentials, error) {
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Credentials, error) {
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// CurrentUser refetches the session user, used to detect server-side
// deactivation mid-session.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
