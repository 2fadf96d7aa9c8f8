package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/cart"
	"github.com/dukalink/storefront-gateway/internal/model"
	"github.com/dukalink/storefront-gateway/internal/session"
)

// AuthService exchanges credentials with the backend and manages
// gateway sessions: the backend's bearer token and user are persisted
// in the session store, and the caller gets a gateway-signed session
// token binding it to that session.
type AuthService struct {
	auth     api.AuthAPI
	sessions session.Store
	carts    *cart.Store
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(auth api.AuthAPI, sessions session.Store, carts *cart.Store, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		auth:     auth,
		sessions: sessions,
		carts:    carts,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// SessionGrant is what a successful login/register hands the browser.
type SessionGrant struct {
	Token string
	User  model.User
}

func (s *AuthService) Login(ctx context.Context, req api.LoginRequest) (*SessionGrant, error) {
	creds, err := s.auth.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return s.openSession(ctx, creds)
}

func (s *AuthService) Register(ctx context.Context, req api.RegisterRequest) (*SessionGrant, error) {
	creds, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return s.openSession(ctx, creds)
}

// Profile refetches the session user from the backend and refreshes
// the persisted copy, so role or deactivation changes made server-side
// take effect without waiting for the session to expire.
func (s *AuthService) Profile(ctx context.Context, sessionID string) (*model.User, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess != nil {
		sess.User = *user
		if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
			return nil, fmt.Errorf("refresh session: %w", err)
		}
	}
	return user, nil
}

// Logout tears down the persisted session and drops the session cart.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	s.carts.Drop(sessionID)
	if err := s.sessions.Teardown(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) openSession(ctx context.Context, creds *api.Credentials) (*SessionGrant, error) {
	sessionID := uuid.NewString()
	sess := &session.Session{Token: creds.Token, User: creds.User}
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.sessionToken(sessionID, &creds.User)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	return &SessionGrant{Token: token, User: creds.User}, nil
}

func (s *AuthService) sessionToken(sessionID string, user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sessionID,
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(s.ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
