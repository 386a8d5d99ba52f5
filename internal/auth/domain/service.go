package domain

import (
	"context"
	"time"

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
)

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult carries the resolved principal and its session token.
type LoginResult struct {
	Role        string
	PrincipalID string
	DisplayName string
	RawToken    string
	ExpiresAt   time.Time
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (accountdomain.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
}
