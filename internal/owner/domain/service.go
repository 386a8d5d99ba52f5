package domain

import (
	"context"
	"errors"
)

type CreateOwnerRequest struct {
	Name     string
	Email    string
	Password string
}

type UpdateOwnerRequest struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type Service interface {
	Create(ctx context.Context, req CreateOwnerRequest) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
	GetByID(ctx context.Context, id string) (Owner, error)
	Update(ctx context.Context, req UpdateOwnerRequest) (Owner, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidID       = errors.New("invalid_id")
	ErrEmailTaken      = errors.New("email_taken")
	ErrNotFound        = errors.New("not_found")
)
