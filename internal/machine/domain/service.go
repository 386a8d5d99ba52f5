package domain

import (
	"context"
	"errors"
)

type CreateMachineRequest struct {
	MachineID string
	OwnerID   string
	Label     string
}

type UpdateMachineRequest struct {
	ID        string
	MachineID string
	OwnerID   string
	Label     string
}

type Service interface {
	Create(ctx context.Context, req CreateMachineRequest) (Machine, error)
	List(ctx context.Context) ([]Machine, error)
	GetByID(ctx context.Context, id string) (Machine, error)
	Update(ctx context.Context, req UpdateMachineRequest) (Machine, error)
	Delete(ctx context.Context, id string) error

	// ResolveOrCreate resolves ref as a numeric primary key first, then as an
	// external machine-id string. An unknown string implicitly creates a new
	// machine carrying ref as both id and label.
	ResolveOrCreate(ctx context.Context, ref string) (Machine, error)

	// GetByMachineID looks up a machine by its external id without creating.
	GetByMachineID(ctx context.Context, machineID string) (Machine, error)
}

var (
	ErrInvalidMachineID = errors.New("invalid_machine_id")
	ErrInvalidOwner     = errors.New("invalid_owner")
	ErrInvalidID        = errors.New("invalid_id")
	ErrMachineIDTaken   = errors.New("machine_id_taken")
	ErrNotFound         = errors.New("not_found")
)
