package repository

import (
	"context"
	"errors"

	"github.com/healisdev/healis-api/internal/domain/entity"
)

// Sentinel errors shared by repository implementations.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for patient identity persistence.
// Create returns ErrDuplicate when the email or phone number is taken.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
