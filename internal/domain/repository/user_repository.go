package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for credential store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUlID(ctx context.Context, ulid string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, ulid, hash string) error
	UpdateProfile(ctx context.Context, u *entity.User) error
	List(ctx context.Context, role entity.Role, limit, offset int) ([]entity.User, int, error)
}
