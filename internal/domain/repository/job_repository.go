package repository

import (
	"context"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
)

type JobRepository interface {
	Create(ctx context.Context, j *entity.Job) error
	GetByUlID(ctx context.Context, ulid string) (*entity.Job, error)
	// GetOwned returns the job only when it belongs to recruiterID.
	GetOwned(ctx context.Context, ulid, recruiterID string) (*entity.Job, error)
	ExistsTitle(ctx context.Context, recruiterID, title string) (bool, error)
	Update(ctx context.Context, j *entity.Job) error
	Delete(ctx context.Context, ulid, recruiterID string) error
	List(ctx context.Context, limit, offset int) ([]entity.Job, int, error)
	ListByRecruiter(ctx context.Context, recruiterID string, limit, offset int) ([]entity.Job, int, error)
	Search(ctx context.Context, q string, limit, offset int) ([]entity.Job, int, error)
}
