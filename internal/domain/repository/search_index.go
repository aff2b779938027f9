package repository

import (
	"context"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
)

// JobIndex is a full text index over job postings.
type JobIndex interface {
	Index(ctx context.Context, j *entity.Job) error
	Remove(ctx context.Context, ulid string) error
	Search(ctx context.Context, q string, limit, offset int) ([]entity.Job, int, error)
}
