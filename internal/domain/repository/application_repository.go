package repository

import (
	"context"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *entity.JobApplication) error
	GetByUlID(ctx context.Context, ulid string) (*entity.JobApplication, error)
	Exists(ctx context.Context, jobID, candidateID string) (bool, error)
	// UpdateStatus moves a pending application to status. It returns ErrNotFound when the
	// application is no longer pending.
	UpdateStatus(ctx context.Context, ulid string, status entity.ApplicationStatus) error
	ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]entity.AppliedJob, int, error)
	ListByJob(ctx context.Context, jobID string, limit, offset int) ([]entity.Applicant, int, error)
}
