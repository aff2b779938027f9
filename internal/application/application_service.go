package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/jobboard-api/internal/domain/repository"
	"github.com/oksasatya/jobboard-api/pkg/apperror"
	"github.com/oksasatya/jobboard-api/pkg/helpers"
	"github.com/oksasatya/jobboard-api/pkg/mailer"
	mailtpl "github.com/oksasatya/jobboard-api/pkg/mailer/templates"
	"github.com/oksasatya/jobboard-api/pkg/pagination"
)

type ApplicationService struct {
	Applications repo.ApplicationRepository
	Jobs         repo.JobRepository
	Users        repo.UserRepository
	Publisher    repo.Publisher // optional
	Logger       *logrus.Logger
	Brand        mailtpl.Brand
}

func NewApplicationService(apps repo.ApplicationRepository, jobs repo.JobRepository, users repo.UserRepository, pub repo.Publisher, logger *logrus.Logger, brand mailtpl.Brand) *ApplicationService {
	return &ApplicationService{Applications: apps, Jobs: jobs, Users: users, Publisher: pub, Logger: logger, Brand: brand}
}

func alreadyApplied() error { return apperror.NewConflict("already applied to this job") }

// Apply records a pending application of candidate to jobID.
func (s *ApplicationService) Apply(ctx context.Context, candidate *entity.User, jobID string) (*entity.JobApplication, error) {
	if _, err := s.Jobs.GetByUlID(ctx, jobID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errJobNotFound
		}
		return nil, err
	}

	applied, err := s.Applications.Exists(ctx, jobID, candidate.UlID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, alreadyApplied()
	}

	a := &entity.JobApplication{
		UlID:        helpers.NewULID(),
		JobID:       jobID,
		CandidateID: candidate.UlID,
		Status:      entity.StatusPending,
	}
	if err := s.Applications.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, alreadyApplied()
		}
		return nil, err
	}
	return a, nil
}

func (s *ApplicationService) ListCandidateApplications(ctx context.Context, candidate *entity.User, p pagination.Page) ([]entity.AppliedJob, pagination.Meta, error) {
	out, total, err := s.Applications.ListByCandidate(ctx, candidate.UlID, p.Limit, p.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return out, p.Meta(total), nil
}

// ListJobApplications lists applicants of a job owned by recruiter.
func (s *ApplicationService) ListJobApplications(ctx context.Context, recruiter *entity.User, jobID string, p pagination.Page) ([]entity.Applicant, pagination.Meta, error) {
	if _, err := s.Jobs.GetOwned(ctx, jobID, recruiter.UlID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, pagination.Meta{}, errJobNotFound
		}
		return nil, pagination.Meta{}, err
	}
	out, total, err := s.Applications.ListByJob(ctx, jobID, p.Limit, p.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return out, p.Meta(total), nil
}

// UpdateStatus decides a pending application on one of recruiter's jobs.
func (s *ApplicationService) UpdateStatus(ctx context.Context, recruiter *entity.User, applicationID string, status entity.ApplicationStatus) (*entity.JobApplication, error) {
	if !status.Decided() {
		return nil, apperror.NewValidation("status must be accepted or rejected")
	}

	a, err := s.Applications.GetByUlID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NewNotFound("application not found")
		}
		return nil, err
	}
	job, err := s.Jobs.GetByUlID(ctx, a.JobID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errJobNotFound
		}
		return nil, err
	}
	if job.RecruiterID != recruiter.UlID {
		return nil, apperror.NewForbidden("application does not belong to your job")
	}
	if a.Status != entity.StatusPending {
		return nil, apperror.NewConflict("application already " + string(a.Status))
	}

	if err := s.Applications.UpdateStatus(ctx, a.UlID, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// decided concurrently
			return nil, apperror.NewConflict("application already decided")
		}
		return nil, err
	}
	a.Status = status
	s.notify(ctx, a, job)
	return a, nil
}

func (s *ApplicationService) notify(ctx context.Context, a *entity.JobApplication, job *entity.Job) {
	if s.Publisher == nil {
		return
	}
	candidate, err := s.Users.GetByUlID(ctx, a.CandidateID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("candidate", a.CandidateID).Warn("load candidate for notification failed")
		}
		return
	}
	publishEmail(ctx, s.Publisher, s.Logger, mailer.EmailJob{
		To:       candidate.Email,
		Template: mailtpl.ApplicationStatus,
		Data:     mailtpl.NewApplicationStatusData(s.Brand, candidate.FullName, candidate.Email, job.Title, string(a.Status)),
	})
}
