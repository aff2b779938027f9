package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/jobboard-api/internal/domain/repository"
	"github.com/oksasatya/jobboard-api/pkg/apperror"
	"github.com/oksasatya/jobboard-api/pkg/helpers"
	"github.com/oksasatya/jobboard-api/pkg/pagination"
)

type JobService struct {
	Jobs   repo.JobRepository
	Index  repo.JobIndex // optional; SQL search is used without it
	Logger *logrus.Logger
}

func NewJobService(jobs repo.JobRepository, index repo.JobIndex, logger *logrus.Logger) *JobService {
	return &JobService{Jobs: jobs, Index: index, Logger: logger}
}

var errJobNotFound = apperror.NewNotFound("job not found")

func jobTitleTaken() error { return apperror.NewConflict("job with this title already exists") }

type CreateJobInput struct {
	Title        string
	Description  string
	Requirements string
}

func (s *JobService) CreateJob(ctx context.Context, recruiter *entity.User, in CreateJobInput) (*entity.Job, error) {
	title := strings.TrimSpace(in.Title)
	taken, err := s.Jobs.ExistsTitle(ctx, recruiter.UlID, title)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, jobTitleTaken()
	}

	j := &entity.Job{
		UlID:         helpers.NewULID(),
		Title:        title,
		Description:  in.Description,
		Requirements: in.Requirements,
		RecruiterID:  recruiter.UlID,
	}
	if err := s.Jobs.Create(ctx, j); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, jobTitleTaken()
		}
		return nil, err
	}
	s.index(ctx, j)
	return j, nil
}

func (s *JobService) ListRecruiterJobs(ctx context.Context, recruiter *entity.User, p pagination.Page) ([]entity.Job, pagination.Meta, error) {
	jobs, total, err := s.Jobs.ListByRecruiter(ctx, recruiter.UlID, p.Limit, p.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return jobs, p.Meta(total), nil
}

// GetRecruiterJob reports jobs owned by someone else as not found.
func (s *JobService) GetRecruiterJob(ctx context.Context, recruiter *entity.User, jobID string) (*entity.Job, error) {
	j, err := s.Jobs.GetOwned(ctx, jobID, recruiter.UlID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errJobNotFound
		}
		return nil, err
	}
	return j, nil
}

func (s *JobService) UpdateJob(ctx context.Context, recruiter *entity.User, jobID string, patch entity.JobPatch) (*entity.Job, error) {
	j, err := s.GetRecruiterJob(ctx, recruiter, jobID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
		if title != j.Title {
			taken, err := s.Jobs.ExistsTitle(ctx, recruiter.UlID, title)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, jobTitleTaken()
			}
		}
	}
	patch.Apply(j)

	if err := s.Jobs.Update(ctx, j); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, jobTitleTaken()
		case errors.Is(err, repo.ErrNotFound):
			return nil, errJobNotFound
		}
		return nil, err
	}
	s.index(ctx, j)
	return j, nil
}

func (s *JobService) DeleteJob(ctx context.Context, recruiter *entity.User, jobID string) error {
	if err := s.Jobs.Delete(ctx, jobID, recruiter.UlID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errJobNotFound
		}
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, jobID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("job", jobID).Warn("remove job from index failed")
		}
	}
	return nil
}

func (s *JobService) ListJobs(ctx context.Context, p pagination.Page) ([]entity.Job, pagination.Meta, error) {
	jobs, total, err := s.Jobs.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return jobs, p.Meta(total), nil
}

func (s *JobService) GetJob(ctx context.Context, jobID string) (*entity.Job, error) {
	j, err := s.Jobs.GetByUlID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errJobNotFound
		}
		return nil, err
	}
	return j, nil
}

// SearchJobs queries the search index, falling back to SQL when the index is
// absent or failing.
func (s *JobService) SearchJobs(ctx context.Context, q string, p pagination.Page) ([]entity.Job, pagination.Meta, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.ListJobs(ctx, p)
	}
	if s.Index != nil {
		jobs, total, err := s.Index.Search(ctx, q, p.Limit, p.Offset())
		if err == nil {
			return jobs, p.Meta(total), nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("job index search failed, using sql")
		}
	}
	jobs, total, err := s.Jobs.Search(ctx, q, p.Limit, p.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return jobs, p.Meta(total), nil
}

func (s *JobService) index(ctx context.Context, j *entity.Job) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, j); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("job", j.UlID).Warn("index job failed")
	}
}
