package postgres

import (
	"context"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	"github.com/oksasatya/jobboard-api/internal/domain/repository"
)

type ApplicationRepository struct {
	db DBTX
}

func NewApplicationRepository(db DBTX) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a pending application. Applying twice to the same job
// surfaces as repository.ErrDuplicate.
func (r *ApplicationRepository) Create(ctx context.Context, a *entity.JobApplication) error {
	if a.Status == "" {
		a.Status = entity.StatusPending
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO job_applications (ulid, job_id, candidate_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, applied_at
	`, a.UlID, a.JobID, a.CandidateID, string(a.Status))
	return mapErr(row.Scan(&a.ID, &a.AppliedAt))
}

func (r *ApplicationRepository) GetByUlID(ctx context.Context, ulid string) (*entity.JobApplication, error) {
	a := &entity.JobApplication{}
	var status string
	err := r.db.QueryRow(ctx, `
		SELECT id, ulid, job_id, candidate_id, status, applied_at
		FROM job_applications WHERE ulid = $1
	`, ulid).Scan(&a.ID, &a.UlID, &a.JobID, &a.CandidateID, &status, &a.AppliedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	a.Status = entity.ApplicationStatus(status)
	return a, nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, jobID, candidateID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM job_applications WHERE job_id = $1 AND candidate_id = $2)
	`, jobID, candidateID).Scan(&exists)
	return exists, mapErr(err)
}

// UpdateStatus only transitions pending rows so concurrent decisions cannot overwrite each other.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, ulid string, status entity.ApplicationStatus) error {
	res, err := r.db.Exec(ctx, `
		UPDATE job_applications SET status = $1 WHERE ulid = $2 AND status = 'pending'
	`, string(status), ulid)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]entity.AppliedJob, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM job_applications WHERE candidate_id = $1
	`, candidateID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.ulid, a.job_id, a.candidate_id, a.status, a.applied_at,
		       j.id, j.ulid, j.title, j.description, j.requirements, j.recruiter_id, j.created_at, j.updated_at
		FROM job_applications a
		JOIN jobs j ON j.ulid = a.job_id
		WHERE a.candidate_id = $1
		ORDER BY a.applied_at DESC
		LIMIT $2 OFFSET $3
	`, candidateID, limit, offset)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []entity.AppliedJob
	for rows.Next() {
		var (
			aj     entity.AppliedJob
			status string
		)
		a, j := &aj.Application, &aj.Job
		if err := rows.Scan(&a.ID, &a.UlID, &a.JobID, &a.CandidateID, &status, &a.AppliedAt,
			&j.ID, &j.UlID, &j.Title, &j.Description, &j.Requirements, &j.RecruiterID, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		a.Status = entity.ApplicationStatus(status)
		out = append(out, aj)
	}
	return out, total, mapErr(rows.Err())
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string, limit, offset int) ([]entity.Applicant, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM job_applications WHERE job_id = $1
	`, jobID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.ulid, a.job_id, a.candidate_id, a.status, a.applied_at,
		       u.id, u.user_ulid, u.email, u.full_name, u.role, u.skills, u.bio, u.resume_url, u.created_at, u.updated_at
		FROM job_applications a
		JOIN users u ON u.user_ulid = a.candidate_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC
		LIMIT $2 OFFSET $3
	`, jobID, limit, offset)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []entity.Applicant
	for rows.Next() {
		var (
			ap           entity.Applicant
			status, role string
		)
		a, u := &ap.Application, &ap.Candidate
		if err := rows.Scan(&a.ID, &a.UlID, &a.JobID, &a.CandidateID, &status, &a.AppliedAt,
			&u.ID, &u.UlID, &u.Email, &u.FullName, &role, &u.Skills, &u.Bio, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		a.Status = entity.ApplicationStatus(status)
		u.Role = entity.Role(role)
		out = append(out, ap)
	}
	return out, total, mapErr(rows.Err())
}

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)
