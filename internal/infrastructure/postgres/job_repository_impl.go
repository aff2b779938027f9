package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	"github.com/oksasatya/jobboard-api/internal/domain/repository"
)

type JobRepository struct {
	db DBTX
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, ulid, title, description, requirements, recruiter_id, created_at, updated_at`

func scanJob(row pgx.Row) (*entity.Job, error) {
	j := &entity.Job{}
	if err := row.Scan(&j.ID, &j.UlID, &j.Title, &j.Description, &j.Requirements,
		&j.RecruiterID, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return j, nil
}

func (r *JobRepository) Create(ctx context.Context, j *entity.Job) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO jobs (ulid, title, description, requirements, recruiter_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, j.UlID, j.Title, j.Description, j.Requirements, j.RecruiterID)
	return mapErr(row.Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt))
}

func (r *JobRepository) GetByUlID(ctx context.Context, ulid string) (*entity.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE ulid = $1`, ulid))
}

func (r *JobRepository) GetOwned(ctx context.Context, ulid, recruiterID string) (*entity.Job, error) {
	return scanJob(r.db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE ulid = $1 AND recruiter_id = $2`, ulid, recruiterID))
}

func (r *JobRepository) ExistsTitle(ctx context.Context, recruiterID, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM jobs WHERE recruiter_id = $1 AND title = $2)
	`, recruiterID, title).Scan(&exists)
	return exists, mapErr(err)
}

// Update writes the editable columns of j, scoped to its recruiter.
func (r *JobRepository) Update(ctx context.Context, j *entity.Job) error {
	row := r.db.QueryRow(ctx, `
		UPDATE jobs
		SET title = $1, description = $2, requirements = $3, updated_at = now()
		WHERE ulid = $4 AND recruiter_id = $5
		RETURNING updated_at
	`, j.Title, j.Description, j.Requirements, j.UlID, j.RecruiterID)
	return mapErr(row.Scan(&j.UpdatedAt))
}

func (r *JobRepository) Delete(ctx context.Context, ulid, recruiterID string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE ulid = $1 AND recruiter_id = $2`, ulid, recruiterID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]entity.Job, int, error) {
	return r.page(ctx, `TRUE`, limit, offset)
}

func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID string, limit, offset int) ([]entity.Job, int, error) {
	return r.page(ctx, `recruiter_id = $1`, limit, offset, recruiterID)
}

// Search is the SQL fallback used when no search index is configured.
func (r *JobRepository) Search(ctx context.Context, q string, limit, offset int) ([]entity.Job, int, error) {
	return r.page(ctx, `(title ILIKE $1 OR description ILIKE $1 OR requirements ILIKE $1)`,
		limit, offset, "%"+q+"%")
}

// page runs a count and a select over the same filter. The filter may use
// $1..$n for args; limit and offset are appended after them.
func (r *JobRepository) page(ctx context.Context, where string, limit, offset int, args ...any) ([]entity.Job, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM jobs WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	n := len(args)
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE `+where+
		` ORDER BY created_at DESC LIMIT $`+itoa(n+1)+` OFFSET $`+itoa(n+2),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []entity.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *j)
	}
	return out, total, mapErr(rows.Err())
}

var _ repository.JobRepository = (*JobRepository)(nil)
