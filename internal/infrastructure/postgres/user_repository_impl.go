package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	"github.com/oksasatya/jobboard-api/internal/domain/repository"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, user_ulid, email, password, full_name, role, skills, bio, resume_url, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.UlID, &u.Email, &u.Password, &u.FullName, &role,
		&u.Skills, &u.Bio, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	u.Role = entity.Role(role)
	return u, nil
}

// Create inserts u. A taken email surfaces as repository.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (user_ulid, email, password, full_name, role, skills, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.UlID, u.Email, u.Password, u.FullName, string(u.Role), u.Skills, u.Bio)

	return mapErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByUlID(ctx context.Context, ulid string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_ulid = $1`, ulid))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, ulid, hash string) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET password = $1, updated_at = now() WHERE user_ulid = $2
	`, hash, ulid)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET full_name = $1, skills = $2, bio = $3, resume_url = $4, updated_at = now()
		WHERE user_ulid = $5
		RETURNING updated_at
	`, u.FullName, u.Skills, u.Bio, u.ResumeURL, u.UlID)
	return mapErr(row.Scan(&u.UpdatedAt))
}

// List returns one page of users, optionally filtered by role, newest first.
func (r *UserRepository) List(ctx context.Context, role entity.Role, limit, offset int) ([]entity.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM users WHERE ($1 = '' OR role = $1)
	`, string(role)).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users
		WHERE ($1 = '' OR role = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, string(role), limit, offset)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, mapErr(rows.Err())
}

var _ repository.UserRepository = (*UserRepository)(nil)
