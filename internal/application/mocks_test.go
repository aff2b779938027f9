package application

import (
	"context"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	"github.com/oksasatya/jobboard-api/internal/infrastructure/cache"
	"github.com/oksasatya/jobboard-api/pkg/helpers"
)

func init() {
	helpers.PasswordCost = 4 // bcrypt.MinCost
}

func newTestCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewRedisCache(rdb), mr
}

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, u *entity.User) error {
	return m.Called(u).Error(0)
}

func (m *userRepoMock) GetByUlID(ctx context.Context, ulid string) (*entity.User, error) {
	args := m.Called(ulid)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *userRepoMock) UpdatePassword(ctx context.Context, ulid, hash string) error {
	return m.Called(ulid, hash).Error(0)
}

func (m *userRepoMock) UpdateProfile(ctx context.Context, u *entity.User) error {
	return m.Called(u).Error(0)
}

func (m *userRepoMock) List(ctx context.Context, role entity.Role, limit, offset int) ([]entity.User, int, error) {
	args := m.Called(role, limit, offset)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Int(1), args.Error(2)
}

type jobRepoMock struct{ mock.Mock }

func (m *jobRepoMock) Create(ctx context.Context, j *entity.Job) error {
	return m.Called(j).Error(0)
}

func (m *jobRepoMock) GetByUlID(ctx context.Context, ulid string) (*entity.Job, error) {
	args := m.Called(ulid)
	j, _ := args.Get(0).(*entity.Job)
	return j, args.Error(1)
}

func (m *jobRepoMock) GetOwned(ctx context.Context, ulid, recruiterID string) (*entity.Job, error) {
	args := m.Called(ulid, recruiterID)
	j, _ := args.Get(0).(*entity.Job)
	return j, args.Error(1)
}

func (m *jobRepoMock) ExistsTitle(ctx context.Context, recruiterID, title string) (bool, error) {
	args := m.Called(recruiterID, title)
	return args.Bool(0), args.Error(1)
}

func (m *jobRepoMock) Update(ctx context.Context, j *entity.Job) error {
	return m.Called(j).Error(0)
}

func (m *jobRepoMock) Delete(ctx context.Context, ulid, recruiterID string) error {
	return m.Called(ulid, recruiterID).Error(0)
}

func (m *jobRepoMock) List(ctx context.Context, limit, offset int) ([]entity.Job, int, error) {
	args := m.Called(limit, offset)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Int(1), args.Error(2)
}

func (m *jobRepoMock) ListByRecruiter(ctx context.Context, recruiterID string, limit, offset int) ([]entity.Job, int, error) {
	args := m.Called(recruiterID, limit, offset)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Int(1), args.Error(2)
}

func (m *jobRepoMock) Search(ctx context.Context, q string, limit, offset int) ([]entity.Job, int, error) {
	args := m.Called(q, limit, offset)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Int(1), args.Error(2)
}

type appRepoMock struct{ mock.Mock }

func (m *appRepoMock) Create(ctx context.Context, a *entity.JobApplication) error {
	return m.Called(a).Error(0)
}

func (m *appRepoMock) GetByUlID(ctx context.Context, ulid string) (*entity.JobApplication, error) {
	args := m.Called(ulid)
	a, _ := args.Get(0).(*entity.JobApplication)
	return a, args.Error(1)
}

func (m *appRepoMock) Exists(ctx context.Context, jobID, candidateID string) (bool, error) {
	args := m.Called(jobID, candidateID)
	return args.Bool(0), args.Error(1)
}

func (m *appRepoMock) UpdateStatus(ctx context.Context, ulid string, status entity.ApplicationStatus) error {
	return m.Called(ulid, status).Error(0)
}

func (m *appRepoMock) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]entity.AppliedJob, int, error) {
	args := m.Called(candidateID, limit, offset)
	out, _ := args.Get(0).([]entity.AppliedJob)
	return out, args.Int(1), args.Error(2)
}

func (m *appRepoMock) ListByJob(ctx context.Context, jobID string, limit, offset int) ([]entity.Applicant, int, error) {
	args := m.Called(jobID, limit, offset)
	out, _ := args.Get(0).([]entity.Applicant)
	return out, args.Int(1), args.Error(2)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) PublishJSON(ctx context.Context, body any) error {
	return m.Called(body).Error(0)
}

type jobIndexMock struct{ mock.Mock }

func (m *jobIndexMock) Index(ctx context.Context, j *entity.Job) error {
	return m.Called(j).Error(0)
}

func (m *jobIndexMock) Remove(ctx context.Context, ulid string) error {
	return m.Called(ulid).Error(0)
}

func (m *jobIndexMock) Search(ctx context.Context, q string, limit, offset int) ([]entity.Job, int, error) {
	args := m.Called(q, limit, offset)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Int(1), args.Error(2)
}

type objectStoreMock struct{ mock.Mock }

func (m *objectStoreMock) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	args := m.Called(objectPath, contentType)
	return args.String(0), args.Error(1)
}
