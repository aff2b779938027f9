package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/jobboard-api/internal/application"
	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	"github.com/oksasatya/jobboard-api/pkg/pagination"
	"github.com/oksasatya/jobboard-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type authMock struct{ mock.Mock }

func (m *authMock) Register(ctx context.Context, in application.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *authMock) Login(ctx context.Context, email, password string) (*application.LoginResult, error) {
	args := m.Called(ctx, email, password)
	r, _ := args.Get(0).(*application.LoginResult)
	return r, args.Error(1)
}

func (m *authMock) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *authMock) RequestReset(ctx context.Context, email string) (application.ResetTicket, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(application.ResetTicket), args.Error(1)
}

func (m *authMock) ConfirmReset(ctx context.Context, code, newPassword, confirmPassword string) error {
	return m.Called(ctx, code, newPassword, confirmPassword).Error(0)
}

type jobsMock struct{ mock.Mock }

func (m *jobsMock) CreateJob(ctx context.Context, r *entity.User, in application.CreateJobInput) (*entity.Job, error) {
	args := m.Called(ctx, r, in)
	j, _ := args.Get(0).(*entity.Job)
	return j, args.Error(1)
}

func (m *jobsMock) ListRecruiterJobs(ctx context.Context, r *entity.User, p pagination.Page) ([]entity.Job, pagination.Meta, error) {
	args := m.Called(ctx, r, p)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *jobsMock) GetRecruiterJob(ctx context.Context, r *entity.User, id string) (*entity.Job, error) {
	args := m.Called(ctx, r, id)
	j, _ := args.Get(0).(*entity.Job)
	return j, args.Error(1)
}

func (m *jobsMock) UpdateJob(ctx context.Context, r *entity.User, id string, patch entity.JobPatch) (*entity.Job, error) {
	args := m.Called(ctx, r, id, patch)
	j, _ := args.Get(0).(*entity.Job)
	return j, args.Error(1)
}

func (m *jobsMock) DeleteJob(ctx context.Context, r *entity.User, id string) error {
	return m.Called(ctx, r, id).Error(0)
}

func (m *jobsMock) ListJobs(ctx context.Context, p pagination.Page) ([]entity.Job, pagination.Meta, error) {
	args := m.Called(ctx, p)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *jobsMock) GetJob(ctx context.Context, id string) (*entity.Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*entity.Job)
	return j, args.Error(1)
}

func (m *jobsMock) SearchJobs(ctx context.Context, q string, p pagination.Page) ([]entity.Job, pagination.Meta, error) {
	args := m.Called(ctx, q, p)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Get(1).(pagination.Meta), args.Error(2)
}

type appsMock struct{ mock.Mock }

func (m *appsMock) Apply(ctx context.Context, c *entity.User, jobID string) (*entity.JobApplication, error) {
	args := m.Called(ctx, c, jobID)
	a, _ := args.Get(0).(*entity.JobApplication)
	return a, args.Error(1)
}

func (m *appsMock) ListCandidateApplications(ctx context.Context, c *entity.User, p pagination.Page) ([]entity.AppliedJob, pagination.Meta, error) {
	args := m.Called(ctx, c, p)
	out, _ := args.Get(0).([]entity.AppliedJob)
	return out, args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *appsMock) ListJobApplications(ctx context.Context, r *entity.User, jobID string, p pagination.Page) ([]entity.Applicant, pagination.Meta, error) {
	args := m.Called(ctx, r, jobID, p)
	out, _ := args.Get(0).([]entity.Applicant)
	return out, args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *appsMock) UpdateStatus(ctx context.Context, r *entity.User, id string, status entity.ApplicationStatus) (*entity.JobApplication, error) {
	args := m.Called(ctx, r, id, status)
	a, _ := args.Get(0).(*entity.JobApplication)
	return a, args.Error(1)
}

type usersMock struct{ mock.Mock }

func (m *usersMock) GetProfile(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *usersMock) UpdateProfile(ctx context.Context, id string, in application.UpdateProfileInput) (*entity.User, error) {
	args := m.Called(ctx, id, in)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *usersMock) UploadResume(ctx context.Context, id string, r io.Reader, filename, contentType string) (*entity.User, error) {
	args := m.Called(ctx, id, r, filename, contentType)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *usersMock) ListUsers(ctx context.Context, role entity.Role, p pagination.Page) ([]entity.User, pagination.Meta, error) {
	args := m.Called(ctx, role, p)
	out, _ := args.Get(0).([]entity.User)
	return out, args.Get(1).(pagination.Meta), args.Error(2)
}

var (
	recruiter = &entity.User{UlID: "01HRECRUITER0000000000000", Role: entity.RoleRecruiter, FullName: "Rita"}
	candidate = &entity.User{UlID: "01HCANDIDATE0000000000000", Role: entity.RoleCandidate, FullName: "Cody", Email: "cody@example.com"}
)

// asUser stands in for the role gateway.
func asUser(u *entity.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set("currentUser", u)
		}
		c.Next()
	}
}

type envelope struct {
	Status     int              `json:"status"`
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Data       json.RawMessage  `json:"data"`
	Pagination *pagination.Meta `json:"pagination"`
	Error      json.RawMessage  `json:"error"`
}

func serve(t *testing.T, r *gin.Engine, method, path string, body any, header http.Header) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}
