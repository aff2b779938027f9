package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/application"
	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	"github.com/oksasatya/jobboard-api/internal/interface/middleware"
	"github.com/oksasatya/jobboard-api/pkg/pagination"
	"github.com/oksasatya/jobboard-api/pkg/response"
	"github.com/oksasatya/jobboard-api/pkg/validation"
)

type JobsAPI interface {
	CreateJob(ctx context.Context, recruiter *entity.User, in application.CreateJobInput) (*entity.Job, error)
	ListRecruiterJobs(ctx context.Context, recruiter *entity.User, p pagination.Page) ([]entity.Job, pagination.Meta, error)
	GetRecruiterJob(ctx context.Context, recruiter *entity.User, jobID string) (*entity.Job, error)
	UpdateJob(ctx context.Context, recruiter *entity.User, jobID string, patch entity.JobPatch) (*entity.Job, error)
	DeleteJob(ctx context.Context, recruiter *entity.User, jobID string) error
	ListJobs(ctx context.Context, p pagination.Page) ([]entity.Job, pagination.Meta, error)
	GetJob(ctx context.Context, jobID string) (*entity.Job, error)
	SearchJobs(ctx context.Context, q string, p pagination.Page) ([]entity.Job, pagination.Meta, error)
}

type ApplicationsAPI interface {
	Apply(ctx context.Context, candidate *entity.User, jobID string) (*entity.JobApplication, error)
	ListCandidateApplications(ctx context.Context, candidate *entity.User, p pagination.Page) ([]entity.AppliedJob, pagination.Meta, error)
	ListJobApplications(ctx context.Context, recruiter *entity.User, jobID string, p pagination.Page) ([]entity.Applicant, pagination.Meta, error)
	UpdateStatus(ctx context.Context, recruiter *entity.User, applicationID string, status entity.ApplicationStatus) (*entity.JobApplication, error)
}

// JobHandler serves the recruiter and candidate job boards.
type JobHandler struct {
	Jobs         JobsAPI
	Applications ApplicationsAPI
	Logger       *logrus.Logger
}

func NewJobHandler(jobs JobsAPI, apps ApplicationsAPI, logger *logrus.Logger) *JobHandler {
	return &JobHandler{Jobs: jobs, Applications: apps, Logger: logger}
}

type createJobRequest struct {
	Title        string `json:"title" binding:"required,notblank,max=200"`
	Description  string `json:"description" binding:"required,notblank"`
	Requirements string `json:"requirements" binding:"required,notblank"`
}

type updateJobRequest struct {
	Title        *string `json:"title" binding:"omitempty,notblank,max=200"`
	Description  *string `json:"description" binding:"omitempty,notblank"`
	Requirements *string `json:"requirements" binding:"omitempty,notblank"`
}

// ---- recruiter ----

// CreateJob POST /api/recruiter/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	j, err := h.Jobs.CreateJob(c.Request.Context(), middleware.CurrentUser(c), application.CreateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toJobDTO(j), "job created")
}

// ListRecruiterJobs GET /api/recruiter/jobs
func (h *JobHandler) ListRecruiterJobs(c *gin.Context) {
	jobs, meta, err := h.Jobs.ListRecruiterJobs(c.Request.Context(), middleware.CurrentUser(c), pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, toJobDTOs(jobs), meta, "jobs")
}

// GetRecruiterJob GET /api/recruiter/jobs/:id
func (h *JobHandler) GetRecruiterJob(c *gin.Context) {
	j, err := h.Jobs.GetRecruiterJob(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toJobDTO(j), "job")
}

// UpdateJob PATCH /api/recruiter/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	j, err := h.Jobs.UpdateJob(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), entity.JobPatch{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toJobDTO(j), "job updated")
}

// DeleteJob DELETE /api/recruiter/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.Jobs.DeleteJob(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "job deleted")
}

// ListJobApplications GET /api/recruiter/job-applications/:jobId
func (h *JobHandler) ListJobApplications(c *gin.Context) {
	out, meta, err := h.Applications.ListJobApplications(c.Request.Context(), middleware.CurrentUser(c), c.Param("jobId"), pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, toApplicantDTOs(out), meta, "job applications")
}

// UpdateApplicationStatus PATCH /api/recruiter/job-application/:id/status/:status
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	status := entity.ApplicationStatus(c.Param("status"))
	a, err := h.Applications.UpdateStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), status)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toApplicationDTO(a), "application "+string(a.Status))
}

// ---- candidate ----

// ListJobs GET /api/candidate/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, meta, err := h.Jobs.ListJobs(c.Request.Context(), pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, toJobDTOs(jobs), meta, "jobs")
}

// SearchJobs GET /api/candidate/jobs/search?q=
func (h *JobHandler) SearchJobs(c *gin.Context) {
	jobs, meta, err := h.Jobs.SearchJobs(c.Request.Context(), c.Query("q"), pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, toJobDTOs(jobs), meta, "jobs")
}

// GetJob GET /api/candidate/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	j, err := h.Jobs.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toJobDTO(j), "job")
}

// Apply POST /api/candidate/jobs-application/:jobId
func (h *JobHandler) Apply(c *gin.Context) {
	a, err := h.Applications.Apply(c.Request.Context(), middleware.CurrentUser(c), c.Param("jobId"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toApplicationDTO(a), "application submitted")
}

// AppliedJobs GET /api/candidate/applied-jobs
func (h *JobHandler) AppliedJobs(c *gin.Context) {
	out, meta, err := h.Applications.ListCandidateApplications(c.Request.Context(), middleware.CurrentUser(c), pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, toAppliedJobDTOs(out), meta, "applied jobs")
}
