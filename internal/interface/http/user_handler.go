package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/application"
	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	"github.com/oksasatya/jobboard-api/internal/interface/middleware"
	"github.com/oksasatya/jobboard-api/pkg/pagination"
	"github.com/oksasatya/jobboard-api/pkg/response"
	"github.com/oksasatya/jobboard-api/pkg/validation"
)

type UsersAPI interface {
	GetProfile(ctx context.Context, userUlID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userUlID string, in application.UpdateProfileInput) (*entity.User, error)
	UploadResume(ctx context.Context, userUlID string, r io.Reader, filename, contentType string) (*entity.User, error)
	ListUsers(ctx context.Context, role entity.Role, p pagination.Page) ([]entity.User, pagination.Meta, error)
}

// MaxResumeSize bounds resume uploads.
const MaxResumeSize = 5 << 20

var resumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type UserHandler struct {
	Svc    UsersAPI
	Logger *logrus.Logger
}

func NewUserHandler(svc UsersAPI, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,notblank,max=200"`
	Skills   *string `json:"skills" binding:"omitempty,max=2000"`
	Bio      *string `json:"bio" binding:"omitempty,max=5000"`
}

// GetProfile GET /api/candidate/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), middleware.CurrentUser(c).UlID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserDTO(u), "profile")
}

// UpdateProfile PATCH /api/candidate/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c).UlID, application.UpdateProfileInput{
		FullName: req.FullName,
		Skills:   req.Skills,
		Bio:      req.Bio,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserDTO(u), "profile updated")
}

// UploadResume POST /api/candidate/resume (multipart field "resume")
func (h *UserHandler) UploadResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxResumeSize+(1<<20))
	fh, err := c.FormFile("resume")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "resume file is required", nil)
		return
	}
	if fh.Size > MaxResumeSize {
		response.Error(c, http.StatusBadRequest, "resume exceeds 5MB", nil)
		return
	}
	contentType, ok := resumeTypes[strings.ToLower(filepath.Ext(fh.Filename))]
	if !ok {
		response.Error(c, http.StatusBadRequest, "resume must be a pdf, doc or docx file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := h.Svc.UploadResume(c.Request.Context(), middleware.CurrentUser(c).UlID, f, fh.Filename, contentType)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserDTO(u), "resume uploaded")
}

// ListUsers GET /api/admin/users?role=
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, meta, err := h.Svc.ListUsers(c.Request.Context(), entity.Role(c.Query("role")), pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	out := make([]userDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	response.List(c, out, meta, "users")
}
