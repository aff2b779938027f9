package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/jobboard-api/internal/domain/repository"
	"github.com/oksasatya/jobboard-api/pkg/apperror"
	"github.com/oksasatya/jobboard-api/pkg/pagination"
)

type UserService struct {
	Users   repo.UserRepository
	Storage repo.ObjectStore // optional
	Logger  *logrus.Logger
}

func NewUserService(users repo.UserRepository, storage repo.ObjectStore, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Storage: storage, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userUlID string) (*entity.User, error) {
	u, err := s.Users.GetByUlID(ctx, userUlID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NewNotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfileInput carries a partial profile update; nil means unchanged.
type UpdateProfileInput struct {
	FullName *string
	Skills   *string
	Bio      *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userUlID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userUlID)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Skills != nil {
		u.Skills = in.Skills
	}
	if in.Bio != nil {
		u.Bio = in.Bio
	}
	if err := s.Users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UploadResume stores the file under resumes/<user>/ and saves its URL on the profile.
func (s *UserService) UploadResume(ctx context.Context, userUlID string, r io.Reader, filename, contentType string) (*entity.User, error) {
	if s.Storage == nil {
		return nil, apperror.New(apperror.Internal, "storage not configured")
	}
	u, err := s.GetProfile(ctx, userUlID)
	if err != nil {
		return nil, err
	}

	objectPath := path.Join("resumes", u.UlID, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	url, err := s.Storage.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", objectPath).Error("resume upload failed")
		}
		return nil, err
	}
	u.ResumeURL = &url
	if err := s.Users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns users for the admin console, optionally filtered by role.
func (s *UserService) ListUsers(ctx context.Context, role entity.Role, p pagination.Page) ([]entity.User, pagination.Meta, error) {
	if role != "" && !role.Valid() {
		return nil, pagination.Meta{}, apperror.NewValidation("unknown role")
	}
	users, total, err := s.Users.List(ctx, role, p.Limit, p.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, p.Meta(total), nil
}
