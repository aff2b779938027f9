package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/jobboard-api/internal/domain/repository"
	"github.com/oksasatya/jobboard-api/pkg/apperror"
	"github.com/oksasatya/jobboard-api/pkg/helpers"
	"github.com/oksasatya/jobboard-api/pkg/mailer"
	mailtpl "github.com/oksasatya/jobboard-api/pkg/mailer/templates"
)

// DefaultResetTTL is how long a password reset code stays usable.
const DefaultResetTTL = 600 * time.Second

type AuthService struct {
	Users     repo.UserRepository
	Tokens    *TokenService
	Cache     repo.TokenCache
	Publisher repo.Publisher // optional
	Logger    *logrus.Logger
	Brand     mailtpl.Brand
	ResetTTL  time.Duration

	genCode func(time.Time) (string, error)
	now     func() time.Time
}

func NewAuthService(users repo.UserRepository, tokens *TokenService, cache repo.TokenCache, pub repo.Publisher, logger *logrus.Logger, brand mailtpl.Brand, resetTTL time.Duration) *AuthService {
	if resetTTL <= 0 {
		resetTTL = DefaultResetTTL
	}
	return &AuthService{
		Users:     users,
		Tokens:    tokens,
		Cache:     cache,
		Publisher: pub,
		Logger:    logger,
		Brand:     brand,
		ResetTTL:  resetTTL,
		genCode:   helpers.GenResetCode,
		now:       time.Now,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     entity.Role
	Skills   *string
	Bio      *string
}

// Register creates a candidate or recruiter account. Admin accounts are seeded, never registered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Role != entity.RoleCandidate && in.Role != entity.RoleRecruiter {
		return nil, apperror.NewValidation("role must be candidate or recruiter")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, apperror.NewConflict("email already registered")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		UlID:     helpers.NewULID(),
		Email:    email,
		Password: hash,
		FullName: strings.TrimSpace(in.FullName),
		Role:     in.Role,
		Skills:   in.Skills,
		Bio:      in.Bio,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.NewConflict("email already registered")
		}
		return nil, err
	}

	s.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Brand, u.FullName, u.Email),
	})
	return u, nil
}

type LoginResult struct {
	User  *entity.User
	Token IssuedToken
}

// Login checks the credentials and issues a token signed with the user's role secret.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NewUnauthenticated("invalid credentials")
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperror.NewUnauthenticated("invalid credentials")
	}
	if helpers.NeedsRehash(u.Password) {
		s.rehash(ctx, u, password)
	}
	tok, err := s.Tokens.Issue(ctx, u.Role, u.UlID)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user": u.UlID, "role": u.Role}).Info("user logged in")
	}
	return &LoginResult{User: u, Token: tok}, nil
}

// rehash upgrades a stored hash to the current cost. Failures only get logged.
func (s *AuthService) rehash(ctx context.Context, u *entity.User, password string) {
	hash, err := helpers.HashPassword(password)
	if err == nil {
		err = s.Users.UpdatePassword(ctx, u.UlID, hash)
	}
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user", u.UlID).Warn("password rehash failed")
		}
		return
	}
	u.Password = hash
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.Tokens.Revoke(ctx, token)
}

// ResetTicket describes the live reset code of a user.
type ResetTicket struct {
	Code      string
	ExpiresAt time.Time
	Reused    bool
}

// RequestReset returns the user's live reset code, minting one when none exists.
// An unknown email is reported as NotFound.
func (s *AuthService) RequestReset(ctx context.Context, email string) (ResetTicket, error) {
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ResetTicket{}, apperror.NewNotFound("user not found")
		}
		return ResetTicket{}, err
	}

	now := s.now()
	ownerKey := helpers.KeyResetOwner(u.UlID)
	code, found, err := s.Cache.Get(ctx, ownerKey)
	if err != nil {
		return ResetTicket{}, err
	}

	var ticket ResetTicket
	if found {
		// The owner key can outlive a code that was consumed or evicted.
		ttl, err := s.Cache.TTL(ctx, helpers.KeyResetCode(code))
		if err != nil {
			return ResetTicket{}, err
		}
		if ttl > 0 {
			ticket = ResetTicket{Code: code, ExpiresAt: now.Add(ttl), Reused: true}
		} else {
			found = false
		}
	}
	if !found {
		code, err = s.genCode(now)
		if err != nil {
			return ResetTicket{}, err
		}
		entries := map[string]string{
			helpers.KeyResetCode(code): u.UlID,
			ownerKey:                   code,
		}
		if err := s.Cache.SetAll(ctx, entries, s.ResetTTL); err != nil {
			return ResetTicket{}, err
		}
		authMetrics.Add("reset_codes_issued", 1)
		ticket = ResetTicket{Code: code, ExpiresAt: now.Add(s.ResetTTL)}
	}

	s.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.ResetCode,
		Data:     mailtpl.NewResetCodeData(s.Brand, u.FullName, u.Email, ticket.Code, ticket.ExpiresAt),
	})
	return ticket, nil
}

// ConfirmReset replaces the password of the code's owner and consumes the code.
func (s *AuthService) ConfirmReset(ctx context.Context, code, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperror.NewValidation("passwords do not match")
	}

	// Consumed before the update so a replayed code cannot race this one.
	userUlID, found, err := s.Cache.Take(ctx, helpers.KeyResetCode(code))
	if err != nil {
		return err
	}
	if !found {
		return apperror.NewLinkExpired("reset link expired")
	}

	u, err := s.Users.GetByUlID(ctx, userUlID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NewNotFound("user not found")
		}
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, u.UlID, hash); err != nil {
		return err
	}
	if err := s.Cache.Del(ctx, helpers.KeyResetOwner(u.UlID)); err != nil {
		s.Logger.WithError(err).WithField("user_ulid", u.UlID).Warn("reset owner key not cleared")
	}
	return nil
}

// publish queues an email. Delivery is best effort and never fails the request.
func (s *AuthService) publish(ctx context.Context, job mailer.EmailJob) {
	publishEmail(ctx, s.Publisher, s.Logger, job)
}

func publishEmail(ctx context.Context, pub repo.Publisher, logger *logrus.Logger, job mailer.EmailJob) {
	if pub == nil {
		return
	}
	if err := pub.PublishJSON(ctx, job); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Warn("publish email failed")
	}
}
