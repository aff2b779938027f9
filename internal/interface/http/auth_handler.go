package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/application"
	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	"github.com/oksasatya/jobboard-api/internal/interface/middleware"
	"github.com/oksasatya/jobboard-api/pkg/response"
	"github.com/oksasatya/jobboard-api/pkg/validation"
)

// AuthAPI is the account lifecycle used by AuthHandler.
type AuthAPI interface {
	Register(ctx context.Context, in application.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*application.LoginResult, error)
	Logout(ctx context.Context, token string) error
	RequestReset(ctx context.Context, email string) (application.ResetTicket, error)
	ConfirmReset(ctx context.Context, code, newPassword, confirmPassword string) error
}

type AuthHandler struct {
	Svc    AuthAPI
	Logger *logrus.Logger
	// EchoResetCode returns the reset code in the forgot-password response. Development only.
	EchoResetCode bool
}

func NewAuthHandler(svc AuthAPI, logger *logrus.Logger, echoResetCode bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, EchoResetCode: echoResetCode}
}

type registerRequest struct {
	Email    string  `json:"email" binding:"required,email,max=320"`
	Password string  `json:"password" binding:"required,pwd,max=72"`
	FullName string  `json:"full_name" binding:"required,notblank,max=200"`
	Role     string  `json:"role" binding:"required,role"`
	Skills   *string `json:"skills" binding:"omitempty,max=2000"`
	Bio      *string `json:"bio" binding:"omitempty,max=5000"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Code            string `json:"code" binding:"required,notblank"`
	NewPassword     string `json:"new_password" binding:"required,pwd,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        userDTO   `json:"user"`
}

type resetTicketResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
	Code      string    `json:"code,omitempty"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     entity.Role(req.Role),
		Skills:   req.Skills,
		Bio:      req.Bio,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserDTO(u), "registered")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, loginResponse{
		AccessToken: res.Token.Token,
		TokenType:   "Bearer",
		ExpiresAt:   res.Token.ExpiresAt,
		User:        toUserDTO(res.User),
	}, "login successful")
}

// Logout POST /api/auth/logout blacklists the presented bearer token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := middleware.BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "logged out")
}

// ForgotPassword POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ticket, err := h.Svc.RequestReset(c.Request.Context(), req.Email)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	out := resetTicketResponse{ExpiresAt: ticket.ExpiresAt}
	if h.EchoResetCode {
		out.Code = ticket.Code
	}
	response.Success(c, http.StatusOK, out, "reset code sent")
}

// ResetPassword POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ConfirmReset(c.Request.Context(), req.Code, req.NewPassword, req.ConfirmPassword); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password updated")
}
