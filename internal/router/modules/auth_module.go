package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/jobboard-api/internal/interface/http"
	"github.com/oksasatya/jobboard-api/internal/interface/middleware"
)

type AuthModule struct {
	Deps
	Handler *handlers.AuthHandler
}

func NewAuthModule(d Deps, h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Deps: d, Handler: h}
}

// Register mounts the public account endpoints under /auth.
func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", m.limit(20, time.Minute, middleware.KeyByIP()), m.Handler.Register)
	auth.POST("/login", m.limit(10, time.Minute, middleware.KeyByIPAndPath()), m.Handler.Login)
	auth.POST("/logout", m.Handler.Logout)
	auth.POST("/forgot-password", m.limit(5, time.Minute, middleware.KeyByIPAndPath()), m.Handler.ForgotPassword)
	auth.POST("/reset-password", m.limit(30, time.Minute, middleware.KeyByIPAndPath()), m.Handler.ResetPassword)
}
