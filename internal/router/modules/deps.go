package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	"github.com/oksasatya/jobboard-api/internal/interface/middleware"
)

// Deps are the collaborators shared by every module.
type Deps struct {
	Tokens      middleware.TokenVerifier
	Users       middleware.UserFinder
	Redis       *redis.Client
	Logger      *logrus.Logger
	RateLimited bool
}

func (d Deps) gateway(role entity.Role) gin.HandlerFunc {
	return middleware.RequireRole(d.Tokens, d.Users, role, d.Logger)
}

// limit returns a Redis rate limiter, or a pass-through when limits are off.
func (d Deps) limit(n int, per time.Duration, key middleware.KeyFunc) gin.HandlerFunc {
	if !d.RateLimited || d.Redis == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(d.Redis, n, per, key, nil)
}
