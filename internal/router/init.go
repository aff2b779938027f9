package router

import (
	"github.com/oksasatya/jobboard-api/internal/container"
	handlers "github.com/oksasatya/jobboard-api/internal/interface/http"
	"github.com/oksasatya/jobboard-api/internal/router/modules"
)

// Handlers groups the HTTP handlers built from the container.
type Handlers struct {
	Auth *handlers.AuthHandler
	Jobs *handlers.JobHandler
	User *handlers.UserHandler
}

func buildHandlers(c *container.Container) Handlers {
	return Handlers{
		Auth: handlers.NewAuthHandler(c.AuthService, c.Logger, c.Config.ResetCodeEcho),
		Jobs: handlers.NewJobHandler(c.JobService, c.ApplicationService, c.Logger),
		User: handlers.NewUserHandler(c.UserService, c.Logger),
	}
}

// InitModules wires every feature module and registers it with the registry.
// Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	h := buildHandlers(c)
	deps := modules.Deps{
		Tokens:      c.TokenService,
		Users:       c.Users,
		Redis:       c.Redis,
		Logger:      c.Logger,
		RateLimited: c.Config.RateLimitEnabled,
	}

	r.Add(modules.NewAuthModule(deps, h.Auth))
	r.Add(modules.NewRecruiterModule(deps, h.Jobs))
	r.Add(modules.NewCandidateModule(deps, h.Jobs, h.User))
	r.Add(modules.NewAdminModule(deps, h.User))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
