package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	handlers "github.com/oksasatya/jobboard-api/internal/interface/http"
	"github.com/oksasatya/jobboard-api/internal/interface/middleware"
)

type CandidateModule struct {
	Deps
	Jobs *handlers.JobHandler
	User *handlers.UserHandler
}

func NewCandidateModule(d Deps, jobs *handlers.JobHandler, user *handlers.UserHandler) *CandidateModule {
	return &CandidateModule{Deps: d, Jobs: jobs, User: user}
}

func (m *CandidateModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/candidate")
	g.Use(m.gateway(entity.RoleCandidate), m.limit(120, time.Minute, middleware.KeyByUser()))
	{
		g.GET("/jobs", m.Jobs.ListJobs)
		g.GET("/jobs/search", m.Jobs.SearchJobs)
		g.GET("/jobs/:id", m.Jobs.GetJob)
		g.POST("/jobs-application/:jobId", m.Jobs.Apply)
		g.GET("/applied-jobs", m.Jobs.AppliedJobs)

		g.GET("/profile", m.User.GetProfile)
		g.PATCH("/profile", m.User.UpdateProfile)
		g.POST("/resume", m.limit(10, time.Hour, middleware.KeyByUser()), m.User.UploadResume)
	}
}
