package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	handlers "github.com/oksasatya/jobboard-api/internal/interface/http"
	"github.com/oksasatya/jobboard-api/internal/interface/middleware"
)

type RecruiterModule struct {
	Deps
	Jobs *handlers.JobHandler
}

func NewRecruiterModule(d Deps, jobs *handlers.JobHandler) *RecruiterModule {
	return &RecruiterModule{Deps: d, Jobs: jobs}
}

func (m *RecruiterModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/recruiter")
	g.Use(m.gateway(entity.RoleRecruiter), m.limit(120, time.Minute, middleware.KeyByUser()))
	{
		g.GET("/jobs", m.Jobs.ListRecruiterJobs)
		g.POST("/jobs", m.Jobs.CreateJob)
		g.GET("/jobs/:id", m.Jobs.GetRecruiterJob)
		g.PATCH("/jobs/:id", m.Jobs.UpdateJob)
		g.DELETE("/jobs/:id", m.Jobs.DeleteJob)
		g.GET("/job-applications/:jobId", m.Jobs.ListJobApplications)
		g.PATCH("/job-application/:id/status/:status", m.Jobs.UpdateApplicationStatus)
	}
}
