package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	handlers "github.com/oksasatya/jobboard-api/internal/interface/http"
)

type AdminModule struct {
	Deps
	User *handlers.UserHandler
}

func NewAdminModule(d Deps, user *handlers.UserHandler) *AdminModule {
	return &AdminModule{Deps: d, User: user}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/admin", m.gateway(entity.RoleAdmin))
	g.GET("/users", m.User.ListUsers)
}
