package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard-api/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

// Register exposes expvar counters to private networks only.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", middleware.PrivateOnly(), gin.WrapH(expvar.Handler()))
}
