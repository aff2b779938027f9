package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard-api/pkg/response"
)

func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	// 10/8, 172.16/12, 192.168/16, fc00::/7 and loopback
	return parsed.IsLoopback() || parsed.IsPrivate()
}

// AllowPrivateIP lets RateLimit skip requests coming from private networks.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		return isPrivateIP(ipFromCtx(c))
	}
}

// PrivateOnly rejects requests that do not come from a private network.
func PrivateOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isPrivateIP(ipFromCtx(c)) {
			response.Abort(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}
