package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/jobboard-api/pkg/response"
)

// KeyFunc names the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true for requests that bypass the limiter.
type AllowFunc func(*gin.Context) bool

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(ctxRealIP); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + ipFromCtx(c) }
}

// routeOf returns the matched route pattern, or the raw path when nothing matched.
func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyByIPAndPath gives every route its own per-IP bucket.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + routeOf(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUser limits authenticated routes per principal, anonymous ones per IP.
func KeyByUser() KeyFunc {
	return func(c *gin.Context) string {
		if u := CurrentUser(c); u != nil {
			return "rl:user:" + u.UlID
		}
		return "rl:user:anon:ip:" + ipFromCtx(c)
	}
}

// hitScript counts one hit, opens the window on the first one and returns {count, pttl}.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

type window struct {
	count int
	reset time.Duration
}

func hit(ctx context.Context, rdb *redis.Client, key string, span time.Duration) (window, error) {
	res, err := hitScript.Run(ctx, rdb, []string{key}, span.Milliseconds()).Int64Slice()
	if err != nil {
		return window{}, err
	}
	w := window{count: int(res[0])}
	if len(res) > 1 && res[1] > 0 {
		w.reset = time.Duration(res[1]) * time.Millisecond
	}
	return w, nil
}

// RateLimit allows maxReq requests per span in each bucket. OPTIONS preflights and
// requests accepted by allow are not counted. Redis errors fail open.
func RateLimit(rdb *redis.Client, maxReq int, span time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || maxReq <= 0 || span <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	limit := strconv.Itoa(maxReq)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		w, err := hit(c.Request.Context(), rdb, keyFn(c), span)
		if err != nil {
			c.Next()
			return
		}

		resetSec := strconv.Itoa(int(math.Ceil(w.reset.Seconds())))
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, maxReq-w.count)))
		c.Header("X-RateLimit-Reset", resetSec)

		if w.count > maxReq {
			c.Header("Retry-After", resetSec)
			response.Abort(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
