package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func serve(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	rec := serve(r, nil)
	_, err := uuid.Parse(rec.Body.String())
	assert.NoError(t, err)
	assert.Equal(t, rec.Body.String(), rec.Header().Get(HeaderRequestID))

	id := uuid.NewString()
	rec = serve(r, map[string]string{HeaderRequestID: id})
	assert.Equal(t, id, rec.Body.String())

	rec = serve(r, map[string]string{HeaderRequestID: "<script>"})
	assert.NotEqual(t, "<script>", rec.Body.String())
}

func TestRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ipFromCtx(c)) })

	assert.Equal(t, "198.51.100.2", serve(r, map[string]string{
		"CF-Connecting-IP": "198.51.100.2",
		"X-Forwarded-For":  "203.0.113.1",
	}).Body.String())
	assert.Equal(t, "203.0.113.1", serve(r, map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}).Body.String())
	assert.Equal(t, "203.0.113.9", serve(r, map[string]string{"X-Real-IP": "203.0.113.9"}).Body.String())
	assert.Equal(t, "192.0.2.1", serve(r, nil).Body.String())
}

func TestPrivateOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", PrivateOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, map[string]string{"X-Forwarded-For": "127.0.0.1"}).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, map[string]string{"X-Forwarded-For": "8.8.8.8"}).Code)
}
