package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/jobboard-api/config"
	"github.com/oksasatya/jobboard-api/internal/container"
	"github.com/oksasatya/jobboard-api/pkg/helpers"
)

func newEngine(t *testing.T, debug bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c := &container.Container{
		Config: &config.Config{DebugMetricsEnabled: debug},
		Logger: helpers.NewDiscardLogger(),
	}
	e := gin.New()
	reg := NewRegistry(e)
	InitModules(reg, c)
	reg.RegisterAll()
	return e
}

func TestInitModules_RouteTable(t *testing.T) {
	e := newEngine(t, true)
	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"POST /api/auth/forgot-password",
		"POST /api/auth/reset-password",
		"GET /api/recruiter/jobs",
		"POST /api/recruiter/jobs",
		"GET /api/recruiter/jobs/:id",
		"PATCH /api/recruiter/jobs/:id",
		"DELETE /api/recruiter/jobs/:id",
		"GET /api/recruiter/job-applications/:jobId",
		"PATCH /api/recruiter/job-application/:id/status/:status",
		"GET /api/candidate/jobs",
		"GET /api/candidate/jobs/search",
		"GET /api/candidate/jobs/:id",
		"POST /api/candidate/jobs-application/:jobId",
		"GET /api/candidate/applied-jobs",
		"GET /api/candidate/profile",
		"PATCH /api/candidate/profile",
		"POST /api/candidate/resume",
		"GET /api/admin/users",
		"GET /api/debug/vars",
	} {
		assert.True(t, got[want], want)
	}
}

func TestInitModules_DebugDisabled(t *testing.T) {
	e := newEngine(t, false)
	for _, r := range e.Routes() {
		assert.NotEqual(t, "/api/debug/vars", r.Path)
	}
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	e := newEngine(t, false)
	for _, path := range []string{"/api/recruiter/jobs", "/api/candidate/jobs", "/api/admin/users"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestNoRouteUsesEnvelope(t *testing.T) {
	e := newEngine(t, false)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "route not found", body["message"])
}

func TestDebugVarsPrivateOnly(t *testing.T) {
	e := newEngine(t, true)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cmdline")
}
