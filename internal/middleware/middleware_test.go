package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/web79/smiportal/internal/app/auth"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{apperrors.NewValidationError("email", "email is required"), 400, dto.ErrorCodeValidationFailed, "email is required"},
		{apperrors.ErrStudentEmailExists, 409, dto.ErrorCodeResourceAlreadyExists, "A student with this email already exists"},
		{apperrors.ErrStudentNotFound, 404, dto.ErrorCodeResourceNotFound, "Student not found"},
		{fmt.Errorf("wrapped: %w", apperrors.ErrCourseNotFound), 404, dto.ErrorCodeResourceNotFound, "Course not found"},
		{apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials, "Invalid email or password"},
		{apperrors.ErrBranchMismatch, 401, dto.ErrorCodeBranchMismatch, "Incorrect branch selected"},
		{appauth.ErrNoToken, 401, dto.ErrorCodeUnauthorized, "Not authorized, no token."},
		{apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken, "Token expired"},
		{apperrors.NewForbiddenError("Forbidden: Requires Super Admin privileges."), 403, dto.ErrorCodeForbidden, "Forbidden: Requires Super Admin privileges."},
		{fmt.Errorf("%w: smtp down", apperrors.ErrMailDelivery), 500, dto.ErrorCodeExternalServiceError, "Failed to send evaluation email."},
		{errors.New("db down"), 500, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}
}

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "mw-secret"})
	m := NewAuthMiddleware(appauth.NewGate(jwtService))

	r := gin.New()
	r.GET("/any", m.JWTAuth(), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.Role)
	})
	r.DELETE("/root", m.JWTAuth(), m.RoleRequired(models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, jwtService
}

func doRequest(r http.Handler, method, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, jwtService := newAuthRouter(t)

	adminToken, _, err := jwtService.GenerateAccessToken(uuid.New(), "admin")
	require.NoError(t, err)
	rootToken, _, err := jwtService.GenerateAccessToken(uuid.New(), "super-admin")
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/any", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, no token.", decodeError(t, w).Error.Message)

	w = doRequest(r, http.MethodGet, "/any", "Bearer nonsense")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, token invalid or expired.", decodeError(t, w).Error.Message)

	w = doRequest(r, http.MethodGet, "/any", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())

	w = doRequest(r, http.MethodDelete, "/root", "Bearer "+adminToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: Requires Super Admin privileges.", decodeError(t, w).Error.Message)

	w = doRequest(r, http.MethodDelete, "/root", "Bearer "+rootToken)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(metrics.Handler(), RequestLogger(zerolog.Nop()))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	doRequest(r, http.MethodGet, "/items/1", "")
	doRequest(r, http.MethodGet, "/items/2", "")
	doRequest(r, http.MethodGet, "/missing", "")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/items/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestSetupValidator(t *testing.T) {
	require.NoError(t, SetupValidator())

	r := gin.New()
	r.POST("/users", func(c *gin.Context) {
		var req dto.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBindError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/users", jsonBody(`{"email":"a@b.co","password":"secret1","fullName":"   ","branch":"ibadan"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "fullName", resp.Error.Field)
	assert.Equal(t, "fullName is required", resp.Error.Message)
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
