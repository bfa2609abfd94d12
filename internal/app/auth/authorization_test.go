package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/auth"
)

const testSecret = "gate-secret"

func newGate() (*Gate, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: testSecret})
	return NewGate(jwtService), jwtService
}

func bearer(t *testing.T, svc *auth.JWTService, role models.Role) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(uuid.New(), string(role))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthorize(t *testing.T) {
	gate, svc := newGate()

	claims, err := gate.Authorize(bearer(t, svc, models.RoleSuperAdmin), models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, "super-admin", claims.Role)

	_, err = gate.Authorize(bearer(t, svc, models.RoleAdmin), "")
	assert.NoError(t, err)
}

func TestAuthorize_Denied(t *testing.T) {
	gate, svc := newGate()

	_, err := gate.Authorize("", models.RoleSuperAdmin)
	assert.ErrorIs(t, err, apperrors.ErrTokenMissing)
	assert.Equal(t, "Not authorized, no token.", err.Error())

	_, err = gate.Authorize("Token abc", models.RoleSuperAdmin)
	assert.ErrorIs(t, err, apperrors.ErrTokenMissing)

	_, err = gate.Authorize("Bearer garbage", models.RoleSuperAdmin)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	assert.Equal(t, "Not authorized, token invalid or expired.", err.Error())

	_, err = gate.Authorize(bearer(t, svc, models.RoleAdmin), models.RoleSuperAdmin)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "Forbidden: Requires Super Admin privileges.", err.Error())
}

func TestAuthorize_Expired(t *testing.T) {
	gate, _ := newGate()

	claims := &auth.Claims{
		UserID: uuid.NewString(),
		Role:   "super-admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = gate.Authorize("Bearer "+token, models.RoleSuperAdmin)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestForbiddenMessage(t *testing.T) {
	assert.Equal(t, "Forbidden: Requires Admin privileges.", ForbiddenMessage(models.RoleAdmin))
	assert.Equal(t, "Forbidden: Requires auditor privileges.", ForbiddenMessage("auditor"))
}
