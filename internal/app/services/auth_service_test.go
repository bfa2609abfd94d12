package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*AuthService, *auth.JWTService) {
	t.Helper()
	repo := &fakeUserRepo{}
	users := NewUserService(repo, zerolog.Nop())

	req := userReq("boss@web79.ng")
	req.Role = "super-admin"
	_, err := users.CreateUser(context.Background(), req)
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret"})
	return NewAuthService(repo, jwtService, zerolog.Nop()), jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "Boss@web79.ng", Password: "secret1", Branch: "ibadan"})
	require.NoError(t, err)
	assert.Equal(t, "boss@web79.ng", resp.User.Email)

	claims, err := jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "super-admin", claims.Role)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@web79.ng", Password: "secret1", Branch: "ibadan"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, "Login failed: Invalid email or password.", err.Error())

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "boss@web79.ng", Password: "wrong", Branch: "ibadan"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "boss@web79.ng", Password: "secret1", Branch: "abuja"})
	assert.ErrorIs(t, err, apperrors.ErrBranchMismatch)
	assert.Equal(t, "Login failed: Incorrect branch selected.", err.Error())

	// branch is not revealed before the password matches
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "boss@web79.ng", Password: "wrong", Branch: "abuja"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
