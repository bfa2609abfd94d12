package auth

import (
	"errors"
	"fmt"

	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/auth"
)

// Rejections returned by the gate
var (
	ErrNoToken = apperrors.NewCustomError(apperrors.ErrTokenMissing, "Not authorized, no token.")
)

const invalidTokenMessage = "Not authorized, token invalid or expired."

var roleTitles = map[models.Role]string{
	models.RoleSuperAdmin: "Super Admin",
	models.RoleAdmin:      "Admin",
	models.RoleInstructor: "Instructor",
}

// Gate decides whether a bearer token may perform an operation
type Gate struct {
	jwtService *auth.JWTService
}

// NewGate creates a new Gate
func NewGate(jwtService *auth.JWTService) *Gate {
	return &Gate{jwtService: jwtService}
}

// Authenticate validates the Authorization header and returns its claims
func (g *Gate) Authenticate(authorizationHeader string) (*auth.Claims, error) {
	token, err := auth.ExtractBearerToken(authorizationHeader)
	if err != nil {
		return nil, ErrNoToken
	}

	claims, err := g.jwtService.ValidateToken(token)
	if err != nil {
		sentinel := apperrors.ErrTokenInvalid
		if errors.Is(err, apperrors.ErrTokenExpired) {
			sentinel = apperrors.ErrTokenExpired
		}
		return nil, apperrors.NewCustomError(sentinel, invalidTokenMessage)
	}

	return claims, nil
}

// CheckRole requires the claims to carry exactly the given role
func (g *Gate) CheckRole(claims *auth.Claims, requiredRole models.Role) error {
	if claims != nil && models.Role(claims.Role) == requiredRole {
		return nil
	}
	return apperrors.NewForbiddenError(ForbiddenMessage(requiredRole))
}

// Authorize authenticates the header and, when requiredRole is set, checks the role
func (g *Gate) Authorize(authorizationHeader string, requiredRole models.Role) (*auth.Claims, error) {
	claims, err := g.Authenticate(authorizationHeader)
	if err != nil {
		return nil, err
	}
	if requiredRole == "" {
		return claims, nil
	}
	if err := g.CheckRole(claims, requiredRole); err != nil {
		return nil, err
	}
	return claims, nil
}

// ForbiddenMessage names the role an operation requires
func ForbiddenMessage(role models.Role) string {
	title, ok := roleTitles[role]
	if !ok {
		title = string(role)
	}
	return fmt.Sprintf("Forbidden: Requires %s privileges.", title)
}
