package usecase

import (
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware. The principal
// is issued elsewhere; this core only verifies and trusts it.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, string, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, string, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	return claims.UserID, claims.ProfileType, nil
}
