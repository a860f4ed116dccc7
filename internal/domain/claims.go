package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são emitidas pelo provedor de autenticação externo
type Claims struct {
	UserID         string `json:"user_id"`
	UserEmail      string `json:"email"`
	OrganizationID string `json:"organization_id"`
	jwt.RegisteredClaims
}
