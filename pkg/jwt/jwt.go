// Package jwt emite y valida los tokens de acceso (HS256) de la API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken agrupa firma incorrecta, expiración y claims mal formados.
var ErrInvalidToken = errors.New("jwt: token inválido")

// leeway tolerancia de reloj entre instancias.
const leeway = 30 * time.Second

// Claims claims registrados más empresa y rol; el middleware decide sin ir a la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"` // owner, admin, seller, accountant, viewer
}

// Generate firma un token para el usuario con vigencia de expMinutes.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errors.New("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseClaims valida firma, algoritmo y vigencia. Exige user_id y company_id.
func ParseClaims(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("jwt: secret vacío")
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" || claims.CompanyID == "" {
		return nil, fmt.Errorf("%w: faltan user_id o company_id", ErrInvalidToken)
	}
	return claims, nil
}

// Parse atajo de ParseClaims para el middleware: userID, companyID y role.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	c, err := ParseClaims(secret, tokenString)
	if err != nil {
		return "", "", "", err
	}
	return c.UserID, c.CompanyID, c.Role, nil
}
