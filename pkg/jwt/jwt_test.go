package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	token, err := Generate("s3cr3t", "user-1", "company-1", "seller", "contacts-api", 10)
	require.NoError(t, err)

	userID, companyID, role, err := Parse("s3cr3t", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "company-1", companyID)
	assert.Equal(t, "seller", role)

	claims, err := ParseClaims("s3cr3t", token)
	require.NoError(t, err)
	assert.Equal(t, "contacts-api", claims.Issuer)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("s3cr3t", "user-1", "company-1", "admin", "contacts-api", 10)
	require.NoError(t, err)

	_, _, _, err = Parse("otro", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate("s3cr3t", "user-1", "company-1", "admin", "contacts-api", -1)
	require.NoError(t, err)

	_, _, _, err = Parse("s3cr3t", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RechazaOtroAlgoritmo(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "user-1",
		CompanyID:        "company-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cr3t"))
	require.NoError(t, err)

	_, err = ParseClaims("s3cr3t", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_SinExpiracionOSinEmpresa(t *testing.T) {
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u", CompanyID: "c"}).SignedString([]byte("s3cr3t"))
	require.NoError(t, err)
	_, err = ParseClaims("s3cr3t", noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noCompany, err := Generate("s3cr3t", "user-1", "", "admin", "contacts-api", 10)
	require.NoError(t, err)
	_, err = ParseClaims("s3cr3t", noCompany)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u", "c", "admin", "i", 1)
	assert.Error(t, err)
	_, _, _, err = Parse("", "x")
	assert.Error(t, err)
}
