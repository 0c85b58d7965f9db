package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/contacts-api/internal/application/auth"
	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/infrastructure/memory"
	"github.com/jhoicas/contacts-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companyID = "11111111-1111-1111-1111-111111111111"
	secret    = "test-secret"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store := memory.NewStore()
	store.AddCompany(&entity.Company{ID: companyID, Name: "Ferretería", Status: "active"})
	return auth.NewAuthUseCase(store.Users(), store.Companies(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "contacts-api"})
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Vendedor@Example.com", Password: "secreto123", CompanyID: companyID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, u.Role)
	assert.Equal(t, "vendedor@example.com", u.Email)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "vendedor@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, 300, out.ExpiresIn)
	userID, tenant, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, companyID, tenant)
	assert.Equal(t, entity.RoleSeller, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	in := dto.RegisterRequest{Email: "a@example.com", Password: "secreto123", CompanyID: companyID, Role: entity.RoleAdmin}
	_, err := uc.RegisterUser(ctx, in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EmpresaInexistente(t *testing.T) {
	uc := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "a@example.com", Password: "secreto123", CompanyID: "99999999-9999-9999-9999-999999999999",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_Errores(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@example.com", Password: "secreto123", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_MismoEmailEnDosEmpresas(t *testing.T) {
	store := memory.NewStore()
	const otherCompany = "22222222-2222-2222-2222-222222222222"
	store.AddCompany(&entity.Company{ID: companyID, Name: "Ferretería", Status: "active"})
	store.AddCompany(&entity.Company{ID: otherCompany, Name: "Papelería", Status: "active"})
	uc := auth.NewAuthUseCase(store.Users(), store.Companies(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "contacts-api"})
	ctx := context.Background()

	first, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "primera123", CompanyID: companyID})
	require.NoError(t, err)
	second, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "segunda123", CompanyID: otherCompany})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "segunda123", CompanyID: otherCompany})
	require.NoError(t, err)
	assert.Equal(t, second.ID, out.User.ID)
	assert.Equal(t, otherCompany, out.User.CompanyID)

	out, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "primera123"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, out.User.ID, "sin empresa se usa el usuario más antiguo")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "primera123", CompanyID: otherCompany})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
