package repository

import (
	"context"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
)

// UserRepository usuarios de las empresas. Los Get devuelven (nil, nil) si no existe;
// Create devuelve domain.ErrEmailAlreadyExists si el email ya está en la empresa.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail busca entre todas las empresas; login no conoce el tenant.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
}

// CompanyRepository tenants y sus módulos contratados.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// HasActiveModule true si el módulo está activo y no vencido.
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}
