package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
)

var (
	_ repository.ContactAttachmentRepository = (*ContactAttachmentRepo)(nil)
	_ repository.UserRepository              = (*UserRepo)(nil)
	_ repository.CompanyRepository           = (*CompanyRepo)(nil)
)

// ContactAttachmentRepo implementación en memoria de ContactAttachmentRepository.
type ContactAttachmentRepo struct {
	v view
}

func (r *ContactAttachmentRepo) Create(ctx context.Context, a *entity.ContactAttachment) error {
	return r.v.do(func(st *state) error {
		c, ok := st.contacts[a.ContactID]
		if !ok || c.TenantID != a.TenantID {
			return domain.NotFound("Contacto no encontrado")
		}
		cp := *a
		st.attachments[a.ID] = &cp
		return nil
	})
}

func (r *ContactAttachmentRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.ContactAttachment, error) {
	var out *entity.ContactAttachment
	err := r.v.do(func(st *state) error {
		if a, ok := st.attachments[id]; ok && a.TenantID == tenantID {
			cp := *a
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *ContactAttachmentRepo) ListByContact(ctx context.Context, tenantID, contactID string) ([]*entity.ContactAttachment, error) {
	out := make([]*entity.ContactAttachment, 0)
	err := r.v.do(func(st *state) error {
		for _, a := range st.attachments {
			if a.TenantID == tenantID && a.ContactID == contactID {
				cp := *a
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *ContactAttachmentRepo) Delete(ctx context.Context, tenantID, id string) error {
	return r.v.do(func(st *state) error {
		a, ok := st.attachments[id]
		if !ok || a.TenantID != tenantID {
			return domain.NotFound("Adjunto no encontrado")
		}
		delete(st.attachments, id)
		return nil
	})
}

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	v view
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.CompanyID == user.CompanyID && strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		cp := *user
		st.users[user.ID] = &cp
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepo) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.CompanyID == companyID && strings.EqualFold(u.Email, email) })
}

// find devuelve el primer usuario (por fecha de creación) que cumple match.
func (r *UserRepo) find(match func(u *entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if match(u) && (out == nil || u.CreatedAt.Before(out.CreatedAt)) {
				cp := *u
				out = &cp
			}
		}
		return nil
	})
	return out, err
}

// CompanyRepo implementación en memoria de CompanyRepository.
type CompanyRepo struct {
	v view
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.do(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	var active bool
	err := r.v.do(func(st *state) error {
		m, ok := st.modules[companyID][moduleName]
		active = ok && m.IsActive && (m.ExpiresAt == nil || m.ExpiresAt.After(time.Now()))
		return nil
	})
	return active, err
}
