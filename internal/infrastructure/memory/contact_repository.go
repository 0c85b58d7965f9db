package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación en memoria de ContactRepository.
type ContactRepo struct {
	v view
}

func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.contacts[c.ID]; ok {
			return fmt.Errorf("insert contact: id %s duplicado", c.ID)
		}
		if err := checkContactConstraints(st, c); err != nil {
			return err
		}
		st.contacts[c.ID] = c.Clone()
		return nil
	})
}

func (r *ContactRepo) GetByID(ctx context.Context, tenantID, id string, includeDeleted bool) (*entity.Contact, error) {
	var out *entity.Contact
	err := r.v.do(func(st *state) error {
		c, ok := st.contacts[id]
		if !ok || c.TenantID != tenantID || (!includeDeleted && c.IsDeleted()) {
			return nil
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

func (r *ContactRepo) FindActiveByIDNumber(ctx context.Context, tenantID, idNumber, excludeID string) (*entity.Contact, error) {
	var out *entity.Contact
	err := r.v.do(func(st *state) error {
		for _, c := range st.contacts {
			if c.TenantID == tenantID && c.IDNumber == idNumber && !c.IsDeleted() && c.ID != excludeID {
				out = c.Clone()
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ContactRepo) List(ctx context.Context, tenantID string, f repository.ContactFilter, limit, offset int) ([]*entity.Contact, int, error) {
	var (
		page  []*entity.Contact
		total int
	)
	err := r.v.do(func(st *state) error {
		var matched []*entity.Contact
		for _, c := range st.contacts {
			if c.TenantID == tenantID && !c.IsDeleted() && matches(c, f) {
				matched = append(matched, c)
			}
		}
		sort.Slice(matched, func(i, j int) bool {
			if matched[i].Name != matched[j].Name {
				return matched[i].Name < matched[j].Name
			}
			return matched[i].ID < matched[j].ID
		})
		total = len(matched)
		page = make([]*entity.Contact, 0)
		for i := offset; i < len(matched) && len(page) < limit; i++ {
			page = append(page, matched[i].Clone())
		}
		return nil
	})
	return page, total, err
}

func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.contacts[c.ID]
		if !ok || cur.TenantID != c.TenantID {
			return domain.NotFound("Contacto no encontrado")
		}
		if err := checkContactConstraints(st, c); err != nil {
			return err
		}
		next := c.Clone()
		next.CreatedAt, next.CreatedBy = cur.CreatedAt, cur.CreatedBy
		st.contacts[c.ID] = next
		return nil
	})
}

func (r *ContactRepo) Stats(ctx context.Context, tenantID string) (*entity.ContactStats, error) {
	var s entity.ContactStats
	err := r.v.do(func(st *state) error {
		for _, c := range st.contacts {
			if c.TenantID != tenantID {
				continue
			}
			if c.IsDeleted() {
				s.Deleted++
				continue
			}
			s.Total++
			if c.IsActive {
				s.Active++
			}
			client, provider := c.IsClient(), c.IsProvider()
			if client {
				s.Clients++
			}
			if provider {
				s.Providers++
			}
			if client && provider {
				s.Mixed++
			}
		}
		return nil
	})
	return &s, err
}

// checkContactConstraints reproduce el índice único parcial y la FK de vendedor.
func checkContactConstraints(st *state, c *entity.Contact) error {
	if c.IDNumber != "" && !c.IsDeleted() {
		for _, other := range st.contacts {
			if other.ID != c.ID && other.TenantID == c.TenantID && other.IDNumber == c.IDNumber && !other.IsDeleted() {
				return domain.Conflict(fmt.Sprintf("Ya existe un contacto con el documento %s", c.IDNumber))
			}
		}
	}
	if c.SellerID != "" {
		if _, ok := st.users[c.SellerID]; !ok {
			return domain.NotFound("Vendedor no encontrado")
		}
	}
	return nil
}

func matches(c *entity.Contact, f repository.ContactFilter) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		if !strings.Contains(strings.ToLower(c.Name), s) &&
			!strings.Contains(strings.ToLower(c.Email), s) &&
			!strings.Contains(strings.ToLower(c.IDNumber), s) {
			return false
		}
	}
	if f.Type != "" && !c.HasType(f.Type) {
		return false
	}
	if f.IsActive != nil && c.IsActive != *f.IsActive {
		return false
	}
	if f.SellerID != "" && c.SellerID != f.SellerID {
		return false
	}
	return true
}
