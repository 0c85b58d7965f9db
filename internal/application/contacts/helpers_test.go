package contacts_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/contacts-api/internal/application/contacts"
	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/require"
)

const (
	tenantA = "11111111-1111-1111-1111-111111111111"
	tenantB = "22222222-2222-2222-2222-222222222222"
	userA   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
)

type fixture struct {
	store       *memory.Store
	contacts    *contacts.ContactUseCase
	attachments *contacts.AttachmentUseCase
	cache       *spyCache
	remover     *spyRemover
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	cache := newSpyCache()
	remover := &spyRemover{}
	return &fixture{
		store:       store,
		contacts:    contacts.NewContactUseCase(store.Contacts(), store.Attachments(), store, cache),
		attachments: contacts.NewAttachmentUseCase(store.Contacts(), store.Attachments(), store, remover),
		cache:       cache,
		remover:     remover,
	}
}

func (f *fixture) addUser(t *testing.T, companyID string) string {
	t.Helper()
	id := uuid.New().String()
	err := f.store.Users().Create(context.Background(), &entity.User{
		ID:        id,
		CompanyID: companyID,
		Email:     id + "@example.com",
		Name:      "Vendedor",
		Role:      entity.RoleSeller,
		Status:    "active",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) create(t *testing.T, tenantID string, in dto.CreateContactRequest) *dto.ContactResponse {
	t.Helper()
	out, err := f.contacts.Create(context.Background(), tenantID, userA, in)
	require.NoError(t, err)
	return out
}

func ptr[T any](v T) *T { return &v }

// spyCache caché en memoria con generaciones que cuenta invalidaciones y escrituras.
// onMiss corre entre Get y Set, para simular una escritura concurrente.
type spyCache struct {
	mu          sync.Mutex
	entries     map[string]entity.ContactStats
	gens        map[string]uint64
	invalidated int
	sets        int
	onMiss      func()
}

func newSpyCache() *spyCache {
	return &spyCache{entries: make(map[string]entity.ContactStats), gens: make(map[string]uint64)}
}

func (c *spyCache) Get(_ context.Context, tenantID string) (*entity.ContactStats, uint64, error) {
	c.mu.Lock()
	s, ok := c.entries[tenantID]
	gen := c.gens[tenantID]
	hook := c.onMiss
	c.mu.Unlock()
	if !ok {
		if hook != nil {
			hook()
		}
		return nil, gen, nil
	}
	return &s, gen, nil
}

func (c *spyCache) Set(_ context.Context, tenantID string, s *entity.ContactStats, gen uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[tenantID] != gen {
		return nil
	}
	c.sets++
	c.entries[tenantID] = *s
	return nil
}

func (c *spyCache) Invalidate(_ context.Context, tenantID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.gens[tenantID]++
	delete(c.entries, tenantID)
	return nil
}

type spyRemover struct {
	removed []string
	err     error
}

func (r *spyRemover) Remove(_ context.Context, fileURL string) error {
	r.removed = append(r.removed, fileURL)
	return r.err
}
