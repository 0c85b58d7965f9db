package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
	"golang.org/x/sync/singleflight"
)

// DefaultModuleTTL vigencia de una respuesta de activación en memoria.
const DefaultModuleTTL = 30 * time.Second

type moduleEntry struct {
	active  bool
	expires time.Time
}

// ModuleService resuelve qué módulos SaaS tiene activos una empresa. Cada petición a
// /api/contacts pasa por aquí: las respuestas se guardan ttl y las consultas
// concurrentes por la misma clave comparten una sola ida al repositorio.
type ModuleService struct {
	companyRepo repository.CompanyRepository
	ttl         time.Duration
	now         func() time.Time

	mu    sync.RWMutex
	memo  map[string]moduleEntry
	group singleflight.Group
}

// NewModuleService construye el servicio con DefaultModuleTTL.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return NewModuleServiceTTL(companyRepo, DefaultModuleTTL)
}

// NewModuleServiceTTL igual que NewModuleService; ttl <= 0 desactiva la memoria.
func NewModuleServiceTTL(companyRepo repository.CompanyRepository, ttl time.Duration) *ModuleService {
	return &ModuleService{
		companyRepo: companyRepo,
		ttl:         ttl,
		now:         time.Now,
		memo:        make(map[string]moduleEntry),
	}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// false sin error si no lo tiene contratado; error ante módulo desconocido o falla del repositorio.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	if !entity.IsKnownModule(moduleName) {
		return false, fmt.Errorf("module: módulo desconocido %q", moduleName)
	}
	key := companyID + "/" + moduleName
	if active, ok := s.cached(key); ok {
		return active, nil
	}
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		active, err := s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
		if err != nil {
			return false, err
		}
		if s.ttl > 0 {
			s.mu.Lock()
			s.memo[key] = moduleEntry{active: active, expires: s.now().Add(s.ttl)}
			s.mu.Unlock()
		}
		return active, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Invalidate descarta lo recordado para la empresa (tras activar o vencer un módulo).
func (s *ModuleService) Invalidate(companyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range entity.KnownModules {
		delete(s.memo, companyID+"/"+name)
	}
}

func (s *ModuleService) cached(key string) (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.memo[key]
	if !ok || !s.now().Before(e.expires) {
		return false, false
	}
	return e.active, true
}
