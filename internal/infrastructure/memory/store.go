// Package memory implementa los puertos de persistencia en memoria. Reproduce las
// restricciones de la base de datos (unicidad parcial del documento, FK de vendedor y de
// contacto) para pruebas y para ejecutar la API sin PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
)

type state struct {
	companies   map[string]*entity.Company
	modules     map[string]map[string]entity.CompanyModule // company → módulo
	users       map[string]*entity.User
	contacts    map[string]*entity.Contact
	attachments map[string]*entity.ContactAttachment
}

func newState() *state {
	return &state{
		companies:   make(map[string]*entity.Company),
		modules:     make(map[string]map[string]entity.CompanyModule),
		users:       make(map[string]*entity.User),
		contacts:    make(map[string]*entity.Contact),
		attachments: make(map[string]*entity.ContactAttachment),
	}
}

func (s *state) clone() *state {
	cp := newState()
	for k, v := range s.companies {
		c := *v
		cp.companies[k] = &c
	}
	for k, mods := range s.modules {
		m := make(map[string]entity.CompanyModule, len(mods))
		for name, mod := range mods {
			m[name] = mod
		}
		cp.modules[k] = m
	}
	for k, v := range s.users {
		u := *v
		cp.users[k] = &u
	}
	for k, v := range s.contacts {
		cp.contacts[k] = v.Clone()
	}
	for k, v := range s.attachments {
		a := *v
		cp.attachments[k] = &a
	}
	return cp
}

// Store estado compartido. Las transacciones se serializan: Run toma el lock completo,
// trabaja sobre una copia y la publica solo si fn no devuelve error.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view ejecuta fn sobre el estado de la tx o, fuera de tx, bajo el lock del store.
type view struct {
	store *Store
	tx    *state
}

func (v view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

// Contacts repositorio de contactos fuera de transacción.
func (s *Store) Contacts() *ContactRepo { return &ContactRepo{v: view{store: s}} }

// Attachments repositorio de adjuntos fuera de transacción.
func (s *Store) Attachments() *ContactAttachmentRepo {
	return &ContactAttachmentRepo{v: view{store: s}}
}

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{v: view{store: s}} }

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{v: view{store: s}} }

// Run ejecuta fn con repositorios atados a una copia del estado; confirma si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	contactRepo repository.ContactRepository,
	attachmentRepo repository.ContactAttachmentRepository,
	userRepo repository.UserRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.st.clone()
	v := view{store: s, tx: tx}
	if err := fn(&ContactRepo{v: v}, &ContactAttachmentRepo{v: v}, &UserRepo{v: v}); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// AddCompany registra una empresa (semilla para pruebas y modo memoria).
func (s *Store) AddCompany(c *entity.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.st.companies[c.ID] = &cp
}

// EnableModule activa un módulo SaaS para la empresa. expiresAt nil = sin vencimiento.
func (s *Store) EnableModule(companyID, moduleName string, expiresAt *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mods := s.st.modules[companyID]
	if mods == nil {
		mods = make(map[string]entity.CompanyModule)
		s.st.modules[companyID] = mods
	}
	mods[moduleName] = entity.CompanyModule{
		CompanyID:   companyID,
		ModuleName:  moduleName,
		IsActive:    true,
		ActivatedAt: time.Now(),
		ExpiresAt:   expiresAt,
	}
}
