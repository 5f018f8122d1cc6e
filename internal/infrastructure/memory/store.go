// Package memory implementa todos los repositorios en memoria, con un TxRunner que
// revierte el estado completo si la función transaccional falla. Se usa en pruebas y con STORE_DRIVER=memory.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

// errForeignKey imita la violación de llave foránea del motor relacional.
var errForeignKey = errors.New("violación de llave foránea")

var (
	_ ports.TxRunner         = (*Store)(nil)
	_ ports.SnapshotReader   = (*Store)(nil)
	_ ports.PromotionCatalog = (*Store)(nil)
)

type state struct {
	seq            int64
	products       map[string]entity.Product
	movements      map[string]entity.InventoryMovement
	movementSeq    map[string]int64
	statuses       []entity.AccountStatus
	accounts       map[string]entity.Account
	serviceLines   map[string]entity.ServiceLineItem
	productLines   map[string]entity.ProductLineItem
	lineSeq        map[string]int64
	expenses       map[string]entity.ExpenseHeader
	expenseDetails map[string]entity.ExpenseDetail
	payments       map[string]entity.Payment
	sessions       map[string]entity.CashSession
	services       map[string]entity.Service
	users          map[string]entity.User
	promotions     map[string]decimal.Decimal
}

func newState() *state {
	return &state{
		products:       make(map[string]entity.Product),
		movements:      make(map[string]entity.InventoryMovement),
		movementSeq:    make(map[string]int64),
		accounts:       make(map[string]entity.Account),
		serviceLines:   make(map[string]entity.ServiceLineItem),
		productLines:   make(map[string]entity.ProductLineItem),
		lineSeq:        make(map[string]int64),
		expenses:       make(map[string]entity.ExpenseHeader),
		expenseDetails: make(map[string]entity.ExpenseDetail),
		payments:       make(map[string]entity.Payment),
		sessions:       make(map[string]entity.CashSession),
		services:       make(map[string]entity.Service),
		users:          make(map[string]entity.User),
		promotions:     make(map[string]decimal.Decimal),
		statuses: []entity.AccountStatus{
			{ID: entity.AccountStatusOpen, Name: "abierta", Ordinal: 1},
			{ID: entity.AccountStatusClosed, Name: "cerrada", Ordinal: 2},
		},
	}
}

// clone copia superficial de cada mapa; los valores se guardan por valor y nunca se mutan en sitio.
func (s *state) clone() *state {
	c := &state{seq: s.seq, statuses: append([]entity.AccountStatus(nil), s.statuses...)}
	c.products = cloneMap(s.products)
	c.movements = cloneMap(s.movements)
	c.movementSeq = cloneMap(s.movementSeq)
	c.accounts = cloneMap(s.accounts)
	c.serviceLines = cloneMap(s.serviceLines)
	c.productLines = cloneMap(s.productLines)
	c.lineSeq = cloneMap(s.lineSeq)
	c.expenses = cloneMap(s.expenses)
	c.expenseDetails = cloneMap(s.expenseDetails)
	c.payments = cloneMap(s.payments)
	c.sessions = cloneMap(s.sessions)
	c.services = cloneMap(s.services)
	c.users = cloneMap(s.users)
	c.promotions = cloneMap(s.promotions)
	return c
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// Store almacén en memoria. Las operaciones fuera de Run toman el mutex por llamada;
// Run lo toma durante toda la transacción, lo que serializa las escrituras.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un almacén vacío con los estados de cuenta sembrados.
func New() *Store {
	return &Store{st: newState()}
}

// NewSeeded crea un almacén con servicios de ejemplo y un usuario admin (admin@spa.local).
func NewSeeded(adminPassword string) (*Store, error) {
	s := New()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	now := time.Now()
	s.AddUser(entity.User{
		ID: "00000000-0000-0000-0000-000000000001", Email: "admin@spa.local", PasswordHash: string(hash),
		Name: "Administrador", Role: entity.RoleAdmin, Status: "active", CreatedAt: now, UpdatedAt: now,
	})
	s.AddService(entity.Service{ID: "sauna", Name: "Sauna", Price: decimal.NewFromInt(25000), Active: true})
	s.AddService(entity.Service{ID: "turco", Name: "Baño turco", Price: decimal.NewFromInt(20000), Active: true})
	s.AddService(entity.Service{ID: "masaje", Name: "Masaje relajante", Price: decimal.NewFromInt(60000), Active: true})
	return s, nil
}

// AddService registra un servicio del catálogo.
func (s *Store) AddService(svc entity.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.services[svc.ID] = svc
}

// AddUser registra un usuario.
func (s *Store) AddUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.ID] = u
}

// SetPromotion registra el descuento de una promoción.
func (s *Store) SetPromotion(id string, discount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.promotions[id] = discount
}

// GetDiscount implementa ports.PromotionCatalog.
func (s *Store) GetDiscount(_ context.Context, promotionID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.st.promotions[promotionID]
	if !ok {
		return decimal.Zero, domain.NotFound("promoción no encontrada")
	}
	return d, nil
}

// Repos devuelve repositorios no transaccionales sobre el almacén.
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

// Run ejecuta fn con el mutex tomado; si fn falla (o entra en pánico) se restaura la foto previa del estado.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	snapshot := s.st.clone()
	committed := false
	defer func() {
		if !committed {
			s.st = snapshot
		}
		s.mu.Unlock()
	}()
	if err := fn(s.repos(true)); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReadSnapshot ejecuta fn con el mutex tomado, sin escrituras concurrentes entre sus lecturas.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.repos(true))
}

func (s *Store) repos(inTx bool) repository.Repos {
	b := base{s: s, inTx: inTx}
	return repository.Repos{
		Products:     &productRepo{b},
		Movements:    &movementRepo{b},
		Accounts:     &accountRepo{b},
		ServiceLines: &serviceLineRepo{b},
		ProductLines: &productLineRepo{b},
		Expenses:     &expenseRepo{b},
		Payments:     &paymentRepo{b},
		Sessions:     &sessionRepo{b},
		Services:     &serviceRepo{b},
		Users:        &userRepo{b},
	}
}

type base struct {
	s    *Store
	inTx bool
}

// do ejecuta fn sobre el estado actual; fuera de una transacción toma el mutex.
func (b base) do(fn func(st *state) error) error {
	if !b.inTx {
		b.s.mu.Lock()
		defer b.s.mu.Unlock()
	}
	return fn(b.s.st)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
