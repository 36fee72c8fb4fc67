// Package memory is an in-process entity store with the same conditional
// write semantics as the DynamoDB repositories. It backs STORE_DRIVER=memory
// and the use-case scenario tests.
package memory

import (
	"sort"
	"sync"

	"topspot/internal/domain"
	"topspot/internal/domain/entities"
)

var (
	errVersionConflict = domain.New(domain.KindConflict, "SERVICE_VERSION_CONFLICT", "service was modified concurrently")
	errStateConflict   = domain.New(domain.KindConflict, "QUOTE_STATE_CONFLICT", "quote state changed concurrently")
	errPaymentConflict = domain.New(domain.KindConflict, "PAYMENT_STATE_CONFLICT", "payment state changed concurrently")
	errEmailTaken      = domain.New(domain.KindConflict, "EMAIL_ALREADY_REGISTERED", "email already registered")
	errDuplicateID     = domain.New(domain.KindConflict, "DUPLICATE_ID", "record already exists")
)

// Store holds all four collections behind one mutex so multi-entity
// commits are atomic.
type Store struct {
	mu       sync.Mutex
	users    map[string]entities.User
	services map[string]entities.Service
	quotes   map[string]entities.Quote
	payments map[string]entities.Payment
}

func NewStore() *Store {
	return &Store{
		users:    map[string]entities.User{},
		services: map[string]entities.Service{},
		quotes:   map[string]entities.Quote{},
		payments: map[string]entities.Payment{},
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s} }
func (s *Store) Services() *ServiceRepository { return &ServiceRepository{s} }
func (s *Store) Quotes() *QuoteRepository     { return &QuoteRepository{s} }
func (s *Store) Payments() *PaymentRepository { return &PaymentRepository{s} }

// Slices and the media list are copied so callers never share backing arrays
// with the store.
func cloneUser(u entities.User) entities.User {
	u.Categories = append([]string(nil), u.Categories...)
	return u
}

func cloneService(sv entities.Service) entities.Service {
	sv.Categories = append([]string(nil), sv.Categories...)
	sv.Media = append([]string(nil), sv.Media...)
	return sv
}

func newestFirstServices(items []entities.Service) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}
