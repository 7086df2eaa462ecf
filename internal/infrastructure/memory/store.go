// Package memory holds map-backed implementations of the store contracts.
// They honour the same invariants as the database adapters and back the service tests.
package memory

import (
	"sync"
	"time"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
)

type cartKey struct {
	userID    string
	productID string
}

// Store is shared by every repository returned from it.
type Store struct {
	mu       sync.RWMutex
	users    map[string]entity.User
	products map[string]entity.Product
	cart     map[cartKey]entity.CartLine
	orders   []entity.Order

	locksMu   sync.Mutex
	userLocks map[string]*sync.Mutex

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		products:  make(map[string]entity.Product),
		cart:      make(map[cartKey]entity.CartLine),
		userLocks: make(map[string]*sync.Mutex),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Products() *ProductRepository {
	return &ProductRepository{s: s}
}

func (s *Store) Cart() *CartRepository {
	return &CartRepository{s: s}
}

func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{s: s}
}

func (s *Store) Checkout() *CheckoutTransactor {
	return &CheckoutTransactor{s: s}
}

func (s *Store) userLock(userID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}
