package memory

import (
	"context"
	"strings"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

type OrderRepository struct {
	s *Store
}

// newestFirst walks the append-only order slice backwards, expecting s.mu to be held.
func (s *Store) newestFirst(keep func(o entity.Order) bool) []entity.Order {
	out := make([]entity.Order, 0)
	for i := len(s.orders) - 1; i >= 0; i-- {
		if keep(s.orders[i]) {
			out = append(out, cloneOrder(s.orders[i]))
		}
	}
	return out
}

func cloneOrder(o entity.Order) entity.Order {
	o.ProductIDs = append([]string(nil), o.ProductIDs...)
	details := make([]entity.ProductSnapshot, len(o.ProductDetails))
	for i, d := range o.ProductDetails {
		d.Images = append([]entity.ProductImage(nil), d.Images...)
		details[i] = d
	}
	o.ProductDetails = details
	return o
}

func (r *OrderRepository) ListByUser(_ context.Context, userID string) ([]entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.newestFirst(func(o entity.Order) bool { return o.UserID == userID }), nil
}

func (r *OrderRepository) ListForAdmin(_ context.Context, f repository.OrderFilter) ([]entity.Order, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	name := strings.ToLower(f.Name)
	matched := r.s.newestFirst(func(o entity.Order) bool {
		u, ok := r.s.users[o.UserID]
		if !ok {
			return false
		}
		return name == "" || strings.Contains(strings.ToLower(u.Name), name)
	})
	for i := range matched {
		u := r.s.users[matched[i].UserID]
		matched[i].UserName, matched[i].UserEmail = u.Name, u.Email
	}
	return window(matched, f.Offset, f.Limit), int64(len(matched)), nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
