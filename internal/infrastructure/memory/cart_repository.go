package memory

import (
	"context"
	"math"
	"sort"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

type CartRepository struct {
	s *Store
}

// Upsert takes the user's checkout lock so an add cannot land between a
// checkout's cart read and its cart clear.
func (r *CartRepository) Upsert(_ context.Context, line entity.CartLine) (entity.CartLine, error) {
	lock := r.s.userLock(line.UserID)
	lock.Lock()
	defer lock.Unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[line.UserID]; !ok {
		return entity.CartLine{}, apperror.NewNotFound("user not found")
	}
	now := r.s.now()
	key := cartKey{userID: line.UserID, productID: line.ProductID}
	if existing, ok := r.s.cart[key]; ok {
		if int64(existing.Quantity)+int64(line.Quantity) > math.MaxInt32 {
			return entity.CartLine{}, apperror.NewValidation("quantity too large")
		}
		merged := existing.Merge(line.Quantity, line.DiscountedPrice.Round(2), now)
		r.s.cart[key] = merged
		return merged, nil
	}
	line.DiscountedPrice = line.DiscountedPrice.Round(2)
	line.CreatedAt, line.UpdatedAt = now, now
	r.s.cart[key] = line
	return line, nil
}

func (r *CartRepository) Delete(_ context.Context, userID, productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := cartKey{userID: userID, productID: productID}
	if _, ok := r.s.cart[key]; !ok {
		return apperror.NewNotFound("product not found in cart")
	}
	delete(r.s.cart, key)
	return nil
}

func (r *CartRepository) ListByUser(_ context.Context, userID string) ([]entity.CartLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.cartLines(userID), nil
}

func (r *CartRepository) Clear(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clearCart(userID)
	return nil
}

// cartLines expects s.mu to be held.
func (s *Store) cartLines(userID string) []entity.CartLine {
	lines := make([]entity.CartLine, 0)
	for k, l := range s.cart {
		if k.userID == userID {
			lines = append(lines, l)
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].CreatedAt.Equal(lines[j].CreatedAt) {
			return lines[i].ProductID < lines[j].ProductID
		}
		return lines[i].CreatedAt.Before(lines[j].CreatedAt)
	})
	return lines
}

// clearCart expects s.mu to be held.
func (s *Store) clearCart(userID string) {
	for k := range s.cart {
		if k.userID == userID {
			delete(s.cart, k)
		}
	}
}

var _ repository.CartRepository = (*CartRepository)(nil)
