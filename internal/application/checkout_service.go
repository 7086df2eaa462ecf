package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

// CheckoutService turns a user's cart into an order.
//
// The cart read, the order insert and the cart clear run inside one
// CheckoutTransactor unit, which also serializes concurrent checkouts of the
// same user. Catalog resolution is a read against the document store and is
// not part of the transaction; it only decides whether the unit commits.
type CheckoutService struct {
	Tx       repo.CheckoutTransactor
	Products repo.ProductRepository
	Logger   *logrus.Logger

	newID func() string
	now   func() time.Time
}

func NewCheckoutService(tx repo.CheckoutTransactor, products repo.ProductRepository, logger *logrus.Logger) *CheckoutService {
	return &CheckoutService{
		Tx:       tx,
		Products: products,
		Logger:   orDiscard(logger),
		newID:    uuid.NewString,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string) (*entity.Order, error) {
	var placed *entity.Order
	err := s.Tx.WithinCheckout(ctx, userID, func(ctx context.Context, unit repo.CheckoutUnit) error {
		lines, err := unit.CartLines(ctx, userID)
		if err != nil {
			return apperror.Wrap("failed to read cart", err)
		}
		if len(lines) == 0 {
			return apperror.NewEmptyCart()
		}

		ids := distinctProductIDs(lines)
		products, err := s.Products.FindByIDs(ctx, ids)
		if err != nil {
			return apperror.Wrap("failed to resolve cart products", err)
		}
		byID := make(map[string]entity.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		if len(byID) != len(ids) {
			missing := make([]string, 0, len(ids)-len(byID))
			for _, id := range ids {
				if _, ok := byID[id]; !ok {
					missing = append(missing, id)
				}
			}
			return apperror.NewProductResolution(missing)
		}

		details := make([]entity.ProductSnapshot, 0, len(ids))
		for _, id := range ids {
			details = append(details, byID[id].Snapshot())
		}
		order := &entity.Order{
			ID:             s.newID(),
			UserID:         userID,
			ProductIDs:     ids,
			TotalAmount:    entity.CartTotal(lines).Round(2),
			Status:         entity.OrderStatusPending,
			ProductDetails: details,
			CreatedAt:      s.now(),
		}
		if err := unit.CreateOrder(ctx, order); err != nil {
			return apperror.Wrap("failed to place order", err)
		}
		if err := unit.ClearCart(ctx, userID); err != nil {
			return apperror.Wrap("failed to place order", err)
		}
		placed = order
		return nil
	})
	if err != nil {
		_, category, _ := apperror.HTTPStatus(err)
		checkoutAborted.Add(category, 1)
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": userID, "category": category}).Warn("checkout aborted")
		return nil, err
	}

	ordersPlaced.Add(1)
	s.Logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"order_id":     placed.ID,
		"total_amount": placed.TotalAmount.StringFixed(2),
		"lines":        len(placed.ProductIDs),
	}).Info("order placed")
	return placed, nil
}

func distinctProductIDs(lines []entity.CartLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}
