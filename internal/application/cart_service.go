package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

type CartService struct {
	Cart   repo.CartRepository
	Logger *logrus.Logger
}

func NewCartService(cart repo.CartRepository, logger *logrus.Logger) *CartService {
	return &CartService{Cart: cart, Logger: orDiscard(logger)}
}

// AddLineInput carries the raw request values; numbers may arrive as strings.
type AddLineInput struct {
	ProductID       string
	Quantity        string
	DiscountedPrice string
}

// AddLine merges into the existing (user, product) line or creates it.
// Quantity is additive, the unit price is replaced by the latest one.
func (s *CartService) AddLine(ctx context.Context, userID string, in AddLineInput) (entity.CartLine, error) {
	productID := strings.TrimSpace(in.ProductID)
	if !entity.ValidProductID(productID) {
		return entity.CartLine{}, apperror.NewValidation("invalid product id")
	}
	qty, err := ParseQuantity(in.Quantity)
	if err != nil {
		return entity.CartLine{}, err
	}
	price, err := ParsePrice("discountedPrice", in.DiscountedPrice)
	if err != nil {
		return entity.CartLine{}, err
	}

	line, err := s.Cart.Upsert(ctx, entity.CartLine{
		UserID:          userID,
		ProductID:       productID,
		Quantity:        qty,
		DiscountedPrice: price,
	})
	if err != nil {
		return entity.CartLine{}, apperror.Wrap("failed to add to cart", err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "product_id": productID, "quantity": line.Quantity}).Debug("cart line upserted")
	return line, nil
}

// RemoveLine deletes the line and returns the removed product id.
func (s *CartService) RemoveLine(ctx context.Context, userID, productID string) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", apperror.NewValidation("productId is required")
	}
	if err := s.Cart.Delete(ctx, userID, productID); err != nil {
		return "", apperror.Wrap("failed to remove from cart", err)
	}
	return productID, nil
}

func (s *CartService) ListLines(ctx context.Context, userID string) ([]entity.CartLine, error) {
	lines, err := s.Cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap("failed to load cart", err)
	}
	return lines, nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.Cart.Clear(ctx, userID); err != nil {
		return apperror.Wrap("failed to clear cart", err)
	}
	return nil
}
