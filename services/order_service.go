package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/logger"
	"github.com/Laib363/E-Commerce-Project/models"
	"github.com/Laib363/E-Commerce-Project/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// deliveryWindow is added to the order date for the delivery estimate.
const deliveryWindow = 5 * 24 * time.Hour

// OrderDetail is an order with its item references resolved.
type OrderDetail struct {
	Order models.Order
	Items []models.Listing
}

// OrderService implements checkout and order viewing.
type OrderService struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	listings repository.ListingRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, listings repository.ListingRepository) *OrderService {
	return &OrderService{orders: orders, users: users, listings: listings}
}

// Checkout snapshots the user's cart into a new order and clears the cart.
// The snapshot is frozen: later price or listing changes never alter it. If
// clearing the cart fails the order still stands and the failure is logged.
func (s *OrderService) Checkout(ctx context.Context, user *models.User) (*models.Order, error) {
	items, err := s.listings.FindByIDs(ctx, user.Cart)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	var total float64
	itemIDs := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		total += item.Price
		itemIDs = append(itemIDs, item.ID)
	}

	orderID, err := generateOrderID()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	order := &models.Order{
		OrderID:           orderID,
		Customer:          user.ID,
		Items:             itemIDs,
		TotalAmount:       total,
		Status:            models.StatusPlaced,
		OrderDate:         now,
		EstimatedDelivery: now.Add(deliveryWindow),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.users.UpdateCart(ctx, user.ID, []primitive.ObjectID{}); err != nil {
		// Accepted gap: the order stands even when the cart stays stale.
		logger.Error(ctx, "Failed to clear cart after checkout", err,
			zap.String("order_id", order.OrderID),
			zap.String("user_id", user.ID.Hex()))
	} else {
		user.Cart = []primitive.ObjectID{}
	}

	return order, nil
}

// ListForCustomer returns the customer's orders newest first, items resolved.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]OrderDetail, error) {
	orders, err := s.orders.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	details := make([]OrderDetail, 0, len(orders))
	for _, order := range orders {
		items, err := s.listings.FindByIDs(ctx, order.Items)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		details = append(details, OrderDetail{Order: order, Items: items})
	}
	return details, nil
}

// Get returns one order with items resolved. Only the order's customer may
// view it; anyone else gets Unauthorized regardless of what they guessed.
func (s *OrderService) Get(ctx context.Context, id, customerID primitive.ObjectID) (*OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if order.Customer != customerID {
		return nil, apperrors.ErrUnauthorized
	}

	items, err := s.listings.FindByIDs(ctx, order.Items)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &OrderDetail{Order: *order, Items: items}, nil
}

// generateOrderID returns a 16-character uppercase hex token from a
// cryptographically random source. Collisions are negligible; the unique
// index on order_id backstops them.
func generateOrderID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
