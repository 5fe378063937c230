package services

import (
	"context"
	"errors"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/models"
	"github.com/Laib363/E-Commerce-Project/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartView is the resolved cart: full listings plus their price total.
type CartView struct {
	Items []models.Listing
	Total float64
}

// CartService implements the per-user cart workflow.
type CartService struct {
	users    repository.UserRepository
	listings repository.ListingRepository
}

// NewCartService creates a new CartService.
func NewCartService(users repository.UserRepository, listings repository.ListingRepository) *CartService {
	return &CartService{users: users, listings: listings}
}

// View resolves the user's cart references to full listings. A listing that
// vanished since being added is skipped; a missing price contributes nothing
// to the total.
func (s *CartService) View(ctx context.Context, user *models.User) (*CartView, error) {
	items, err := s.listings.FindByIDs(ctx, user.Cart)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var total float64
	for _, item := range items {
		total += item.Price
	}
	return &CartView{Items: items, Total: total}, nil
}

// Add appends the listing to the user's cart. Re-adding a present id is a
// no-op; the return value reports whether the cart actually changed.
func (s *CartService) Add(ctx context.Context, user *models.User, listingID primitive.ObjectID) (bool, error) {
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, apperrors.ErrNotFound
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if user.InCart(listingID) {
		return false, nil
	}

	cart := append(append([]primitive.ObjectID{}, user.Cart...), listingID)
	if err := s.users.UpdateCart(ctx, user.ID, cart); err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.Cart = cart
	return true, nil
}

// Remove pulls every occurrence of the listing id from the cart. Removing an
// absent id is a successful no-op.
func (s *CartService) Remove(ctx context.Context, userID, listingID primitive.ObjectID) error {
	if err := s.users.PullFromCart(ctx, userID, listingID); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
