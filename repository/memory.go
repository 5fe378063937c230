package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Laib363/E-Commerce-Project/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory implementations of the repository interfaces. The store is a
// substitution point: anything honoring the interfaces can back the
// workflows, and tests run against these instead of a live MongoDB.

// MemoryUserRepository is an in-memory UserRepository.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Cart == nil {
		user.Cart = []primitive.ObjectID{}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	clone.Cart = append([]primitive.ObjectID{}, u.Cart...)
	return &clone, nil
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			clone.Cart = append([]primitive.ObjectID{}, u.Cart...)
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) UpdateCart(_ context.Context, userID primitive.ObjectID, cart []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Cart = append([]primitive.ObjectID{}, cart...)
	return nil
}

func (r *MemoryUserRepository) PullFromCart(_ context.Context, userID, listingID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	kept := u.Cart[:0]
	for _, id := range u.Cart {
		if id != listingID {
			kept = append(kept, id)
		}
	}
	u.Cart = kept
	return nil
}

// MemoryListingRepository is an in-memory ListingRepository.
type MemoryListingRepository struct {
	mu       sync.RWMutex
	listings map[primitive.ObjectID]*models.Listing
	order    []primitive.ObjectID
}

// NewMemoryListingRepository creates an empty MemoryListingRepository.
func NewMemoryListingRepository() *MemoryListingRepository {
	return &MemoryListingRepository{listings: make(map[primitive.ObjectID]*models.Listing)}
}

func (r *MemoryListingRepository) FindAll(_ context.Context) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]models.Listing, 0, len(r.order))
	for _, id := range r.order {
		if l, ok := r.listings[id]; ok {
			all = append(all, *l)
		}
	}
	return all, nil
}

func (r *MemoryListingRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *MemoryListingRepository) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resolved := make([]models.Listing, 0, len(ids))
	for _, id := range ids {
		if l, ok := r.listings[id]; ok {
			resolved = append(resolved, *l)
		}
	}
	return resolved, nil
}

func (r *MemoryListingRepository) Create(_ context.Context, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	clone := *listing
	r.listings[listing.ID] = &clone
	r.order = append(r.order, listing.ID)
	return nil
}

func (r *MemoryListingRepository) Update(_ context.Context, id primitive.ObjectID, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.listings[id]
	if !ok {
		return ErrNotFound
	}
	existing.Title = listing.Title
	existing.Description = listing.Description
	existing.Price = listing.Price
	existing.Image = listing.Image
	return nil
}

func (r *MemoryListingRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

// MemoryOrderRepository is an in-memory OrderRepository.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]*models.Order
}

// NewMemoryOrderRepository creates an empty MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderID == order.OrderID {
			return ErrDuplicate
		}
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	clone := *order
	clone.Items = append([]primitive.ObjectID{}, order.Items...)
	r.orders[order.ID] = &clone
	return nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *o
	clone.Items = append([]primitive.ObjectID{}, o.Items...)
	return &clone, nil
}

func (r *MemoryOrderRepository) FindByCustomer(_ context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var orders []models.Order
	for _, o := range r.orders {
		if o.Customer == customerID {
			clone := *o
			clone.Items = append([]primitive.ObjectID{}, o.Items...)
			orders = append(orders, clone)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}
