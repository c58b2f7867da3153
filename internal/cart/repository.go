package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("cart not found")
	// ErrVersionConflict means the stored cart changed since it was read.
	ErrVersionConflict = errors.New("cart version conflict")
)

type Repository interface {
	// FindByUser returns the user's cart. If concurrent first-adds ever
	// created more than one, the oldest wins.
	FindByUser(userID int) (Cart, error)
	Create(c Cart) (Cart, error)
	// Save persists the cart's lines if the stored version still matches
	// c.Version, and returns the cart with the bumped version. A stale
	// version yields ErrVersionConflict.
	Save(c Cart) (Cart, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts []Cart
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make([]Cart, 0)}
}

func copyItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}

func (r *InMemoryRepository) FindByUser(userID int) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.carts {
		if c.UserID == userID {
			c.Items = copyItems(c.Items)
			return c, nil
		}
	}
	return Cart{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Cart) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Items == nil {
		c.Items = []CartItem{}
	}

	stored := c
	stored.Items = copyItems(c.Items)
	r.carts = append(r.carts, stored)
	return c, nil
}

func (r *InMemoryRepository) Save(c Cart) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.carts {
		if stored.ID == c.ID {
			if stored.Version != c.Version {
				return Cart{}, ErrVersionConflict
			}
			c.Version++
			c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			c.CreatedAt = stored.CreatedAt

			updated := c
			updated.Items = copyItems(c.Items)
			r.carts[i] = updated
			return c, nil
		}
	}
	return Cart{}, ErrNotFound
}
