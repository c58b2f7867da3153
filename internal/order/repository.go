package order

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vzeeee/Qkart-Backend2/internal/cart"
	"github.com/vzeeee/Qkart-Backend2/internal/user"
)

// Settlement is the dual write of a checkout: debit the wallet, empty the
// cart, record the order. Repository implementations must apply it all or
// not at all.
type Settlement struct {
	UserID     int
	NewBalance int64
	// CartID/CartVersion condition the cart write; a stale version fails
	// the whole settlement with cart.ErrVersionConflict.
	CartID      string
	CartVersion int
	Order       Order
}

type Repository interface {
	Settle(st Settlement) (Order, error)
	ListByUser(userID int) ([]Order, error)
}

// InMemoryRepository settles against the in-memory user and cart
// repositories. It validates every leg before mutating anything so a failed
// settlement leaves both untouched.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders []Order
	users  *user.InMemoryRepository
	carts  *cart.InMemoryRepository
}

func NewInMemoryRepository(users *user.InMemoryRepository, carts *cart.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{
		orders: make([]Order, 0),
		users:  users,
		carts:  carts,
	}
}

func (r *InMemoryRepository) Settle(st Settlement) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)

	// precondition checks before any mutation
	if _, err := r.users.GetByID(st.UserID); err != nil {
		return Order{}, err
	}
	emptied := cart.Cart{
		ID:      st.CartID,
		UserID:  st.UserID,
		Items:   []cart.CartItem{},
		Version: st.CartVersion,
	}
	if _, err := r.carts.Save(emptied); err != nil {
		return Order{}, err
	}
	if _, err := r.users.UpdateWallet(st.UserID, st.NewBalance, now); err != nil {
		return Order{}, err
	}

	ord := st.Order
	if ord.ID == "" {
		ord.ID = uuid.NewString()
	}
	ord.CreatedAt = now
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
