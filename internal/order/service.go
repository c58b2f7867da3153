package order

import (
	"github.com/vzeeee/Qkart-Backend2/internal/apperr"
	"github.com/vzeeee/Qkart-Backend2/internal/cart"
	"github.com/vzeeee/Qkart-Backend2/internal/config"
	"github.com/vzeeee/Qkart-Backend2/internal/lock"
	"github.com/vzeeee/Qkart-Backend2/internal/user"
)

// CartStore is the read side of the cart the settlement needs.
type CartStore interface {
	FindByUser(userID int) (cart.Cart, error)
}

// UserStore supplies the wallet balance and address for the gate checks.
type UserStore interface {
	GetByID(id int) (user.User, error)
}

// Service settles checkouts. It shares the per-user lock with the cart
// service so a checkout and a cart mutation for the same user cannot
// interleave.
type Service struct {
	repo  Repository
	carts CartStore
	users UserStore
	cfg   config.Config
	locks *lock.Keyed
}

func NewService(repo Repository, carts CartStore, users UserStore, cfg config.Config, locks *lock.Keyed) *Service {
	return &Service{repo: repo, carts: carts, users: users, cfg: cfg, locks: locks}
}

// Checkout converts the user's cart into an order against the wallet
// balance. Gates run in a fixed order: cart exists, cart non-empty, address
// set, balance sufficient. The debit, the cart emptying and the order row
// are one settlement; if any leg fails nothing is applied.
func (s *Service) Checkout(userID int) (Order, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	c, err := s.carts.FindByUser(userID)
	if err == cart.ErrNotFound {
		return Order{}, apperr.NotFound("cart not found")
	}
	if err != nil {
		return Order{}, apperr.Infrastructure("could not load cart", err)
	}

	if len(c.Items) == 0 {
		return Order{}, apperr.Validation("cart is empty")
	}

	u, err := s.users.GetByID(userID)
	if err == user.ErrNotFound {
		return Order{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return Order{}, apperr.Infrastructure("could not load user", err)
	}

	if u.Address == s.cfg.DefaultAddress {
		return Order{}, apperr.Validation("address not set")
	}

	total := c.Total()
	if total > u.WalletMoney {
		return Order{}, apperr.Validation("wallet balance is insufficient")
	}

	items := make([]cart.CartItem, len(c.Items))
	copy(items, c.Items)

	ord, err := s.repo.Settle(Settlement{
		UserID:      userID,
		NewBalance:  u.WalletMoney - total,
		CartID:      c.ID,
		CartVersion: c.Version,
		Order: Order{
			UserID:        userID,
			Items:         items,
			Total:         total,
			PaymentOption: s.cfg.DefaultPaymentOption,
		},
	})
	if err == cart.ErrVersionConflict {
		return Order{}, apperr.Conflict("cart was modified concurrently, retry")
	}
	if err != nil {
		return Order{}, apperr.Infrastructure("could not settle checkout", err)
	}
	return ord, nil
}

// Orders returns the user's settled orders, newest first.
func (s *Service) Orders(userID int) ([]Order, error) {
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, apperr.Infrastructure("could not list orders", err)
	}
	return orders, nil
}
