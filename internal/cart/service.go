package cart

import (
	"github.com/vzeeee/Qkart-Backend2/internal/apperr"
	"github.com/vzeeee/Qkart-Backend2/internal/lock"
	"github.com/vzeeee/Qkart-Backend2/internal/product"
)

// Catalog is the read-only product lookup the cart needs.
type Catalog interface {
	GetByID(id int) (product.Product, error)
}

// Service enforces the cart rules: one line per product, lines only for
// products that exist, and updates/removes only for lines that are present.
// Every mutation runs under the per-user lock so concurrent requests for the
// same user serialize.
type Service struct {
	repo    Repository
	catalog Catalog
	locks   *lock.Keyed
}

func NewService(repo Repository, catalog Catalog, locks *lock.Keyed) *Service {
	return &Service{repo: repo, catalog: catalog, locks: locks}
}

// GetCart returns the user's cart without side effects.
func (s *Service) GetCart(userID int) (Cart, error) {
	c, err := s.repo.FindByUser(userID)
	if err == ErrNotFound {
		return Cart{}, apperr.NotFound("cart not found")
	}
	if err != nil {
		return Cart{}, apperr.Infrastructure("could not load cart", err)
	}
	return c, nil
}

// AddItem appends a new line for productID, creating the cart on first use.
// Adding a product that is already in the cart is a conflict; the client
// must update or remove instead.
func (s *Service) AddItem(userID, productID, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, apperr.Validation("quantity must be positive")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	c, err := s.repo.FindByUser(userID)
	if err == ErrNotFound {
		c, err = s.repo.Create(Cart{UserID: userID})
	}
	if err != nil {
		return Cart{}, apperr.Infrastructure("could not load cart", err)
	}

	if c.indexOf(productID) >= 0 {
		return Cart{}, apperr.Conflict("product already in cart, use update or remove")
	}

	p, err := s.catalog.GetByID(productID)
	if err == product.ErrNotFound {
		return Cart{}, apperr.Validation("product does not exist in database")
	}
	if err != nil {
		return Cart{}, apperr.Infrastructure("could not load product", err)
	}

	c.Items = append(c.Items, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Cost:      p.Cost,
		Quantity:  quantity,
	})
	return s.save(c)
}

// UpdateItem overwrites the quantity of an existing line. There are no merge
// or delta semantics.
func (s *Service) UpdateItem(userID, productID, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, apperr.Validation("quantity must be positive")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	c, err := s.repo.FindByUser(userID)
	if err == ErrNotFound {
		return Cart{}, apperr.Validation("user does not have a cart, add a product first")
	}
	if err != nil {
		return Cart{}, apperr.Infrastructure("could not load cart", err)
	}

	if _, err := s.catalog.GetByID(productID); err == product.ErrNotFound {
		return Cart{}, apperr.Validation("product does not exist in database")
	} else if err != nil {
		return Cart{}, apperr.Infrastructure("could not load product", err)
	}

	idx := c.indexOf(productID)
	if idx < 0 {
		return Cart{}, apperr.Validation("product not in cart")
	}

	c.Items[idx].Quantity = quantity
	return s.save(c)
}

// RemoveItem deletes exactly one line; the remaining lines keep their order.
func (s *Service) RemoveItem(userID, productID int) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	c, err := s.repo.FindByUser(userID)
	if err == ErrNotFound {
		return apperr.Validation("user does not have a cart")
	}
	if err != nil {
		return apperr.Infrastructure("could not load cart", err)
	}

	idx := c.indexOf(productID)
	if idx < 0 {
		return apperr.Validation("product not in cart")
	}

	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	_, err = s.save(c)
	return err
}

func (s *Service) save(c Cart) (Cart, error) {
	saved, err := s.repo.Save(c)
	if err == ErrVersionConflict {
		return Cart{}, apperr.Conflict("cart was modified concurrently, retry")
	}
	if err != nil {
		return Cart{}, apperr.Infrastructure("could not save cart", err)
	}
	return saved, nil
}
