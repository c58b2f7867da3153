package order

import "github.com/vzeeee/Qkart-Backend2/internal/cart"

// Order is the record of a settled checkout: the cart lines as they were
// priced, the total debited from the wallet, and the payment option in
// effect.
type Order struct {
	ID            string          `json:"orderID"`
	UserID        int             `json:"userId"`
	Items         []cart.CartItem `json:"items"`
	Total         int64           `json:"total"`
	PaymentOption string          `json:"paymentOption"`
	CreatedAt     string          `json:"createdAt"`
}
