package cart

// CartItem is one line of a cart: a product snapshot plus a quantity. The
// snapshot (id, name, cost) is enough to price the line without another
// catalog read.
type CartItem struct {
	ProductID int    `json:"productID"`
	Name      string `json:"name"`
	Cost      int64  `json:"cost"`
	Quantity  int    `json:"quantity"`
}

// Cart holds a user's pending lines. Items keep insertion order and contain
// at most one line per product. Version counts successful writes; the store
// refuses a save whose version is stale.
type Cart struct {
	ID        string     `json:"cartID"`
	UserID    int        `json:"userId"`
	Items     []CartItem `json:"cartItems"`
	Version   int        `json:"-"`
	CreatedAt string     `json:"createdAt,omitempty"`
	UpdatedAt string     `json:"updatedAt,omitempty"`
}

// Total returns the sum of quantity × cost over all lines.
func (c Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += int64(it.Quantity) * it.Cost
	}
	return total
}

// indexOf returns the position of the first line matching productID, or -1.
// Matching is by product id only; if duplicates ever slip in, the first one
// wins so behavior stays deterministic.
func (c Cart) indexOf(productID int) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
