package product

// Product is read-only catalog data. Cost is a whole-currency amount; cart
// lines snapshot it at add time.
type Product struct {
	ID       int    `json:"productID"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Cost     int64  `json:"cost"`
	Rating   int    `json:"rating"`
	Image    string `json:"image,omitempty"`
}
