package user

// User represents an account row. WalletMoney is a whole-currency amount
// debited by checkout; Address holds the configured sentinel until the user
// sets a real one.
type User struct {
	ID          int    `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	WalletMoney int64  `json:"walletMoney"`
	Address     string `json:"address"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
