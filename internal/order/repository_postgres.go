package order

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/vzeeee/Qkart-Backend2/internal/cart"
	"github.com/vzeeee/Qkart-Backend2/internal/user"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Settle runs the wallet debit, the cart emptying and the order insert in a
// single transaction. The cart update is conditioned on the version read at
// checkout time; zero affected rows aborts the whole settlement.
func (r *PostgresRepository) Settle(st Settlement) (Order, error) {
	itemsJSON, err := json.Marshal(st.Order.Items)
	if err != nil {
		return Order{}, err
	}

	ord := st.Order
	if ord.ID == "" {
		ord.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	ord.CreatedAt = now

	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE users SET "walletMoney" = $1, "updatedAt" = $2 WHERE "userId" = $3`,
		st.NewBalance, now, st.UserID)
	if err != nil {
		return Order{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return Order{}, err
	} else if n == 0 {
		return Order{}, user.ErrNotFound
	}

	res, err = tx.Exec(`UPDATE carts SET items = '[]', version = version + 1, "updatedAt" = $1
        WHERE "cartID" = $2 AND version = $3`,
		now, st.CartID, st.CartVersion)
	if err != nil {
		return Order{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return Order{}, err
	} else if n == 0 {
		return Order{}, cart.ErrVersionConflict
	}

	if _, err := tx.Exec(`INSERT INTO orders ("orderID", "userID", items, total, "paymentOption", "createdAt")
        VALUES ($1,$2,$3,$4,$5,$6)`,
		ord.ID, ord.UserID, itemsJSON, ord.Total, ord.PaymentOption, ord.CreatedAt); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT "orderID", "userID", items, total, "paymentOption", "createdAt"
        FROM orders WHERE "userID" = $1 ORDER BY "createdAt" DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		var o Order
		var itemsJSON []byte
		if err := rows.Scan(&o.ID, &o.UserID, &itemsJSON, &o.Total, &o.PaymentOption, &o.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
