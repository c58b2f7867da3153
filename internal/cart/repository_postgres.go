package cart

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByUser tolerates duplicate carts from a concurrent first-add race by
// always picking the oldest row.
func (r *PostgresRepository) FindByUser(userID int) (Cart, error) {
	var c Cart
	var itemsJSON []byte
	err := r.db.QueryRow(`SELECT "cartID", "userID", items, version, "createdAt", "updatedAt"
        FROM carts WHERE "userID" = $1 ORDER BY "createdAt", "cartID" LIMIT 1`, userID).
		Scan(&c.ID, &c.UserID, &itemsJSON, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return Cart{}, ErrNotFound
	}
	if err != nil {
		return Cart{}, err
	}

	if err := json.Unmarshal(itemsJSON, &c.Items); err != nil {
		return Cart{}, err
	}
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	return c, nil
}

func (r *PostgresRepository) Create(c Cart) (Cart, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Version = 0

	itemsJSON, err := json.Marshal(c.Items)
	if err != nil {
		return Cart{}, err
	}

	if _, err := r.db.Exec(`INSERT INTO carts ("cartID", "userID", items, version, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6)`,
		c.ID, c.UserID, itemsJSON, c.Version, c.CreatedAt, c.UpdatedAt); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Save is a conditional write: it only applies when the row still carries
// the version the caller read.
func (r *PostgresRepository) Save(c Cart) (Cart, error) {
	itemsJSON, err := json.Marshal(c.Items)
	if err != nil {
		return Cart{}, err
	}
	updatedAt := time.Now().UTC().Format(time.RFC3339)

	res, err := r.db.Exec(`UPDATE carts SET items = $1, version = version + 1, "updatedAt" = $2
        WHERE "cartID" = $3 AND version = $4`,
		itemsJSON, updatedAt, c.ID, c.Version)
	if err != nil {
		return Cart{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Cart{}, err
	}
	if affected == 0 {
		return Cart{}, ErrVersionConflict
	}

	c.Version++
	c.UpdatedAt = updatedAt
	return c, nil
}
