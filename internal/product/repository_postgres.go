package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `"productID", name, category, cost, rating, image`

const listByIDsQuery = `
        SELECT ` + productColumns + `
        FROM products
        WHERE "productID" = ANY($1::int[])
        ORDER BY array_position($1::int[], "productID")
    `

func scanProducts(rows *sql.Rows) ([]Product, error) {
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY "productID"`)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	var p Product
	err := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE "productID" = $1`, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Search(value string) ([]Product, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
        WHERE name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'
        ORDER BY "productID"`, value)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.Query(listByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(`INSERT INTO products (name, category, cost, rating, image)
        VALUES ($1,$2,$3,$4,$5) RETURNING "productID"`,
		p.Name, p.Category, p.Cost, p.Rating, p.Image).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
