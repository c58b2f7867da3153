package user

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `"userId", name, email, password, "walletMoney", address, "createdAt", "updatedAt"`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.WalletMoney, &u.Address, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE "userId" = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (name, email, password, "walletMoney", address, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING "userId"`,
		u.Name, u.Email, u.Password, u.WalletMoney, u.Address, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) UpdateAddress(id int, address string, updatedAt string) (User, error) {
	row := r.db.QueryRow(`UPDATE users SET address = $1, "updatedAt" = $2 WHERE "userId" = $3
        RETURNING `+userColumns, address, updatedAt, id)
	return scanUser(row)
}

func (r *PostgresRepository) UpdateWallet(id int, walletMoney int64, updatedAt string) (User, error) {
	row := r.db.QueryRow(`UPDATE users SET "walletMoney" = $1, "updatedAt" = $2 WHERE "userId" = $3
        RETURNING `+userColumns, walletMoney, updatedAt, id)
	return scanUser(row)
}
