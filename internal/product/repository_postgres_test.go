package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"productID", "name", "category", "cost", "rating", "image"})
}

func TestPostgresListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().
		AddRow(2, "gadget", "Tools", 5, 5, "").
		AddRow(1, "widget", "Tools", 10, 4, "")
	mock.ExpectQuery("FROM products").WillReturnRows(rows)

	products, err := repo.ListByIDs([]int{2, 1})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	// db orders by array_position, rows come back in request order
	if products[0].ID != 2 || products[1].ID != 1 {
		t.Fatalf("unexpected ordering: %+v", products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListByIDs_EmptySkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	products, err := repo.ListByIDs(nil)
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected no products, got %d", len(products))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected query issued: %v", err)
	}
}

func TestPostgresGetByID_Absent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products WHERE").WithArgs(9).WillReturnRows(productRows())

	if _, err := repo.GetByID(9); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().AddRow(1, "UNIFACTOR Mens Running Shoes", "Fashion", 50, 5, "")
	mock.ExpectQuery("ILIKE").WithArgs("shoes").WillReturnRows(rows)

	products, err := repo.Search("shoes")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(products) != 1 || products[0].Cost != 50 {
		t.Fatalf("unexpected result %+v", products)
	}
}
