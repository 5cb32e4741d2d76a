package order

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var orderCols = []string{"id", "student_name", "product_name", "is_delivered", "created_at"}

func TestList_NewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM store_orders ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow("o2", "Sara", "Pen", true, now).
			AddRow("o1", "Omar", "Notebook", false, now.Add(-time.Hour)))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "o2" || !got[0].IsDelivered || got[1].StudentName != "Omar" {
		t.Fatalf("unexpected orders: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkDelivered_OKAndNotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := NewSQLRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE store_orders SET is_delivered = TRUE WHERE id = $1`)).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow("o1", "Omar", "Pen", true, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE store_orders SET is_delivered = TRUE WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(orderCols))

	o, err := repo.MarkDelivered(context.Background(), "o1")
	if err != nil || !o.IsDelivered || o.ProductName != "Pen" {
		t.Fatalf("MarkDelivered: o=%+v err=%v", o, err)
	}
	if _, err := repo.MarkDelivered(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkAllDelivered_OnlyPending(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := NewSQLRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE is_delivered = FALSE`)).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow("o1", "Omar", "Pen", true, time.Now()).
			AddRow("o3", "Lina", "Ruler", true, time.Now()))

	changed, err := repo.MarkAllDelivered(context.Background())
	if err != nil {
		t.Fatalf("MarkAllDelivered: %v", err)
	}
	if len(changed) != 2 {
		t.Fatalf("changed=%d, expected 2", len(changed))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete_ZeroRowsIsNotAnError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := NewSQLRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM store_orders WHERE id = $1`)).
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), "o1")
	if err != nil || n != 0 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
}

func TestDeleteIDs_ReturnsOnlyRemovedRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := NewSQLRepo(db)

	// empty set never reaches the database
	got, err := repo.DeleteIDs(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty DeleteIDs: got=%v err=%v", got, err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM store_orders WHERE id = ANY($1::uuid[])`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("o1"))

	got, err = repo.DeleteIDs(context.Background(), []string{"o1", "o9"})
	if err != nil || len(got) != 1 || got[0] != "o1" {
		t.Fatalf("DeleteIDs: got=%v err=%v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
