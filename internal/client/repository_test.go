// internal/client/repository_test.go
//
// Unit-tests for the client repository using sqlmock.
//
// Run: go test ./internal/client -v

package client

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepo(sqlx.NewDb(db, "mysql")), mock
}

func TestInsert_DuplicateSubdomain(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO client").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'joes-pizza'"})

	rec := &Record{
		ID:           "c1",
		BusinessName: "Joe's Pizza",
		Subdomain:    "joes-pizza",
		Industry:     "restaurant",
		Email:        "a@b.com",
		Phone:        "1234567890",
		AboutUs:      "A decade of great pizza.",
		Services:     ServiceList{"Pizza", "Pasta", "Salad"},
		TemplateID:   "restaurant",
		Status:       "pending",
	}
	if err := repo.Insert(context.Background(), rec); !errors.Is(err, ErrSubdomainTaken) {
		t.Fatalf("Insert error = %v, want ErrSubdomainTaken", err)
	}
}

func TestSubdomainExists_FoldsCase(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT 1 FROM client WHERE subdomain = ? LIMIT 1`,
	)).
		WithArgs("joes-pizza").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	taken, err := repo.SubdomainExists(context.Background(), "JOES-PIZZA")
	if err != nil {
		t.Fatalf("SubdomainExists error: %v", err)
	}
	if !taken {
		t.Fatal("expected taken = true for case-variant lookup")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSubdomainExists_Free(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT 1 FROM client").
		WithArgs("fresh-cuts").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	taken, err := repo.SubdomainExists(context.Background(), "fresh-cuts")
	if err != nil {
		t.Fatalf("SubdomainExists error: %v", err)
	}
	if taken {
		t.Fatal("expected taken = false for empty result")
	}
}

func TestByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, business_name").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.ByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ByID error = %v, want ErrNotFound", err)
	}
}

func TestByID_RoundTripsServiceOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	cols := []string{
		"id", "business_name", "subdomain", "industry", "email", "phone",
		"address", "about_us", "services", "hours", "social_links",
		"template_id", "status", "deployment_url", "site_data",
		"created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT id, business_name").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"c1", "Joe's Pizza", "joes-pizza", "restaurant", "a@b.com",
			"1234567890", nil, "A decade of great pizza.",
			[]byte(`["Pizza","Pasta","Salad"]`), nil, nil,
			"restaurant", "pending", nil, nil, now, now,
		))

	rec, err := repo.ByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ByID error: %v", err)
	}
	want := []string{"Pizza", "Pasta", "Salad"}
	if len(rec.Services) != len(want) {
		t.Fatalf("services length = %d, want %d", len(rec.Services), len(want))
	}
	for i := range want {
		if rec.Services[i] != want[i] {
			t.Fatalf("services[%d] = %q, want %q (order must round-trip)", i, rec.Services[i], want[i])
		}
	}
	if rec.Hours != nil || rec.SocialLinks != nil || rec.DeploymentURL != nil {
		t.Fatal("NULL columns must scan to nil pointers")
	}
}
