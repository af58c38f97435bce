package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,\s*full_name,\s*password_hash,\s*disabled,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`

	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "username", "full_name", "password_hash", "disabled", "created_at"}).
		AddRow("u-1", "demo@demo.com", "Demo User", "$2b$12$hash", false, created)
	mock.ExpectQuery(q).
		WithArgs("demo@demo.com").
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "demo@demo.com")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != "u-1" || got.Username != "demo@demo.com" || got.FullName != "Demo User" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.Disabled {
		t.Fatalf("expected enabled user")
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,\s*full_name,\s*password_hash,\s*disabled,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetByUsername_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,\s*full_name,\s*password_hash,\s*disabled,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("demo@demo.com").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByUsername(context.Background(), "demo@demo.com")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
