package credentials

import (
	"context"
	"database/sql"
	"testing"

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

func TestSetDisabled(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+auth_credentials.*ON\s+CONFLICT\s*\(uid\)\s+DO\s+UPDATE`).
		WithArgs("u-1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetDisabled(context.Background(), "u-1", true); err != nil {
		t.Fatalf("SetDisabled error: %v", err)
	}
}

func TestDisabled_NoRowMeansEnabled(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+disabled\s+FROM\s+auth_credentials`).
		WithArgs("u-1").
		WillReturnError(sql.ErrNoRows)

	disabled, err := repo.Disabled(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Disabled error: %v", err)
	}
	if disabled {
		t.Fatal("missing credential row must read as enabled")
	}
}
