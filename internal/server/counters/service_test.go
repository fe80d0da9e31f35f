package counters

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/tigerroots/collective/internal/server/repositories/repomanager"
)

func TestUpdateCounts_SingleTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+total_trees\s*=\s*total_trees\s*\+\s*\$2`).
		WithArgs("u-1", 1, 1.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+role\s*=\s*\$2\s+WHERE\s+uid\s*=\s*\$1\s+AND\s+role\s*=\s*\$3`).
		WithArgs("u-1", "intern", "unroled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewService(db, repomanager.NewPostgresRepositoryManager())
	if err := svc.UpdateCounts(context.Background(), "u-1", 1, 1); err != nil {
		t.Fatalf("UpdateCounts error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateCounts_MissingUserIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+total_trees`).
		WithArgs("ghost", 0, 0.5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+role`).
		WithArgs("ghost", "intern", "unroled").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	svc := NewService(db, repomanager.NewPostgresRepositoryManager())
	if err := svc.UpdateCounts(context.Background(), "ghost", 0, 0.5); err != nil {
		t.Fatalf("UpdateCounts on missing user must not error: %v", err)
	}
}

func TestUpdateCounts_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+total_trees`).
		WithArgs("u-1", 1, 1.0).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	svc := NewService(db, repomanager.NewPostgresRepositoryManager())
	if err := svc.UpdateCounts(context.Background(), "u-1", 1, 1); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPromoteIfEligible_Standalone(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+role\s*=\s*\$2\s+WHERE\s+uid\s*=\s*\$1\s+AND\s+role\s*=\s*\$3\s+AND\s+total_trees\s*>=\s*1\s+AND\s+recruits\s*>=\s*1`).
		WithArgs("u-a", "intern", "unroled").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewService(db, repomanager.NewPostgresRepositoryManager())
	if err := svc.PromoteIfEligible(context.Background(), "u-a"); err != nil {
		t.Fatalf("PromoteIfEligible error: %v", err)
	}
}
