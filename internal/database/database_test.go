package database

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/loanboard/internal/database/repository"
	"github.com/jask/loanboard/internal/records"
)

func openTestDB(t *testing.T) (string, *repository.LoanRepo, *repository.PaymentRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return dbPath, repository.NewLoanRepo(db), repository.NewPaymentRepo(db)
}

func TestMigrationsAreRepeatable(t *testing.T) {
	t.Parallel()

	dbPath, loans, _ := openTestDB(t)
	require.NoError(t, RunMigrations(dbPath))

	n, err := loans.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestLoanRoundTrip(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, loans, _ := openTestDB(t)

	in := records.Loan{
		ID:               "LN-2024-001",
		BorrowerID:       1,
		LenderID:         101,
		Amount:           1000,
		InterestRate:     5,
		TermMonths:       12,
		Status:           records.LoanActive,
		Purpose:          "car",
		StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthlyPayment:   90,
		RemainingBalance: 1000,
		NextPaymentDate:  time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	broken := records.Loan{ID: "LN-2024-002", Amount: math.NaN(), InterestRate: math.NaN(), RemainingBalance: math.NaN(), Status: records.LoanActive}
	require.NoError(t, loans.Insert(ctx, in))
	require.NoError(t, loans.Insert(ctx, broken))
	require.Error(t, loans.Insert(ctx, in), "duplicate id")

	got, err := loans.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, in, got[0])
	require.True(t, math.IsNaN(got[1].Amount))
	require.True(t, math.IsNaN(got[1].RemainingBalance))
	require.True(t, got[1].StartDate.IsZero())
}

func TestPaymentUpdateProcessed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, _, payments := openTestDB(t)

	due := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, payments.Insert(ctx, records.Payment{ID: "P1", LoanID: "LN-2024-001", Amount: 477.53, DueDate: due, Status: records.PaymentPending}))

	p, err := payments.Get(ctx, "P1")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Nil(t, p.Date)
	require.Equal(t, due, p.DueDate)

	paid := time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)
	p.Status = records.PaymentCompleted
	p.Date = &paid
	p.Method = "Bank Transfer"
	p.TransactionID = "TXN-1"
	ok, err := payments.UpdateProcessed(ctx, *p)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := payments.Get(ctx, "P1")
	require.NoError(t, err)
	require.Equal(t, *p, *got)

	ok, err = payments.UpdateProcessed(ctx, records.Payment{ID: "P99", Status: records.PaymentCompleted})
	require.NoError(t, err)
	require.False(t, ok)

	missing, err := payments.Get(ctx, "P99")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPaymentStatusConstraint(t *testing.T) {
	t.Parallel()

	_, _, payments := openTestDB(t)
	err := payments.Insert(context.Background(), records.Payment{ID: "P1", LoanID: "L", Status: "Refunded"})
	require.Error(t, err)
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	seed, err := records.DefaultSeed()
	require.NoError(t, err)
	require.NoError(t, SeedDefaults(ctx, db, seed))
	require.NoError(t, SeedDefaults(ctx, db, seed))

	loans, err := repository.NewLoanRepo(db).List(ctx)
	require.NoError(t, err)
	require.Equal(t, seed.Loans, loans)

	payments, err := repository.NewPaymentRepo(db).List(ctx)
	require.NoError(t, err)
	require.Equal(t, seed.Payments, payments)
}

func TestOpenAppliesConnectionSettings(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "pragma.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	require.Equal(t, 1, fk)

	require.Contains(t, DSN("/tmp/x.db"), "_txlock=immediate")
}

func TestOpenMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "nope", "loans.db"))
	require.Error(t, err)
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tx.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := repository.NewLoanRepo(tx).Insert(ctx, records.Loan{ID: "LN-2024-001", Status: records.LoanActive}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := repository.NewLoanRepo(db).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}
