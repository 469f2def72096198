package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/loanboard/internal/database/repository"
	"github.com/jask/loanboard/internal/records"
)

// SeedDefaults writes the seed dataset into an empty database. It is
// idempotent and safe to run on every startup: a database that already holds
// loans is left alone.
func SeedDefaults(ctx context.Context, db *sql.DB, seed records.Seed) error {
	n, err := repository.NewLoanRepo(db).Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		return InsertSeed(ctx, tx, seed)
	})
}

// InsertSeed writes every seed record using tx.
func InsertSeed(ctx context.Context, tx *sql.Tx, seed records.Seed) error {
	loans := repository.NewLoanRepo(tx)
	payments := repository.NewPaymentRepo(tx)
	for _, l := range seed.Loans {
		if err := loans.Insert(ctx, l); err != nil {
			return fmt.Errorf("seed loan %s: %w", l.ID, err)
		}
	}
	for _, p := range seed.Payments {
		if err := payments.Insert(ctx, p); err != nil {
			return fmt.Errorf("seed payment %s: %w", p.ID, err)
		}
	}
	return nil
}
