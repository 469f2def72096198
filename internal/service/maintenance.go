package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/loanboard/internal/database"
	"github.com/jask/loanboard/internal/records"
)

// MaintenanceService houses destructive/ops actions.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes all records and writes the seed dataset back. It keeps the
// schema intact.
func (s *MaintenanceService) Reset(ctx context.Context, seed records.Seed) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"payments", "loans"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return database.InsertSeed(ctx, tx, seed)
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
