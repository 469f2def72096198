package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/loanboard/internal/config"
	"github.com/jask/loanboard/internal/database"
	"github.com/jask/loanboard/internal/database/repository"
	"github.com/jask/loanboard/internal/records"
)

// Runtime is the wired application state shared by the CLI and the TUI.
type Runtime struct {
	Seed        records.Seed
	Store       *records.Store
	DB          *sql.DB             // nil when running in memory
	Ledger      *Ledger             // nil when running in memory
	Maintenance *MaintenanceService // nil when running in memory
}

// Close releases the database, if any.
func (r *Runtime) Close() error {
	if r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// LoadSeed returns the configured seed dataset, or the bundled one.
func LoadSeed(cfg config.Config) (records.Seed, error) {
	if p := strings.TrimSpace(cfg.Seed.Path); p != "" {
		return records.LoadSeedFile(p)
	}
	return records.DefaultSeed()
}

// Bootstrap loads the seed and builds the record store. With a database
// configured it migrates, seeds an empty database and starts the store from
// what is stored.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*Runtime, error) {
	if log == nil {
		log = zap.NewNop()
	}
	seed, err := LoadSeed(cfg)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	opts := []records.Option{
		records.WithIDPrefix(cfg.Loans.IDPrefix),
		records.WithPaymentMethod(cfg.Payments.Method),
	}

	rt := &Runtime{Seed: seed}
	path := strings.TrimSpace(cfg.Database.Path)
	if path == "" {
		rt.Store = records.NewStore(seed, opts...)
		log.Info("store ready", zap.String("mode", "memory"), zap.Int("loans", len(seed.Loans)), zap.Int("payments", len(seed.Payments)))
		return rt, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db, seed); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	loanRepo := repository.NewLoanRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	loans, err := loanRepo.List(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load loans: %w", err)
	}
	payments, err := paymentRepo.List(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load payments: %w", err)
	}

	rt.DB = db
	rt.Store = records.NewStore(records.Seed{Loans: loans, Payments: payments}, opts...)
	rt.Ledger = &Ledger{Loans: loanRepo, Payments: paymentRepo, Log: log}
	rt.Maintenance = &MaintenanceService{DB: db}
	log.Info("store ready", zap.String("mode", "sqlite"), zap.String("path", path), zap.Int("loans", len(loans)), zap.Int("payments", len(payments)))
	return rt, nil
}
