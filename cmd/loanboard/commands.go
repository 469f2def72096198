package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/loanboard/internal/config"
	"github.com/jask/loanboard/internal/database"
	"github.com/jask/loanboard/internal/records"
	"github.com/jask/loanboard/internal/service"
)

var loansQuery string

// loansCmd prints the loan table
var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List loans, optionally filtered",
	Args:  cobra.NoArgs,
	RunE:  runLoans,
}

// payCmd processes one payment without the UI
var payCmd = &cobra.Command{
	Use:   "pay [payment-id]",
	Short: "Mark a payment as completed",
	Long: `Processes the payment the same way the borrower dashboard does and
stores the result when a database is configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runPay,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations to database.path",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the database and restore the seed dataset",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runLoans(cmd *cobra.Command, args []string) error {
	rt, err := service.Bootstrap(commandContext(cmd), cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	loans := records.Search(rt.Store.Loans(), loansQuery)
	if len(loans) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no loans")
		return nil
	}
	rows := make([][]string, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, []string{
			l.ID,
			strconv.Itoa(l.BorrowerID),
			strconv.Itoa(l.LenderID),
			money(l.Amount),
			string(l.Status),
			l.Purpose,
			money(l.RemainingBalance),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Borrower", "Lender", "Amount", "Status", "Purpose", "Balance").
		Rows(rows...)
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

func runPay(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := service.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	id := strings.TrimSpace(args[0])
	p, ok := rt.Store.ProcessPayment(id)
	if !ok {
		return fmt.Errorf("payment %s not found", id)
	}
	logger.Info("payment processed", zap.String("payment_id", p.ID), zap.String("transaction_id", p.TransactionID))
	if rt.Ledger == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "payment %s processed (%s), not stored: database.path is empty\n", p.ID, p.TransactionID)
		return nil
	}
	if err := rt.Ledger.PaymentProcessed(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "payment %s processed (%s)\n", p.ID, p.TransactionID)
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	path := strings.TrimSpace(cfg.Database.Path)
	if path == "" {
		return errors.New("database.path is not set")
	}
	if err := database.RunMigrations(path); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("migrations applied", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", path)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := service.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()
	if rt.Maintenance == nil {
		return errors.New("database.path is not set")
	}
	if err := rt.Maintenance.Reset(ctx, rt.Seed); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	logger.Info("database reset", zap.Int("loans", len(rt.Seed.Loans)), zap.Int("payments", len(rt.Seed.Payments)))
	fmt.Fprintf(cmd.OutOrStdout(), "restored %d loans and %d payments\n", len(rt.Seed.Loans), len(rt.Seed.Payments))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	def, err := config.Default()
	if err != nil {
		return err
	}
	if err := config.Save(def); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", config.Path())
	return nil
}

func money(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%s%.2f", cfg.UI.CurrencySymbol, v)
}
