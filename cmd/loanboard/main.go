package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/loanboard/internal/config"
	"github.com/jask/loanboard/internal/logging"
	"github.com/jask/loanboard/internal/service"
	"github.com/jask/loanboard/internal/session"
	"github.com/jask/loanboard/internal/tui"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "loanboard",
	Short: "Loan management dashboards for borrowers, lenders, admins and analysts",
	Long: `loanboard opens a terminal UI with one login per role and the matching
dashboard over the loan and payment records.

Run without arguments to start the interactive UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := os.Setenv("LOANBOARD_CONFIG", configPath); err != nil {
				return fmt.Errorf("set config path: %w", err)
			}
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(cfg.Log.Path, level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.config/loanboard/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	loansCmd.Flags().StringVarP(&loansQuery, "query", "q", "", "filter loans by id or purpose")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(loansCmd, payCmd, migrateCmd, resetCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := service.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := tui.Options{
		Log:            logger,
		CurrencySymbol: cfg.UI.CurrencySymbol,
		DateFormat:     cfg.UI.DateFormat,
	}
	if rt.Ledger != nil {
		opts.Journal = rt.Ledger
	}
	app := tui.New(ctx, session.NewController(rt.Store, logger), opts)
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
