package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/ledger/internal/cli"
	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// rootOptions is the state shared by every subcommand.
type rootOptions struct {
	viper   *viper.Viper
	cfg     *config.Config
	logFile io.Closer
	now     func() time.Time
	// isTerminal overrides stdin detection for confirmations.
	isTerminal func() bool
	cfgFile    string
	assumeYes  bool
}

func newRootCmd() *cobra.Command {
	return newRootCommand(&rootOptions{viper: viper.New(), now: time.Now})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledger",
		Short: "💰 Personal expense and income ledger",
		Long: `ledger: record expenses and incomes against a ledger server, browse them by
date range and category, and see per-currency totals.

Run without a subcommand to open the interactive dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.initConfig()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd.Context(), opts)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: "+config.DefaultConfigPath()+")")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.String("api-url", config.DefaultBaseURL, "base URL of the ledger API")
	flags.String("timezone", "", "IANA zone dates are shown in (default: system zone)")
	flags.BoolVarP(&opts.assumeYes, "yes", "y", false, "answer yes to every confirmation")

	// Bind flags to viper
	_ = opts.viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = opts.viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = opts.viper.BindPFlag("logging.file", flags.Lookup("log-file"))
	_ = opts.viper.BindPFlag("api.base_url", flags.Lookup("api-url"))
	_ = opts.viper.BindPFlag("display.timezone", flags.Lookup("timezone"))

	// Add commands
	rootCmd.AddCommand(uiCmd(opts))
	rootCmd.AddCommand(expensesCmd(opts))
	rootCmd.AddCommand(categoriesCmd(opts))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, stop := interrupts.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		slog.Debug("command failed", "error", err)
		os.Exit(1)
	}
}

func (o *rootOptions) initConfig() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if err := config.Init(o.viper, o.cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(o.viper)
	if err != nil {
		return err
	}
	o.cfg = cfg

	// Set up logging
	if err := o.setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	slog.Debug("configuration loaded", "config_file", o.viper.ConfigFileUsed(), "api", cfg.API.BaseURL)
	return nil
}

func (o *rootOptions) setupLogging() error {
	level, err := common.ParseLevel(o.cfg.Logging.Level)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if o.cfg.Logging.File != "" {
		f, err := os.OpenFile(o.cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		o.logFile = f
		w = f
	}

	return common.SetupLogger(w, level, o.cfg.Logging.Format)
}

func (o *rootOptions) close() error {
	if o.logFile == nil {
		return nil
	}
	err := o.logFile.Close()
	o.logFile = nil
	return err
}

func (o *rootOptions) confirmer(cmd *cobra.Command) *cli.Confirmer {
	confirmOpts := []cli.ConfirmOption{cli.WithAssumeYes(o.assumeYes)}
	if o.isTerminal != nil {
		confirmOpts = append(confirmOpts, cli.WithTerminalCheck(o.isTerminal))
	}
	return cli.NewConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr(), confirmOpts...)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ledger version %s\n", version)
		},
	}
}
