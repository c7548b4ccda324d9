package main

import (
	"context"
	"errors"
	"os"

	"github.com/Veraticus/ledger/internal/tui"
	"github.com/Veraticus/ledger/internal/tui/themes"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("the dashboard needs an interactive terminal; use 'ledger expenses list' instead")

func uiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ui",
		Aliases: []string{"dashboard"},
		Short:   "Open the interactive dashboard",
		Long: `Open the full-screen dashboard: browse transactions by quick filter or custom
range, sort them, record new ones, and manage categories on the second screen.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd.Context(), opts)
		},
	}
}

func runUI(ctx context.Context, opts *rootOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	client, err := newClient(opts.cfg)
	if err != nil {
		return err
	}

	cfg := opts.cfg
	return tui.Run(ctx,
		tui.WithBackend(client),
		tui.WithTheme(themes.GetTheme(cfg.Display.Theme)),
		tui.WithLocation(cfg.Display.Location),
		tui.WithCurrency(cfg.Display.Currency),
		tui.WithRequestTimeout(cfg.API.Timeout),
	)
}
