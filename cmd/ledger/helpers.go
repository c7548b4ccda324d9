package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/ledger/internal/api"
	"github.com/Veraticus/ledger/internal/cli"
	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/config"
	"github.com/Veraticus/ledger/internal/ledger"
)

// newClient builds the API client described by cfg.
func newClient(cfg *config.Config) (*api.Client, error) {
	client, err := api.New(cfg.API.BaseURL, api.Options{
		Timeout:  cfg.API.Timeout,
		Location: cfg.Display.Location,
		Retry: common.RetryOptions{
			MaxAttempts: cfg.API.Retries,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// writeHeader styles each cell separately so the tab stops survive rendering.
func writeHeader(w io.Writer, cells ...string) {
	styled := make([]string, len(cells))
	for i, c := range cells {
		styled[i] = cli.TableHeaderStyle.Render(c)
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
}

// writeTotals prints the per-currency section below a transaction listing.
func writeTotals(w io.Writer, totals ledger.Totals) {
	if totals.IsEmpty() {
		fmt.Fprintln(w, cli.SubtleStyle.Render("No transactions"))
		return
	}

	fmt.Fprintln(w, cli.TableHeaderStyle.Render("Total for Selected Period"))
	writeCurrencyLine(w, "Expenses", totals.ExpenseCurrencies(), func(c string) string {
		return cli.ExpenseStyle.Render(ledger.FormatAmount(totals.Expenses[c]) + " " + c)
	})
	writeCurrencyLine(w, "Incomes", totals.IncomeCurrencies(), func(c string) string {
		return cli.IncomeStyle.Render(ledger.FormatAmount(totals.Incomes[c]) + " " + c)
	})
}

func writeCurrencyLine(w io.Writer, label string, currencies []string, render func(string) string) {
	if len(currencies) == 0 {
		fmt.Fprintf(w, "  %-9s %s\n", label+":", cli.SubtleStyle.Render("-"))
		return
	}
	parts := make([]string, 0, len(currencies))
	for _, c := range currencies {
		parts = append(parts, render(c))
	}
	fmt.Fprintf(w, "  %-9s %s\n", label+":", strings.Join(parts, ", "))
}
