package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/ledger/internal/api"
	"github.com/Veraticus/ledger/internal/category"
	"github.com/Veraticus/ledger/internal/cli"
	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/viewstate"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const listDateLayout = "2006-01-02 15:04"

func expensesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense", "tx"},
		Short:   "List, record and delete transactions",
		Long:    `Work with expenses and incomes without opening the dashboard.`,
	}

	cmd.AddCommand(listExpensesCmd(opts))
	cmd.AddCommand(addExpenseCmd(opts))
	cmd.AddCommand(deleteExpenseCmd(opts))

	return cmd
}

func listExpensesCmd(opts *rootOptions) *cobra.Command {
	var (
		filter    string
		from      string
		to        string
		sortKey   string
		direction string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions for a date range",
		Long: `List the transactions of a quick filter or an explicit range, followed by
per-currency totals.

Quick filters: today, yesterday, thisWeek, lastWeek, thisMonth, last30Days.`,
		Example: `  ledger expenses list
  ledger expenses list --filter thisMonth --sort sum --dir asc
  ledger expenses list --from 2024-06-01 --to 2024-06-13`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := parseSort(sortKey, direction)
			if err != nil {
				return err
			}

			var r ledger.DateRange
			if !all {
				r, err = resolveRange(opts, filter, from, to)
				if err != nil {
					return err
				}
			}

			client, err := newClient(opts.cfg)
			if err != nil {
				return err
			}

			transactions, categories, err := fetchListing(cmd.Context(), client, r, all)
			if err != nil {
				return err
			}
			if !all {
				transactions = ledger.FilterByDateRange(transactions, r, client.Location())
			}
			transactions = ledger.SortBy(transactions, s)

			out := cmd.OutOrStdout()
			if all {
				fmt.Fprintln(out, cli.FormatTitle("All transactions"))
			} else {
				fmt.Fprintln(out, cli.FormatTitle(r.String()))
			}
			writeTransactions(out, transactions, categories, client.Location())
			fmt.Fprintln(out)
			writeTotals(out, ledger.TotalsByCurrency(transactions))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(ledger.QuickToday), "quick filter preset")
	cmd.Flags().StringVar(&from, "from", "", "first date of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date of the range (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", string(ledger.SortMoment), "sort column (moment, sum, description, currency)")
	cmd.Flags().StringVar(&direction, "dir", string(ledger.Descending), "sort direction (asc, desc)")
	cmd.Flags().BoolVar(&all, "all", false, "list every transaction regardless of date")

	cmd.MarkFlagsMutuallyExclusive("filter", "from")
	cmd.MarkFlagsMutuallyExclusive("filter", "to")
	cmd.MarkFlagsMutuallyExclusive("all", "filter")
	cmd.MarkFlagsMutuallyExclusive("all", "from")
	cmd.MarkFlagsMutuallyExclusive("all", "to")

	return cmd
}

func parseSort(key, direction string) (ledger.Sort, error) {
	k, err := ledger.ParseSortKey(key)
	if err != nil {
		return ledger.Sort{}, common.NewUserError(err.Error(), err)
	}
	d, err := ledger.ParseDirection(direction)
	if err != nil {
		return ledger.Sort{}, common.NewUserError(err.Error(), err)
	}
	return ledger.Sort{Key: k, Direction: d}, nil
}

// resolveRange turns the list flags into a range. Explicit bounds win over
// the quick filter; a single bound selects that day.
func resolveRange(opts *rootOptions, filter, from, to string) (ledger.DateRange, error) {
	if from == "" && to == "" {
		today := ledger.Today(opts.now(), opts.cfg.Display.Location)
		r, err := ledger.ResolveQuickFilter(ledger.QuickFilter(filter), today)
		if err != nil {
			return ledger.DateRange{}, common.NewUserError(err.Error(), err)
		}
		return r, nil
	}

	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	start, err := ledger.ParseDate(from)
	if err != nil {
		return ledger.DateRange{}, common.NewUserError("--from must look like 2024-06-13", err)
	}
	end, err := ledger.ParseDate(to)
	if err != nil {
		return ledger.DateRange{}, common.NewUserError("--to must look like 2024-06-13", err)
	}
	return ledger.DateRange{Start: start, End: end}, nil
}

// fetchListing loads the transactions together with both category snapshots.
// Categories only decorate the output, so failing to load them is a warning.
func fetchListing(ctx context.Context, client *api.Client, r ledger.DateRange, all bool) ([]model.Transaction, []model.Category, error) {
	var transactions []model.Transaction
	snapshots := make([][]model.Category, len(model.CategoryTypes))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if all {
			transactions, err = client.ListAllTransactions(gctx)
		} else {
			transactions, err = client.ListTransactions(gctx, r)
		}
		return err
	})
	for i, typ := range model.CategoryTypes {
		g.Go(func() error {
			categories, err := client.ListCategories(gctx, typ)
			if err != nil {
				common.LogWarn("category names unavailable", common.Fields{"type": string(typ), "error": err.Error()})
				return nil
			}
			snapshots[i] = categories
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var categories []model.Category
	for _, s := range snapshots {
		categories = append(categories, s...)
	}
	return transactions, categories, nil
}

func writeTransactions(out io.Writer, transactions []model.Transaction, categories []model.Category, loc *time.Location) {
	if len(transactions) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No transactions for this period"))
		return
	}

	w := newTabWriter(out)
	writeHeader(w, "ID", "DATE", "DESCRIPTION", "CATEGORY", "AMOUNT", "CURRENCY")
	for _, txn := range transactions {
		description := txn.Description
		if strings.TrimSpace(description) == "" {
			description = "-"
		}
		categoryName := "-"
		if txn.Category != nil {
			categoryName = category.Path(*txn.Category, categories)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			txn.ID,
			txn.Moment.In(loc).Format(listDateLayout),
			description,
			categoryName,
			cli.FormatSigned(txn),
			txn.Currency,
		)
	}
	_ = w.Flush()
}

func addExpenseCmd(opts *rootOptions) *cobra.Command {
	var (
		draft      viewstate.ExpenseDraft
		typeName   string
		categoryID int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense or income",
		Example: `  ledger expenses add --sum 12.50 --category 2 --description "Lunch"
  ledger expenses add --type income --sum 2500 --currency USD --category 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			typ, err := model.ParseCategoryType(typeName)
			if err != nil {
				return common.NewUserError("--type must be expense or income", err)
			}
			draft.Type = typ
			draft.CategoryID = categoryID
			if draft.Currency == "" {
				draft.Currency = opts.cfg.Display.Currency
			}
			if draft.Moment == "" {
				draft.Moment = opts.now().In(opts.cfg.Display.Location).Format(viewstate.MomentLayout)
			}

			in, err := draft.Validate(opts.cfg.Display.Location)
			if err != nil {
				return err
			}

			client, err := newClient(opts.cfg)
			if err != nil {
				return err
			}
			txn, err := client.CreateTransaction(cmd.Context(), in)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("Recorded %s %s %s",
				strings.ToLower(txn.Type.Label()),
				ledger.FormatAmount(txn.Sum),
				txn.Currency)
			if txn.ID > 0 {
				msg += fmt.Sprintf(" (#%d)", txn.ID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Sum, "sum", "", "amount, e.g. 12.50 (required)")
	cmd.Flags().StringVar(&draft.Currency, "currency", "", "currency label (default: display.currency)")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "category id (required)")
	cmd.Flags().StringVarP(&typeName, "type", "t", "expense", "expense or income")
	cmd.Flags().StringVar(&draft.Moment, "moment", "", "date and time as 2024-06-13T14:30 (default: now)")
	cmd.Flags().StringVarP(&draft.Description, "description", "d", "", "free-form note")

	_ = cmd.MarkFlagRequired("sum")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func deleteExpenseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ok, err := opts.confirmer(cmd).Confirm(cmd.Context(), fmt.Sprintf("Delete transaction %d?", id))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Canceled"))
				return nil
			}

			client, err := newClient(opts.cfg)
			if err != nil {
				return err
			}
			if err := client.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError(fmt.Sprintf("invalid id %q", arg))
	}
	return id, nil
}
