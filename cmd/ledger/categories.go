package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/ledger/internal/api"
	"github.com/Veraticus/ledger/internal/category"
	"github.com/Veraticus/ledger/internal/cli"
	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/viewstate"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func categoriesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage expense and income categories",
		Long: `Manage the categories transactions are filed under. Categories nest at most
one level deep: a parent must itself be top level.`,
	}

	cmd.AddCommand(listCategoriesCmd(opts))
	cmd.AddCommand(addCategoryCmd(opts))
	cmd.AddCommand(updateCategoryCmd(opts))
	cmd.AddCommand(deleteCategoryCmd(opts))

	return cmd
}

// parseTypes maps the --type flag to the types to show. Empty means both.
func parseTypes(name string) ([]model.CategoryType, error) {
	if name == "" || name == "all" {
		return model.CategoryTypes, nil
	}
	typ, err := model.ParseCategoryType(name)
	if err != nil {
		return nil, common.NewUserError("--type must be expense or income", err)
	}
	return []model.CategoryType{typ}, nil
}

func listCategoriesCmd(opts *rootOptions) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the category hierarchy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, err := parseTypes(typeName)
			if err != nil {
				return err
			}
			client, err := newClient(opts.cfg)
			if err != nil {
				return err
			}
			snapshots, err := fetchCategories(cmd.Context(), client, types)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, typ := range types {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, cli.FormatTitle(typ.Label()+" categories"))
				writeCategoryTree(out, snapshots[i])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "all", "expense, income or all")

	return cmd
}

func fetchCategories(ctx context.Context, client *api.Client, types []model.CategoryType) ([][]model.Category, error) {
	snapshots := make([][]model.Category, len(types))
	g, gctx := errgroup.WithContext(ctx)
	for i, typ := range types {
		g.Go(func() error {
			categories, err := client.ListCategories(gctx, typ)
			if err != nil {
				return err
			}
			snapshots[i] = categories
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func writeCategoryTree(out io.Writer, categories []model.Category) {
	entries, err := category.Flatten(categories)
	if err != nil {
		fmt.Fprintln(out, cli.FormatError("Cannot show categories: "+err.Error()))
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No categories"))
		return
	}

	w := newTabWriter(out)
	writeHeader(w, "ID", "NAME")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\n", e.Category.ID, cli.StyleForType(e.Category.Type).Render(e.Label()))
	}
	_ = w.Flush()
}

func addCategoryCmd(opts *rootOptions) *cobra.Command {
	var (
		draft    viewstate.CategoryDraft
		typeName string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		Example: `  ledger categories add --name Food
  ledger categories add --name Groceries --parent 1
  ledger categories add --name Salary --type income`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			typ, err := model.ParseCategoryType(typeName)
			if err != nil {
				return common.NewUserError("--type must be expense or income", err)
			}
			draft.Type = typ

			in, err := draft.Validate()
			if err != nil {
				return err
			}

			client, err := newClient(opts.cfg)
			if err != nil {
				return err
			}
			saved, err := client.CreateCategory(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created %s category %q (#%d)",
				saved.Type.Label(), saved.Name, saved.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&draft.Name, "name", "n", "", "category name (required)")
	cmd.Flags().StringVarP(&typeName, "type", "t", "expense", "expense or income")
	cmd.Flags().Int64VarP(&draft.ParentID, "parent", "p", 0, "id of a top-level parent category")

	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func updateCategoryCmd(opts *rootOptions) *cobra.Command {
	var (
		name     string
		typeName string
		parentID int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename, retype or move a category",
		Long: `Update a category. Fields whose flag is not given keep their current value;
--parent 0 moves the category to the top level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("type") && !flags.Changed("parent") {
				return common.NewValidationError("nothing to update: pass --name, --type or --parent")
			}

			client, err := newClient(opts.cfg)
			if err != nil {
				return err
			}
			current, err := findCategory(cmd.Context(), client, id)
			if err != nil {
				return err
			}

			draft := viewstate.DraftFromCategory(current)
			if flags.Changed("name") {
				draft.Name = name
			}
			if flags.Changed("type") {
				typ, err := model.ParseCategoryType(typeName)
				if err != nil {
					return common.NewUserError("--type must be expense or income", err)
				}
				draft.Type = typ
			}
			if flags.Changed("parent") {
				draft.ParentID = parentID
			}

			in, err := draft.Validate()
			if err != nil {
				return err
			}
			saved, err := client.UpdateCategory(cmd.Context(), id, in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated category %q (#%d)", saved.Name, saved.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new category name")
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "new type (expense or income)")
	cmd.Flags().Int64VarP(&parentID, "parent", "p", 0, "new parent id, 0 for top level")

	return cmd
}

func findCategory(ctx context.Context, client *api.Client, id int64) (model.Category, error) {
	snapshots, err := fetchCategories(ctx, client, model.CategoryTypes)
	if err != nil {
		return model.Category{}, err
	}
	for _, snapshot := range snapshots {
		if c, ok := category.Find(snapshot, id); ok {
			return c, nil
		}
	}
	return model.Category{}, common.NewUserError(fmt.Sprintf("category %d not found", id), common.ErrNotFound)
}

func deleteCategoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ok, err := opts.confirmer(cmd).Confirm(cmd.Context(), fmt.Sprintf("Delete category %d?", id))
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
			err = client.DeleteCategory(cmd.Context(), id)
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("category %d not found", id), err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted category %d", id)))
			return nil
		},
	}
}
