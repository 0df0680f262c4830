package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/budget-dev/budget/internal/config"
	"github.com/budget-dev/budget/internal/store"
)

func newCategoriesCommand(dbFile *string) *cobra.Command {
	var categoryName string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories, or show one category's transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.DefaultFile)
			if err != nil {
				return err
			}

			path := *dbFile
			if path == "" {
				path = cfg.DBFile
			}
			if !fileExists(path) {
				fmt.Fprintf(cmd.OutOrStdout(), "No such file: %s\n(Do you need to create it with --new-db?)\n", path)
				return errors.New("database file not found")
			}

			st, err := store.Open(path)
			if err != nil {
				return err
			}
			defer st.Close()

			if categoryName == "" {
				return printCategories(cmd.OutOrStdout(), st)
			}
			return printCategoryTransactions(cmd.OutOrStdout(), st, categoryName)
		},
	}

	cmd.Flags().StringVar(&categoryName, "category", "", "show transactions for this category")

	return cmd
}

func printCategories(w io.Writer, st *store.Store) error {
	names, err := st.ListCategories()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func printCategoryTransactions(w io.Writer, st *store.Store, name string) error {
	entries, err := st.TransactionsByCategory(name)
	if err != nil {
		return err
	}

	for _, e := range entries {
		mark := " "
		if e.Cleared {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s %10s  %s\n", e.Date.Format("2006-01-02"), mark, e.Amount.StringFixed(2), e.Notes)
	}
	return nil
}
