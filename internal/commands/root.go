// Package commands wires the budget CLI: import a CSV, initialise a
// database, report balances.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/budget-dev/budget/internal/auditlog"
	"github.com/budget-dev/budget/internal/buildinfo"
	"github.com/budget-dev/budget/internal/config"
	"github.com/budget-dev/budget/internal/importer"
	"github.com/budget-dev/budget/internal/store"
)

type rootOptions struct {
	dbFile     string
	importPath string
	newDB      bool
	uncleared  bool
}

// NewRootCommand creates the budget CLI with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var (
		opts  rootOptions
		debug bool
	)

	cmd := &cobra.Command{
		Use:     "budget",
		Short:   "Personal finance ledger backed by SQLite",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.DefaultFile)
			if err != nil {
				return err
			}
			if opts.dbFile == "" {
				opts.dbFile = cfg.DBFile
			}
			return runBudget(cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dbFile, "db-file", "", `database file to use (default "budget.db")`)
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&opts.importPath, "import", "", "import a CSV file before reporting")
	cmd.Flags().BoolVar(&opts.newDB, "new-db", false, "initialise a new database")
	cmd.Flags().BoolVar(&opts.uncleared, "uncleared", false, "include uncleared transactions in account balances")

	cmd.AddCommand(newCategoriesCommand(&opts.dbFile))

	return cmd
}

func runBudget(out io.Writer, cfg *config.Config, opts rootOptions) error {
	exists := fileExists(opts.dbFile)

	if !exists && !opts.newDB {
		fmt.Fprintf(out, "No such file: %s\n(Do you need to create it with --new-db?)\n", opts.dbFile)
		return errors.New("database file not found")
	}

	if opts.newDB {
		if exists {
			fmt.Fprintf(out, "Budget file %q already exists. Exiting.\n", opts.dbFile)
			return nil
		}
		st, err := store.Open(opts.dbFile)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Init(); err != nil {
			return err
		}
		fmt.Fprintf(out, "New budget database created: %s\n", opts.dbFile)
		return nil
	}

	st, err := store.Open(opts.dbFile)
	if err != nil {
		return err
	}
	defer st.Close()

	if opts.importPath != "" {
		slog.Debug("importing", "file", opts.importPath)
		res, err := importer.ImportFile(opts.importPath, st)
		logAudit(cfg.AuditLog, opts.importPath, res, err)
		if err != nil {
			return err
		}
		slog.Debug("import complete", "rows", res.Rows, "accounts_created", res.AccountsCreated)
	}

	return printBalances(out, st, cfg.CurrencySymbol, !opts.uncleared)
}

// printBalances writes one "Name: SymbolBalance" line per account,
// name-ascending. Accounts without a symbol use the configured fallback.
func printBalances(w io.Writer, st *store.Store, fallbackSymbol string, onlyCleared bool) error {
	accounts, err := st.ListAccounts()
	if err != nil {
		return err
	}

	for _, a := range accounts {
		symbol := fallbackSymbol
		if s, ok, err := st.AccountCurrencySymbol(a.ID); err != nil {
			return err
		} else if ok {
			symbol = s
		}

		balance, err := st.Balance(a.ID, onlyCleared)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s%s\n", a.Name, symbol, balance.StringFixed(2))
	}
	return nil
}

// logAudit records an import attempt. Best-effort: a failed write is logged
// and otherwise ignored.
func logAudit(path, file string, res importer.Result, importErr error) {
	if path == "" {
		return
	}
	status := auditlog.StatusOK
	if importErr != nil {
		status = auditlog.StatusFailed
	}
	err := auditlog.Append(path, auditlog.Entry{
		Timestamp:       time.Now(),
		File:            file,
		Rows:            res.Rows,
		AccountsCreated: res.AccountsCreated,
		Status:          status,
	})
	if err != nil {
		slog.Warn("writing audit log", "error", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
