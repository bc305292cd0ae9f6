package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mickamy/sqlcount"
)

// ErrExpectationsFailed is returned by check when at least one table failed its rules.
var ErrExpectationsFailed = errors.New("expectations not met")

type checkOptions struct {
	rules    string
	wildcard string
	strict   bool
	split    bool
}

// CheckResult is the JSON output of check.
type CheckResult struct {
	Passed   bool                `json:"passed"`
	Failures map[string][]string `json:"failures,omitempty"`
	Unknown  []string            `json:"unknown,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [sql-file]",
		Short: "Check SQL statements against a rule file",
		Long: `Classify the statements in sql-file (or stdin) and compare the per-table
counts against the rules file. Exits non-zero when any table fails.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runCheck(rootOpts, opts, path, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.rules, "rules", "r", "", "YAML rule file")
	cmd.Flags().StringVar(&opts.wildcard, "wildcard", sqlcount.DefaultWildcard, "rule key applied to every table")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "also check rules of tables that were never queried")
	cmd.Flags().BoolVar(&opts.split, "split", false, "split statements on ';' instead of newlines")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}

func runCheck(rootOpts *RootOptions, opts *checkOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(rootOpts, cmd.ErrOrStderr())

	rules, err := sqlcount.LoadRulesFile(opts.rules)
	if err != nil {
		return err
	}
	stmts, err := readStatements(path, cmd.InOrStdin(), opts.split)
	if err != nil {
		return err
	}
	logger.Debug("loaded input", slog.String("rules", opts.rules), slog.Int("statements", len(stmts)))

	l := sqlcount.NewLog()
	l.Append(stmts...)
	qs := l.Queries()
	v, err := sqlcount.Evaluate(l.Tally(), l.Unknown(), rules,
		sqlcount.WithWildcard(opts.wildcard), sqlcount.WithStrict(opts.strict))
	if err != nil {
		return err
	}
	logger.Debug("evaluated", slog.Bool("passed", v.Passed()), slog.Int("failing_tables", len(v.FailingTables())))

	w := cmd.OutOrStdout()
	if rootOpts.Format == "json" {
		res := CheckResult{Passed: v.Passed(), Unknown: v.Unknown, Failures: map[string][]string{}}
		for _, table := range v.FailingTables() {
			res.Failures[table] = v.Failures[table]
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else if report := sqlcount.FormatReport(v, qs); report != "" {
		_, _ = fmt.Fprint(w, report)
	} else {
		_, _ = fmt.Fprintln(w, "ok")
	}

	if !v.Passed() {
		return ErrExpectationsFailed
	}
	return nil
}
