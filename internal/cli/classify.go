package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mickamy/sqlcount"
)

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	var split bool
	cmd := &cobra.Command{
		Use:           "classify [sql-file]",
		Short:         "Print the operation and table of each statement",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			stmts, err := readStatements(path, cmd.InOrStdin(), split)
			if err != nil {
				return err
			}
			newLogger(rootOpts, cmd.ErrOrStderr()).Debug("classifying", "statements", len(stmts))

			w := cmd.OutOrStdout()
			for _, s := range stmts {
				q := sqlcount.Classify(s)
				if rootOpts.Format == "json" {
					b, err := json.Marshal(map[string]string{"op": string(q.Op), "table": q.Table, "sql": q.SQL})
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintln(w, string(b))
					continue
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", q.Op, q.Table, q.SQL)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&split, "split", false, "split statements on ';' instead of newlines")
	return cmd
}
