package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AishaAlajmi/AutoDash/internal/dashboard"
)

var askNoAI bool

var askCmd = &cobra.Command{
	Use:   "ask <file> <question>",
	Short: "Answer a question about a dataset from its full-data aggregates",
	Example: `  autodash ask sales.csv "what is the total revenue?"
  autodash ask sales.csv "top region" --no-ai`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args[1:], " "))
		if question == "" {
			return fmt.Errorf("question cannot be empty")
		}
		tbl, err := loadTable(args[0])
		if err != nil {
			return err
		}
		svc := dashboard.NewService(newCollaborator(askNoAI), log, analysisOptions())
		stats := svc.Stats(tbl)
		fmt.Fprintln(cmd.OutOrStdout(), svc.Ask(cmd.Context(), question, stats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askNoAI, "no-ai", false, "answer locally from aggregates only")
	addLoaderFlags(askCmd)
}
