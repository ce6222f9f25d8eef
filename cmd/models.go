package cmd

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/AishaAlajmi/AutoDash/internal/ai"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models, their providers and context windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := table.NewWriter()
		tw.AppendHeader(table.Row{"Provider", "Model", "Context", "Default"})
		for _, m := range ai.Catalog() {
			def := ""
			if ai.DefaultModel(m.Provider) == m.Name {
				def = "✓"
			}
			tw.AppendRow(table.Row{m.Provider, m.Name, strconv.Itoa(m.ContextTokens), def})
		}
		fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
