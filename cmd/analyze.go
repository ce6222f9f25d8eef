package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AishaAlajmi/AutoDash/internal/analysis"
	"github.com/AishaAlajmi/AutoDash/internal/dashboard"
	"github.com/AishaAlajmi/AutoDash/internal/dataset"
	"github.com/AishaAlajmi/AutoDash/internal/render"
	"github.com/AishaAlajmi/AutoDash/internal/utils"
)

var (
	anaFormat      string
	anaOutputPath  string
	anaChartsDir   string
	anaChartFormat string
	anaNoAI        bool
	anaDelimiter   string
	anaMaxRows     int
	anaSheetName   string
	anaSheetIndex  int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Build a dashboard (metrics, charts, narrative) from a CSV/TSV/XLSX/JSON file",
	Example: `  autodash analyze sales.csv
  autodash analyze staff.xlsx --sheet-name Data --format json -o dashboard.json
  autodash analyze tickets.tsv --charts-dir charts --chart-format png --no-ai`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(anaFormat))
		if format != "markdown" && format != "md" && format != "json" {
			return fmt.Errorf("unsupported --format: %s (use markdown|json)", anaFormat)
		}
		chartFormat, err := render.ParseFormat(anaChartFormat)
		if err != nil {
			return err
		}
		tbl, err := loadTable(args[0])
		if err != nil {
			return err
		}

		svc := dashboard.NewService(newCollaborator(anaNoAI), log, analysisOptions())
		d := svc.Analyze(cmd.Context(), tbl)

		var out []byte
		if format == "json" {
			if out, err = utils.PrettyJSON(d); err != nil {
				return err
			}
		} else {
			out = []byte(dashboardMarkdown(d))
		}

		if anaChartsDir != "" {
			paths, err := render.WriteAll(anaChartsDir, d.Charts, chartFormat)
			if err != nil {
				return err
			}
			log.Info("charts written", zap.Int("count", len(paths)), zap.String("dir", anaChartsDir))
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d chart(s) to %s\n", len(paths), anaChartsDir)
		}
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote dashboard to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "markdown", "output format: markdown | json")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the dashboard")
	analyzeCmd.Flags().StringVar(&anaChartsDir, "charts-dir", "", "directory to write chart images into")
	analyzeCmd.Flags().StringVar(&anaChartFormat, "chart-format", "svg", "chart image format: svg | png")
	analyzeCmd.Flags().BoolVar(&anaNoAI, "no-ai", false, "skip the language model; use the deterministic narrative")
	addLoaderFlags(analyzeCmd)
}

// addLoaderFlags registers the dataset reading flags shared by analyze and ask.
func addLoaderFlags(c *cobra.Command) {
	c.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|'")
	c.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum rows to read (0 = all rows)")
	c.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	c.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

func loadTable(path string) (*dataset.Table, error) {
	opt := dataset.Options{MaxRows: anaMaxRows, SheetName: anaSheetName, SheetIndex: anaSheetIndex}
	switch anaDelimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	case "|":
		opt.Delimiter = '|'
	default:
		return nil, fmt.Errorf("unsupported --delimiter: %s", anaDelimiter)
	}
	tbl, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	log.Debug("dataset loaded", zap.String("name", tbl.Name), zap.Int("rows", tbl.Len()), zap.Int("columns", len(tbl.Columns)))
	return tbl, nil
}

func analysisOptions() analysis.Options {
	opt := analysis.DefaultOptions()
	if cfg != nil && cfg.TopCategories > 0 {
		opt.TopCap = cfg.TopCategories
	}
	return opt
}

func dashboardMarkdown(d *dashboard.Dashboard) string {
	var b strings.Builder
	title := d.Source
	if title == "" {
		title = "Dataset"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%s\n\n", d.AnalysisText)
	b.WriteString(d.Stats.Markdown())
	return b.String()
}
