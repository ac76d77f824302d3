package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"sheetpivot/adapters/excel"
	"sheetpivot/adapters/memory"
	"sheetpivot/app"
	"sheetpivot/domain/table"
	"sheetpivot/internal"
	"sheetpivot/internal/profiling"
	"sheetpivot/internal/render"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sheetOptions are the flags shared by every command that reads a sheet
type sheetOptions struct {
	sheet     string
	headerRow int
	gaps      string
	format    string
}

func (o *sheetOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.sheet, "sheet", os.Getenv("SHEET_NAME"), "Sheet to read (default: the active sheet)")
	cmd.Flags().IntVar(&o.headerRow, "header-row", 0, "0-based index of the header row")
	cmd.Flags().StringVar(&o.gaps, "gap", "pad", "Gap policy for ragged rows: pad or skip")
	cmd.Flags().StringVar(&o.format, "format", "text", "Output format: text, markdown or json")
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sheetpivot",
		Short:         "Pivot spreadsheet sheets into header-keyed columns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newPivotCmd(),
		newFilterCmd(),
		newDescribeCmd(),
		newSheetsCmd(),
	)
	return rootCmd
}

func newPivotCmd() *cobra.Command {
	var opts sheetOptions
	var allSheets bool
	var workers int

	cmd := &cobra.Command{
		Use:   "pivot FILE",
		Short: "Print the columns of a sheet keyed by header",
		Long: `Read one sheet and print each header with its column of cells.
With --all-sheets every sheet of the workbook is pivoted, several at a time.

Example: sheetpivot pivot orders.xlsx --sheet Orders --header-row 1 --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if allSheets {
				return pivotAllSheets(cmd, args[0], opts, workers)
			}
			t, err := loadTable(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), t, opts.format)
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&allSheets, "all-sheets", false, "Pivot every sheet of the workbook")
	cmd.Flags().IntVar(&workers, "workers", 4, "Sheets read at once with --all-sheets")
	cmd.MarkFlagsMutuallyExclusive("all-sheets", "sheet")
	return cmd
}

func pivotAllSheets(cmd *cobra.Command, path string, opts sheetOptions, workers int) error {
	svc := app.NewTableService(excel.NewDataReader(excel.DefaultExcelConfig()), memory.NewTableRepository(),
		app.WithWorkers(workers),
	)
	snapshots, err := svc.PivotSheets(cmd.Context(), app.PivotRequest{
		Path:      path,
		HeaderRow: opts.headerRow,
		GapPolicy: opts.gaps,
	}, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if strings.ToLower(opts.format) == "json" {
		sheets := make(map[string]map[string][]any, len(snapshots))
		for _, s := range snapshots {
			sheets[s.Sheet] = columnValues(s.Table)
		}
		return writeJSON(out, sheets)
	}
	for i, s := range snapshots {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "## %s\n\n", s.Sheet)
		if err := writeTable(out, s.Table, opts.format); err != nil {
			return err
		}
	}
	return nil
}

func newFilterCmd() *cobra.Command {
	var opts sheetOptions
	var column, keyword string

	cmd := &cobra.Command{
		Use:   "filter FILE",
		Short: "Keep the rows whose column equals a keyword, ignoring case",
		Long: `Pivot a sheet, then keep only the rows where --column holds text equal to
--keyword, ignoring case. Only text cells can match.

Example: sheetpivot filter people.csv --column Name --keyword ann`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			filtered, err := table.Filter(t, column, keyword)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), filtered, opts.format)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&column, "column", "", "Header of the column to match")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Text to match")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newDescribeCmd() *cobra.Command {
	var opts sheetOptions

	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Profile every column of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			profiles := profiling.Describe(t)
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), profiles)
			}
			out := cmd.OutOrStdout()
			for _, p := range profiles {
				fmt.Fprintf(out, "%s: %d cells, %d blank, %d distinct, %s", p.Header, p.Count, p.Blank, p.Distinct, p.DominantType)
				if !p.Homogeneous {
					fmt.Fprint(out, " (mixed)")
				}
				if n := p.Numeric; n != nil {
					fmt.Fprintf(out, ", mean %s, median %s, min %s, max %s",
						render.FormatValue(n.Mean), render.FormatValue(n.Median), render.FormatValue(n.Min), render.FormatValue(n.Max))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	opts.bind(cmd)
	return cmd
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets FILE",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := excel.NewDataReader(excel.DefaultExcelConfig())
			names, err := reader.SheetNames(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func loadTable(ctx context.Context, path string, opts sheetOptions) (table.Table, error) {
	gaps, err := table.ParseGapPolicy(opts.gaps)
	if err != nil {
		return nil, err
	}

	reader := excel.NewDataReader(excel.DefaultExcelConfig())
	opened, err := reader.OpenSheet(ctx, path, opts.sheet)
	if err != nil {
		return nil, err
	}

	log := internal.DefaultLogger.Named("pivot")
	return table.Build(opened.Grid, opts.headerRow,
		table.WithGapPolicy(gaps),
		table.WithDuplicateHook(func(header string, dropped, kept int) {
			log.Warn("duplicate header %q: column %d replaced by column %d", header, dropped, kept)
		}),
	)
}

func writeTable(out io.Writer, t table.Table, format string) error {
	switch strings.ToLower(format) {
	case "text", "":
		for _, header := range t.Headers() {
			fmt.Fprintf(out, "%s: %s\n", header, t[header])
		}
		return nil
	case "markdown", "md":
		_, err := io.WriteString(out, render.Markdown(t))
		return err
	case "json":
		return writeJSON(out, columnValues(t))
	default:
		return fmt.Errorf("unknown format %q (want text, markdown or json)", format)
	}
}

func columnValues(t table.Table) map[string][]any {
	columns := make(map[string][]any, len(t))
	for header, col := range t {
		columns[header] = col.Values()
	}
	return columns
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
