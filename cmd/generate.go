package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/groupr-cli/internal/grouping"
	"github.com/KaramelBytes/groupr-cli/internal/parser"
	"github.com/KaramelBytes/groupr-cli/internal/render"
	"github.com/KaramelBytes/groupr-cli/internal/table"
	"github.com/KaramelBytes/groupr-cli/internal/utils"
	"github.com/spf13/cobra"
)

// maxWarnings caps how many table diagnostics are printed per run.
const maxWarnings = 5

var (
	genGroups     int
	genSeed       uint64
	genFormat     string
	genOutputPath string
	genHide       []string
	genShow       []string
	genStrict     bool
	genSheet      string
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Split the rows of a table into random, size-balanced groups",
	Example: `  groupr generate roster.csv -n 4
  groupr generate roster.csv -n 3 --seed 42 --format json
  groupr generate roster.xlsx --sheet Students -n 5 -o groups.xlsx
  groupr generate roster.csv -n 2 --show notes --hide age`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := currentConfig()
		f := cmd.Flags()

		groups := c.Groups
		if f.Changed("groups") {
			groups = genGroups
		}
		if groups <= 0 {
			return fmt.Errorf("%w: --groups must be a positive integer, got %d", grouping.ErrInvalidConfiguration, groups)
		}

		var src *grouping.UniformSource
		switch {
		case f.Changed("seed"):
			src = grouping.NewUniformSource(genSeed)
		case c.Seed != 0:
			src = grouping.NewUniformSource(c.Seed)
		default:
			src = grouping.NewRandomSource()
		}

		format, err := resolveFormat(f.Changed("format"), genFormat, c.Format, genOutputPath)
		if err != nil {
			return err
		}
		if format == render.XLSX && genOutputPath == "" {
			return errors.New("xlsx output requires --output")
		}

		hidden := c.HiddenColumns
		if f.Changed("hide") {
			hidden = genHide
		}
		view := render.NewView(hidden, genShow)

		tbl, err := parser.ParseFile(path, parser.Options{Strict: genStrict || c.Strict, Sheet: genSheet})
		if err != nil {
			return err
		}
		logger.Debug("parsed table", "file", path, "columns", len(tbl.Columns), "rows", len(tbl.Rows))
		printDiagnostics(cmd.ErrOrStderr(), tbl.Diagnostics())

		a, err := grouping.AssignTable(tbl, groups, src)
		if err != nil {
			return err
		}
		run := render.NewRun(filepath.Base(path), src.Seed(), tbl, a, view)
		logger.Debug("assigned groups", "run_id", run.ID, "seed", src.Seed(), "balance", a.Balance().String())

		var buf bytes.Buffer
		if err := render.Write(&buf, format, run); err != nil {
			return err
		}
		if genOutputPath == "" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		out, err := utils.ExpandHome(genOutputPath)
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d groups (%d rows, seed %d) to %s\n", groups, a.Len(), src.Seed(), out)
		return nil
	},
}

// resolveFormat prefers an explicit --format, then the output extension, then config.
func resolveFormat(explicit bool, flagVal, cfgVal, output string) (render.Format, error) {
	if explicit {
		return render.ParseFormat(flagVal)
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".json":
		return render.JSON, nil
	case ".csv":
		return render.CSV, nil
	case ".xlsx":
		return render.XLSX, nil
	case ".md":
		return render.Markdown, nil
	}
	return render.ParseFormat(cfgVal)
}

func printDiagnostics(w io.Writer, diags []table.Diagnostic) {
	for i, d := range diags {
		if i == maxWarnings {
			fmt.Fprintf(w, "⚠ Warning: ... and %d more\n", len(diags)-maxWarnings)
			break
		}
		fmt.Fprintf(w, "⚠ Warning: %s\n", d)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVarP(&genGroups, "groups", "n", 2, "number of groups (overrides config)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "random seed for a reproducible assignment (overrides config)")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "markdown", "output format: markdown|json|csv|xlsx")
	generateCmd.Flags().StringVarP(&genOutputPath, "output", "o", "", "write output to a file instead of stdout")
	generateCmd.Flags().StringSliceVar(&genHide, "hide", nil, "columns to hide, by field key or header (overrides config)")
	generateCmd.Flags().StringSliceVar(&genShow, "show", nil, "columns to show even if hidden by config")
	generateCmd.Flags().BoolVar(&genStrict, "strict", false, "reject input that ends inside a quoted field")
	generateCmd.Flags().StringVar(&genSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
}
