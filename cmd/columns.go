package cmd

import (
	"fmt"

	"github.com/KaramelBytes/groupr-cli/internal/parser"
	"github.com/KaramelBytes/groupr-cli/internal/render"
	"github.com/KaramelBytes/groupr-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	colJSON   bool
	colSheet  string
	colStrict bool
)

type columnsReport struct {
	File     string   `json:"file"`
	Rows     int      `json:"rows"`
	Columns  []column `json:"columns"`
	Warnings []string `json:"warnings,omitempty"`
}

type column struct {
	DisplayName string `json:"display_name"`
	FieldKey    string `json:"field_key"`
	Hidden      bool   `json:"hidden"`
}

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List a table's columns and the field keys derived from them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := currentConfig()
		tbl, err := parser.ParseFile(path, parser.Options{Strict: colStrict || c.Strict, Sheet: colSheet})
		if err != nil {
			return err
		}
		view := render.NewView(c.HiddenColumns, nil)
		rep := columnsReport{File: path, Rows: len(tbl.Rows)}
		for _, col := range tbl.Columns {
			rep.Columns = append(rep.Columns, column{
				DisplayName: col.DisplayName,
				FieldKey:    col.FieldKey,
				Hidden:      !view.Visible(col),
			})
		}
		for _, d := range tbl.Diagnostics() {
			rep.Warnings = append(rep.Warnings, d.String())
		}

		out := cmd.OutOrStdout()
		if colJSON {
			b, err := utils.PrettyJSON(rep)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		if len(rep.Columns) == 0 {
			fmt.Fprintln(out, "(no columns)")
			return nil
		}
		fmt.Fprintf(out, "%s: %d columns, %d rows\n", path, len(rep.Columns), rep.Rows)
		for _, col := range rep.Columns {
			suffix := ""
			if col.Hidden {
				suffix = " (hidden)"
			}
			fmt.Fprintf(out, "- %s -> %s%s\n", col.DisplayName, col.FieldKey, suffix)
		}
		printDiagnostics(cmd.ErrOrStderr(), tbl.Diagnostics())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.Flags().BoolVar(&colJSON, "json", false, "print as JSON")
	columnsCmd.Flags().StringVar(&colSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	columnsCmd.Flags().BoolVar(&colStrict, "strict", false, "reject input that ends inside a quoted field")
}
