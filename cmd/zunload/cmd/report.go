/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mfdata/zunload/pkg/report"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export access matrices from a parsed unload",
	Long: `Export the per-class access matrices: an xlsx workbook with one sheet
per resource class plus a DATASET sheet, a row per profile and a column
per authorization ID, with color-coded single-letter access levels.
With --csv the matrices are additionally written as one CSV per class.

Examples:
  zunload report --input /data/unload.irrdbu00 --out ./matrices
  zunload report --prefix lpar1- --out ./matrices --csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		out, _ := cmd.Flags().GetString("out")
		withCSV, _ := cmd.Flags().GetBool("csv")

		p, err := buildRACF(cmd)
		if err != nil {
			return err
		}
		if input != "" {
			if err := runWithBar(p, input); err != nil {
				return err
			}
		}

		workbook := filepath.Join(out, "access.xlsx")
		if err := os.MkdirAll(out, 0o755); err != nil {
			return err
		}
		if err := report.AccessWorkbook(p, workbook); err != nil {
			return err
		}
		fmt.Printf("%s - access workbook written to %s\n", stamp(), workbook)

		if withCSV {
			if err := report.AccessMatrix(p, out); err != nil {
				return err
			}
			fmt.Printf("%s - access matrices written to %s\n", stamp(), out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("input", "i", "", "Path of the IRRDBU00 unload file")
	reportCmd.Flags().StringP("out", "o", "./matrices", "Output directory for the report files")
	reportCmd.Flags().Bool("csv", false, "Also write the matrices as CSV files")
}
