/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse an IRRDBU00 text unload",
	Long: `Parse an IRRDBU00 security-database unload into typed tables, with a
progress bar and a per-record-type summary.

Examples:
  zunload parse --input /data/unload.irrdbu00
  zunload parse --input /data/unload.irrdbu00 --save-cache --prefix lpar1-`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		save, _ := cmd.Flags().GetBool("save-cache")

		p, err := buildRACF(cmd)
		if err != nil {
			return err
		}
		if input != "" {
			if err := runWithBar(p, input); err != nil {
				return err
			}
		}
		if save {
			res, err := p.Result()
			if err != nil {
				return err
			}
			return saveCache(cmd, res.Tables())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("input", "i", "", "Path of the IRRDBU00 unload file")
	parseCmd.Flags().Bool("save-cache", false, "Save the parsed tables to the cache")
}
