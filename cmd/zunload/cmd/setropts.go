/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// setroptsCmd represents the setropts command
var setroptsCmd = &cobra.Command{
	Use:   "setropts",
	Short: "Parse an IRRXUTIL SETROPTS extract",
	Long: `Parse the key/value output of an IRRXUTIL _SETROPTS extract into the
options and class tables, with a progress bar and a summary.

Examples:
  zunload setropts --input /data/setropts.txt
  zunload setropts --input /data/setropts.txt --save-cache --prefix lpar1-
  zunload setropts --setting INTERVAL`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		save, _ := cmd.Flags().GetBool("save-cache")
		setting, _ := cmd.Flags().GetString("setting")

		p, err := buildSETROPTS(cmd)
		if err != nil {
			return err
		}
		if input != "" {
			if err := runWithBar(p, input); err != nil {
				return err
			}
		}
		res, err := p.Result()
		if err != nil {
			return err
		}
		if setting != "" {
			opts := res.Table("FINFO")
			for _, row := range opts.Rows {
				if row.Str("Setting") != setting {
					continue
				}
				fmt.Printf("%s = %s\n", setting, row.Get("Value").Format())
				fmt.Printf("  %s\n", row.Str("Meaning"))
				return nil
			}
			return fmt.Errorf("unknown setting %q", setting)
		}
		if save {
			return saveCache(cmd, res.Tables())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setroptsCmd)
	setroptsCmd.Flags().StringP("input", "i", "", "Path of the SETROPTS extract file")
	setroptsCmd.Flags().Bool("save-cache", false, "Save the parsed tables to the cache")
	setroptsCmd.Flags().String("setting", "", "Print one setting with its meaning")
}
