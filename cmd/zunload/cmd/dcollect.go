/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfdata/zunload/pkg/query"
)

// dcollectCmd represents the dcollect command
var dcollectCmd = &cobra.Command{
	Use:   "dcollect",
	Short: "Parse a DCOLLECT binary unload",
	Long: `Parse a binary DCOLLECT extract into dataset, volume and data-class
tables.

Examples:
  zunload dcollect --input /data/dcollect.bin
  zunload dcollect --input /data/dcollect.bin --volume PROD01
  zunload dcollect --input /data/dcollect.bin --save-cache`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		save, _ := cmd.Flags().GetBool("save-cache")
		volume, _ := cmd.Flags().GetString("volume")

		p, err := buildDCollect(cmd)
		if err != nil {
			return err
		}
		if input != "" {
			if err := runPlain(p, input); err != nil {
				return err
			}
		}

		if volume != "" {
			names, err := query.NewDCollect(p).DatasetsOnVolume(volume)
			if err != nil {
				return err
			}
			fmt.Printf("%s - %d datasets on %s\n", stamp(), len(names), volume)
			for _, name := range names {
				fmt.Printf("%s   - %s\n", stamp(), name)
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
	rootCmd.AddCommand(dcollectCmd)
	dcollectCmd.Flags().StringP("input", "i", "", "Path of the DCOLLECT file")
	dcollectCmd.Flags().Bool("save-cache", false, "Save the parsed tables to the cache")
	dcollectCmd.Flags().String("volume", "", "List the datasets on this volume serial")
}
