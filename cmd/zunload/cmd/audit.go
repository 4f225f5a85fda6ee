/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfdata/zunload/pkg/query"
	"github.com/mfdata/zunload/pkg/table"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the standard audit queries over a parsed unload",
	Long: `Run the standard audit queries: privileged and revoked users, empty
groups, permissive dataset profiles, and orphaned access-list entries.

Examples:
  zunload audit --input /data/unload.irrdbu00
  zunload audit --prefix lpar1-`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")

		p, err := buildRACF(cmd)
		if err != nil {
			return err
		}
		if input != "" {
			if err := runWithBar(p, input); err != nil {
				return err
			}
		}

		q := query.NewRACF(p)
		printUsers := func(title string, rows []table.Row, err error) error {
			if err != nil {
				return err
			}
			fmt.Printf("%s - %d %s\n", stamp(), len(rows), title)
			for _, r := range rows {
				fmt.Printf("%s   - %s\n", stamp(), r.Str("USBD_NAME"))
			}
			return nil
		}

		specials, err := q.Specials()
		if err := printUsers("users with the special attribute", specials, err); err != nil {
			return err
		}
		operations, err := q.Operations()
		if err := printUsers("users with the operations attribute", operations, err); err != nil {
			return err
		}
		auditors, err := q.Auditors()
		if err := printUsers("users with the auditor attribute", auditors, err); err != nil {
			return err
		}
		revoked, err := q.Revoked()
		if err := printUsers("revoked users", revoked, err); err != nil {
			return err
		}

		empty, err := q.EmptyGroups()
		if err != nil {
			return err
		}
		fmt.Printf("%s - %d groups without members\n", stamp(), len(empty))

		for _, level := range []string{"READ", "UPDATE", "CONTROL", "ALTER"} {
			rows, err := q.UACCDatasets(level)
			if err != nil {
				return err
			}
			fmt.Printf("%s - %d dataset profiles with UACC=%s\n", stamp(), len(rows), level)
		}

		dsOrphans, genOrphans, err := q.Orphans()
		switch {
		case errors.Is(err, query.ErrNoAccessRecords):
			fmt.Printf("%s - no access records in this unload, orphan check skipped\n", stamp())
		case err != nil:
			return err
		default:
			fmt.Printf("%s - %d orphaned dataset access entries\n", stamp(), len(dsOrphans))
			fmt.Printf("%s - %d orphaned general access entries\n", stamp(), len(genOrphans))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().StringP("input", "i", "", "Path of the IRRDBU00 unload file")
}
