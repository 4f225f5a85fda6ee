/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zunload",
	Short: "zunload - security unload decoder",
	Long: `zunload decodes mainframe security-database extract files into typed
tables: IRRDBU00 text unloads and DCOLLECT binary unloads. Parsed tables
can be cached, queried, exported as access matrices, and served over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("cache-dir", "./cache", "Directory of the table cache")
	rootCmd.PersistentFlags().String("prefix", "", "Key prefix for cache save and load")
}
