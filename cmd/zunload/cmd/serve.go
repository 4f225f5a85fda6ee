/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfdata/zunload/pkg/api"
	"github.com/mfdata/zunload/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the status and table API server",
	Long: `Start the HTTP server. Parsing runs in the background; the status
endpoint can be polled while the scan is still going, and the table
endpoints open up once the engine is Ready.

Examples:
  zunload serve --input /data/unload.irrdbu00 --port 8080
  zunload serve --format dcollect --input /data/dcollect.bin
  zunload serve --config ~/.config/zunload/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		format, _ := cmd.Flags().GetString("format")
		configPath, _ := cmd.Flags().GetString("config")

		if configPath != "" {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Port
			}
			if !cmd.Flags().Changed("bind") {
				bind = cfg.Bind
			}
			if !cmd.Flags().Changed("input") && cfg.Input != "" {
				if err := cmd.Flags().Set("input", cfg.Input); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("cache-dir") && cfg.Cache.Dir != "" {
				if err := cmd.Flags().Set("cache-dir", cfg.Cache.Dir); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("prefix") && cfg.Cache.Prefix != "" {
				if err := cmd.Flags().Set("prefix", cfg.Cache.Prefix); err != nil {
					return err
				}
			}
		}

		var engine api.Engine
		switch format {
		case "irrdbu00":
			p, err := buildRACF(cmd)
			if err != nil {
				return err
			}
			p.Parse()
			engine = p
		case "dcollect":
			p, err := buildDCollect(cmd)
			if err != nil {
				return err
			}
			p.Parse()
			engine = p
		case "setropts":
			p, err := buildSETROPTS(cmd)
			if err != nil {
				return err
			}
			p.Parse()
			engine = p
		default:
			return fmt.Errorf("unknown format %q, want irrdbu00, dcollect or setropts", format)
		}

		return api.StartServer(engine, api.ServerConfig{Bind: bind, Port: port})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("input", "i", "", "Path of the unload file")
	serveCmd.Flags().String("format", "irrdbu00", "Unload format: irrdbu00, dcollect or setropts")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("config", "", "Path of a YAML config file")
}
