package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relaypoint/telnetd/internal/app"
)

var cfgFile string

func main() {
	configPath := os.Getenv("TELNETD_CONFIG")
	if configPath == "" {
		configPath = "config.yml"
	}

	rootCmd := &cobra.Command{
		Use:     "telnetd",
		Short:   "Telnet negotiation demo server",
		Version: app.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Boot(cfgFile, false); err != nil {
				return err
			}
			return runServe(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", configPath, "config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
