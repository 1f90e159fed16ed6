// Command routerplugin runs a small demo application wired with the plugin
// system, useful for poking at the lifecycle from a browser or curl.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routerplugin",
		Short: "Router plugin system demo and inspection tool",
		Long: `routerplugin hosts a demo application built on the router plugin
lifecycle system:

  • A router with a few sample routes
  • Metrics, tracing, and devtools plugins installed through the
    standard entry points
  • HTTP endpoints to navigate, inspect lifecycle state, and stream
    devtools events`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		demoCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(version)
				return
			}
			fmt.Printf("routerplugin %s (commit %s, built %s)\n", version, commit, date)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
