// Rokuctl is a command-line remote control for Roku devices.
//
// It discovers devices on the local network via SSDP, queries them over the
// External Control Protocol (ECP), and sends remote-control input either as
// one-shot commands or through an interactive terminal remote.
//
// Usage:
//
//	rokuctl [command] [flags]
//
// Running without arguments launches the interactive remote.
// See 'rokuctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rokuctl/internal/logging"
	"rokuctl/internal/version"
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rokuctl",
	Short: "Roku remote control from the terminal",
	Long: `A command-line remote control for Roku devices.

Discovers devices via SSDP, queries channels and device information over
the ECP HTTP interface, and sends remote-control keypresses.

If no command is specified, the interactive remote will launch.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the interactive remote
		return runRemote(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rokuctl %s\n", version.Full())
	},
}
