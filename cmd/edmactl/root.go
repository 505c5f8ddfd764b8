// Command edmactl exercises the eDMA stack: it can run a demo transfer
// workload on the simulated controller and push firmware images to a board
// over a serial line.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "edmactl",
	Short: "edmactl runs eDMA transfer workloads and board utilities.",
	Long: `edmactl runs eDMA transfer workloads and board utilities. The demo ` +
		`subcommand drives transfers through the simulated channel controller ` +
		`with monitoring and transfer logging enabled; the flash subcommand ` +
		`sends a firmware image to a board over XMODEM-1K.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// Flag defaults may come from a local .env file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
