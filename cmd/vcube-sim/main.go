package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	version = "dev" // Will be set by build flags
)

var rootCmd = &cobra.Command{
	Use:   "vcube-sim",
	Short: "Discrete-event simulator of the VCube diagnosis algorithm",
	Long: `vcube-sim simulates the VCube hierarchical distributed diagnosis
algorithm under false-negative test results: processes test peers on a
logical hypercube, gossip diagnosis state, and may self-terminate when a
peer wrongly suspects them.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)
}

// Commands are defined in separate files:
// - runCmd in run.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
