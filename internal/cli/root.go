// Package cli implements the pacer command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "pacer",
	Short:   "Throttle delivery of work items to a target rate",
	Version: version,
	Long: `Pacer drips items from a workload file to concurrent workers at a
configured items-per-second (or items-per-minute) rate, never exceeding
the worker bound. It is meant for driving rate-limited APIs at their
quota from the command line, and as a demo of the pacer library.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func init() {
	RootCmd.AddCommand(runCmd)
}
