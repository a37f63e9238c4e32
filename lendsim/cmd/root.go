// Package cmd provides the command-line interface of lendsim.
package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lendsim",
	Short: "lendsim simulates the interest rate of a lending pool.",
	Long: `lendsim simulates a pool of actors that supply to and borrow from ` +
		`a lending pool, while a controller moves the interest rate towards ` +
		`the target utilization.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info",
		"Logging level, one of panic, fatal, error, warn, info, debug, trace.")
	rootCmd.PersistentFlags().Bool("log-json", false,
		"Write logs as JSON.")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	levelName, _ := cmd.Flags().GetString("log-level")

	level, err := log.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	log.SetLevel(level)

	asJSON, _ := cmd.Flags().GetBool("log-json")
	if asJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Registered exit handlers, such as recorder flushes, always
// run.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
