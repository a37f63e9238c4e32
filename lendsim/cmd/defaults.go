package cmd

import (
	"io"

	"github.com/sarchlab/lendsim/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration as YAML.",
	Long: "`defaults` prints a configuration file that holds the default " +
		"values. It can be edited and passed to `run --config`.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeDefaults(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
}

func writeDefaults(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	return enc.Encode(config.Default())
}
