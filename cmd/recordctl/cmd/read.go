package cmd

import (
	"github.com/spf13/cobra"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <name>",
	Short: "Print the value of a record",
	Long: `Print the value of a record to standard output. A damaged record is an
error, never partial output.

Example:
  recordctl read settings`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		compress, _ := cmd.Flags().GetBool("zstd")

		data, err := readRecord(settings, args[0], compress)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().Bool("zstd", false, "Decompress a payload written with --zstd")
}
