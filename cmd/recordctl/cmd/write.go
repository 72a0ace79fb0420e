package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write <name> [value]",
	Short: "Replace the value of a record",
	Long: `Replace the value of a record. The value is taken from the argument, from
--file, or from standard input when neither is given.

Examples:
  recordctl write settings '{"theme":"dark"}'
  recordctl write settings --file=settings.json
  cat settings.json | recordctl write settings --zstd`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")
		compress, _ := cmd.Flags().GetBool("zstd")

		data, err := writeInput(args, file, cmd.InOrStdin())
		if err != nil {
			return err
		}

		if err := writeRecord(settings, args[0], data, compress); err != nil {
			return err
		}
		cmd.Printf("Wrote %d bytes to record '%s'\n", len(data), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringP("file", "f", "", "Read the value from a file")
	writeCmd.Flags().Bool("zstd", false, "Compress the payload with zstd")
}

// writeInput picks the value from args, a file or stdin
func writeInput(args []string, file string, stdin io.Reader) ([]byte, error) {
	switch {
	case len(args) == 2 && file != "":
		return nil, fmt.Errorf("give either a value or --file, not both")
	case len(args) == 2:
		return []byte(args[1]), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read value file: %w", err)
		}
		return data, nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read value from stdin: %w", err)
		}
		return data, nil
	}
}
