package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/recordstore/pkg/store"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Check the header and checksum of a record",
	Long: `Report the magic number, stored and computed checksums and payload size of
a record without decoding it. Exits non-zero when the record is damaged.

Examples:
  recordctl inspect settings
  recordctl inspect settings --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		info, err := inspectRecord(settings, args[0])
		if err != nil {
			return err
		}
		if err := printHeaderInfo(cmd.OutOrStdout(), info, asJSON); err != nil {
			return err
		}
		if !info.Valid {
			return fmt.Errorf("record '%s' is damaged: %s", args[0], info.Problem)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("json", false, "Print the report as JSON")
}

func printHeaderInfo(w io.Writer, info *store.HeaderInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(w, "Path:              %s\n", info.Path)
	fmt.Fprintf(w, "File size:         %d\n", info.FileSize)
	fmt.Fprintf(w, "Payload size:      %d\n", info.PayloadSize)
	fmt.Fprintf(w, "Magic:             %#08x\n", uint32(info.Magic))
	fmt.Fprintf(w, "Stored checksum:   %#08x\n", info.StoredChecksum)
	fmt.Fprintf(w, "Computed checksum: %#08x\n", info.ComputedChecksum)
	if info.Valid {
		fmt.Fprintf(w, "Status:            ok\n")
	} else {
		fmt.Fprintf(w, "Status:            damaged (%s)\n", info.Problem)
	}
	return nil
}
