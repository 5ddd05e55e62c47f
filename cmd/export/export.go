// Package export handles exporting a user's transactions to CSV
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"finsight/cmd/root"
	"finsight/internal/container"
	"finsight/internal/logging"

	"github.com/spf13/cobra"
)

// Output is the destination file; empty or "-" writes to stdout
var Output string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions to CSV",
	Long: `Export all of the user's transactions, oldest first, as CSV with the columns
Date, Description, Category, Type and Amount.`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Output, "output", "o", "", "Output CSV file (default stdout)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	c, userID, err := root.Prepare()
	if err != nil {
		return err
	}
	return run(c, cmd.OutOrStdout(), userID, Output)
}

func run(c *container.Container, stdout io.Writer, userID, output string) error {
	if output == "" || output == "-" {
		_, err := c.GetInsights().ExportCSV(userID, stdout)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(output) // #nosec G304 -- path comes from the user's own flag
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	n, err := c.GetInsights().ExportCSV(userID, file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	c.GetLogger().Info("Transactions exported",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldCount, n),
		logging.F(logging.FieldOutputFile, output))
	_, err = fmt.Fprintf(stdout, "Exported %d transactions to %s\n", n, output)
	return err
}
