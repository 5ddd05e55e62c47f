// Package suggest handles the category suggestion command
package suggest

import (
	"io"

	"finsight/cmd/root"
	"finsight/internal/container"
	"finsight/internal/logging"
	"finsight/internal/report"

	"github.com/spf13/cobra"
)

// Description is the transaction description to categorize
var Description string

// Cmd represents the suggest command
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a category for a transaction description",
	Long: `Suggest a category for a transaction description using the user's keyword
rules first and the built-in default table second. Having no suggestion is a
normal outcome and exits successfully.`,
	RunE: suggestFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Description, "description", "D", "", "Transaction description to categorize")
	_ = Cmd.MarkFlagRequired("description")
}

func suggestFunc(cmd *cobra.Command, args []string) error {
	c, userID, err := root.Prepare()
	if err != nil {
		return err
	}
	return run(c, cmd.OutOrStdout(), userID, Description, root.OutputFormat())
}

func run(c *container.Container, out io.Writer, userID, description string, format report.Format) error {
	s, ok, err := c.GetInsights().SuggestCategory(userID, description)
	if err != nil {
		return err
	}
	c.GetLogger().Debug("Suggestion requested",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldStatus, ok))
	rendered, err := c.GetReportGenerator().RenderSuggestion(s, ok, format)
	return root.Write(out, rendered, err)
}
