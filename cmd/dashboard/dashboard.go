// Package dashboard handles the dashboard command
package dashboard

import (
	"io"

	"finsight/cmd/root"
	"finsight/internal/container"
	"finsight/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show spending by category, budgets and the 30-day forecast",
	RunE:  dashboardFunc,
}

func dashboardFunc(cmd *cobra.Command, args []string) error {
	c, userID, err := root.Prepare()
	if err != nil {
		return err
	}
	return run(c, cmd.OutOrStdout(), userID, root.OutputFormat())
}

func run(c *container.Container, out io.Writer, userID string, format report.Format) error {
	d, err := c.GetInsights().Dashboard(userID)
	if err != nil {
		return err
	}
	rendered, err := c.GetReportGenerator().Render(d, format)
	return root.Write(out, rendered, err)
}
