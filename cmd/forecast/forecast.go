// Package forecast handles the spending forecast command
package forecast

import (
	"errors"
	"io"

	"finsight/cmd/root"
	"finsight/internal/container"
	"finsight/internal/forecast"
	"finsight/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the forecast command
var Cmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast spending for the next 30 days",
	Long: `Forecast the user's total spending for the next 30 days. With less than 30
days of history the average daily spend is projected; otherwise a weekly
seasonal model is fitted. When no forecast can be made this is reported, not
treated as an error.`,
	RunE: forecastFunc,
}

func forecastFunc(cmd *cobra.Command, args []string) error {
	c, userID, err := root.Prepare()
	if err != nil {
		return err
	}
	return run(c, cmd.OutOrStdout(), userID, root.OutputFormat())
}

func run(c *container.Container, out io.Writer, userID string, format report.Format) error {
	result, err := c.GetInsights().Forecast(userID)
	var unavailable *forecast.UnavailableError
	if err != nil && !errors.As(err, &unavailable) {
		return err
	}
	rendered, err := c.GetReportGenerator().RenderForecast(result, err, format)
	return root.Write(out, rendered, err)
}
