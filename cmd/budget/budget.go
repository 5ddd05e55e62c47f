// Package budget handles the budget commands: evaluating budgets against this
// month's spending and setting a category's budget.
package budget

import (
	"fmt"
	"io"

	"finsight/cmd/root"
	"finsight/internal/container"
	"finsight/internal/logging"
	"finsight/internal/models"
	"finsight/internal/report"

	"github.com/spf13/cobra"
)

var (
	// Category is the category name a budget is set for
	Category string
	// Amount is the monthly budget amount
	Amount string
)

// StatusCmd represents the budgets command
var StatusCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Show budget utilization for the current month",
	Long: `Show, for every category with a positive budget, how much has been spent this
month and the resulting tier: success below 75%, warning from 75%, danger from
100%.`,
	RunE: statusFunc,
}

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage monthly budgets",
}

// SetCmd represents the budget set command
var SetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or replace the monthly budget of a category",
	RunE:  setFunc,
}

func init() {
	SetCmd.Flags().StringVarP(&Category, "category", "c", "", "Category name")
	SetCmd.Flags().StringVarP(&Amount, "amount", "a", "", "Monthly budget amount")
	_ = SetCmd.MarkFlagRequired("category")
	_ = SetCmd.MarkFlagRequired("amount")
	Cmd.AddCommand(SetCmd)
}

func statusFunc(cmd *cobra.Command, args []string) error {
	c, userID, err := root.Prepare()
	if err != nil {
		return err
	}
	return status(c, cmd.OutOrStdout(), userID, root.OutputFormat())
}

func setFunc(cmd *cobra.Command, args []string) error {
	c, userID, err := root.Prepare()
	if err != nil {
		return err
	}
	return set(c, cmd.OutOrStdout(), userID, Category, Amount)
}

func status(c *container.Container, out io.Writer, userID string, format report.Format) error {
	progress, err := c.GetInsights().Budgets(userID)
	if err != nil {
		return err
	}
	rendered, err := c.GetReportGenerator().RenderBudgets(progress, format)
	return root.Write(out, rendered, err)
}

func set(c *container.Container, out io.Writer, userID, category, amount string) error {
	value, err := models.ParseAmount(amount)
	if err != nil {
		return err
	}
	b, err := c.GetInsights().SetBudget(userID, category, value)
	if err != nil {
		return root.WithHint(err, "see 'finsight category list'")
	}
	c.GetLogger().Info("Budget set",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldCategoryID, b.CategoryID))
	_, err = fmt.Fprintf(out, "Budget for %s set to %s\n", category, b.Amount.StringFixed(2))
	return err
}
