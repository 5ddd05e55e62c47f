// Package transaction handles recording, listing and deleting transactions
package transaction

import (
	"fmt"
	"io"
	"time"

	"finsight/cmd/root"
	"finsight/internal/container"
	"finsight/internal/logging"
	"finsight/internal/models"
	"finsight/internal/report"

	"github.com/spf13/cobra"
)

// DateFormat is the layout of the --date flag.
const DateFormat = "2006-01-02"

// Options holds the transaction add flags
type Options struct {
	Amount         string
	Type           string
	Description    string
	Date           string
	Category       string
	AutoCategorize bool
}

// Flags holds the parsed flag values
var Flags = Options{}

// Cmd represents the transaction command
var Cmd = &cobra.Command{
	Use:   "transaction",
	Short: "Manage transactions",
}

// AddCmd represents the transaction add command
var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense",
	Long: `Record an income or expense. Without --category the transaction stays
uncategorized unless --auto-categorize is set, in which case the suggested
category is assigned when there is one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := root.Prepare()
		if err != nil {
			return err
		}
		return add(c, cmd.OutOrStdout(), userID, Flags, time.Now())
	},
}

// ListCmd represents the transaction list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's transactions, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := root.Prepare()
		if err != nil {
			return err
		}
		return list(c, cmd.OutOrStdout(), userID, root.OutputFormat())
	},
}

// DeleteCmd represents the transaction delete command
var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of the user's transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := root.Prepare()
		if err != nil {
			return err
		}
		return remove(c, cmd.OutOrStdout(), userID, args[0])
	},
}

func init() {
	AddCmd.Flags().StringVarP(&Flags.Amount, "amount", "a", "", "Amount (positive)")
	AddCmd.Flags().StringVarP(&Flags.Type, "type", "t", string(models.Expense), "Transaction type: expense or income")
	AddCmd.Flags().StringVarP(&Flags.Description, "description", "D", "", "Description")
	AddCmd.Flags().StringVar(&Flags.Date, "date", "", "Date as YYYY-MM-DD (default today)")
	AddCmd.Flags().StringVarP(&Flags.Category, "category", "c", "", "Category name (optional)")
	AddCmd.Flags().BoolVar(&Flags.AutoCategorize, "auto-categorize", false, "Assign the suggested category when --category is not given")
	_ = AddCmd.MarkFlagRequired("amount")
	_ = AddCmd.MarkFlagRequired("description")
	Cmd.AddCommand(AddCmd, ListCmd, DeleteCmd)
}

func add(c *container.Container, out io.Writer, userID string, opts Options, now time.Time) error {
	typ, err := models.ParseTransactionType(opts.Type)
	if err != nil {
		return err
	}
	amount, err := models.ParseAmount(opts.Amount)
	if err != nil {
		return err
	}

	loc := c.GetConfig().Location()
	date := now.In(loc)
	if opts.Date != "" {
		date, err = time.ParseInLocation(DateFormat, opts.Date, loc)
		if err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", opts.Date, err)
		}
	}

	tx := models.Transaction{
		UserID:      userID,
		Type:        typ,
		Amount:      amount,
		Description: opts.Description,
		Date:        date,
	}
	if opts.Category != "" {
		cat, err := c.GetInsights().FindCategoryByName(userID, opts.Category)
		if err != nil {
			return root.WithHint(err, "see 'finsight category list'")
		}
		tx.CategoryID = cat.ID
	}

	saved, err := c.GetInsights().AddTransaction(tx, opts.AutoCategorize)
	if err != nil {
		return err
	}

	category := models.UncategorizedLabel
	if saved.HasCategory() {
		categories, err := c.GetInsights().Categories(userID)
		if err != nil {
			return err
		}
		for _, cat := range categories {
			if cat.ID == saved.CategoryID {
				category = cat.Name
			}
		}
	}

	c.GetLogger().Info("Transaction added",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldCategoryID, saved.CategoryID))
	_, err = fmt.Fprintf(out, "Added %s of %s on %s (%s) [%s]\n",
		saved.Type, saved.Amount.StringFixed(2), saved.Date.Format(DateFormat), category, saved.ID)
	return err
}

func list(c *container.Container, out io.Writer, userID string, format report.Format) error {
	entries, err := c.GetInsights().Transactions(userID)
	if err != nil {
		return err
	}
	rendered, err := c.GetReportGenerator().RenderTransactions(entries, format)
	return root.Write(out, rendered, err)
}

func remove(c *container.Container, out io.Writer, userID, id string) error {
	if err := c.GetInsights().DeleteTransaction(userID, id); err != nil {
		return root.WithHint(err, "see 'finsight transaction list'")
	}
	_, err := fmt.Fprintf(out, "Deleted transaction %s\n", id)
	return err
}
