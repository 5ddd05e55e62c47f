// Package rules handles keyword rule management commands
package rules

import (
	"fmt"
	"io"

	"finsight/cmd/root"
	"finsight/internal/container"
	"finsight/internal/logging"
	"finsight/internal/report"

	"github.com/spf13/cobra"
)

var (
	// Category is the category name a new rule points at
	Category string
	// Keyword is the text fragment of a new rule
	Keyword string
	// WithDefaults also lists the built-in default table
	WithDefaults bool
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage keyword rules used for category suggestions",
	Long: `Manage the user's keyword rules. A rule maps a text fragment to one of the
user's categories; a description containing the fragment (ignoring case) is
suggested that category. User rules are consulted in the order they were added
and always take precedence over the built-in default table.`,
}

// ListCmd represents the rules list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keyword rules in match order",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := root.Prepare()
		if err != nil {
			return err
		}
		return list(c, cmd.OutOrStdout(), userID, WithDefaults, root.OutputFormat())
	},
}

// AddCmd represents the rules add command
var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a keyword rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := root.Prepare()
		if err != nil {
			return err
		}
		return add(c, cmd.OutOrStdout(), userID, Category, Keyword)
	},
}

// DeleteCmd represents the rules delete command
var DeleteCmd = &cobra.Command{
	Use:   "delete <id-or-keyword>",
	Short: "Delete a keyword rule by ID or keyword text",
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
	ListCmd.Flags().BoolVar(&WithDefaults, "defaults", false, "Also list the built-in default rules")

	AddCmd.Flags().StringVarP(&Category, "category", "c", "", "Category name the rule assigns")
	AddCmd.Flags().StringVarP(&Keyword, "keyword", "k", "", "Text fragment to match")
	_ = AddCmd.MarkFlagRequired("category")
	_ = AddCmd.MarkFlagRequired("keyword")

	Cmd.AddCommand(ListCmd, AddCmd, DeleteCmd)
}

func list(c *container.Container, out io.Writer, userID string, withDefaults bool, format report.Format) error {
	entries, err := c.GetInsights().Rules(userID, withDefaults)
	if err != nil {
		return err
	}
	rendered, err := c.GetReportGenerator().RenderRules(entries, format)
	return root.Write(out, rendered, err)
}

func add(c *container.Container, out io.Writer, userID, category, keyword string) error {
	k, err := c.GetInsights().AddKeyword(userID, category, keyword)
	if err != nil {
		return root.WithHint(err, "see 'finsight category list'")
	}
	c.GetLogger().Info("Keyword rule added",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldKeyword, k.Text),
		logging.F(logging.FieldCategoryID, k.CategoryID))
	_, err = fmt.Fprintf(out, "Added rule %q -> %s (%s)\n", k.Text, category, k.ID)
	return err
}

func remove(c *container.Container, out io.Writer, userID, ref string) error {
	k, err := c.GetInsights().DeleteKeyword(userID, ref)
	if err != nil {
		return root.WithHint(err, "see 'finsight rules list'")
	}
	c.GetLogger().Info("Keyword rule deleted",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldKeyword, k.Text))
	_, err = fmt.Fprintf(out, "Deleted rule %q\n", k.Text)
	return err
}
