// Package category handles category management commands
package category

import (
	"fmt"
	"io"

	"finsight/cmd/root"
	"finsight/internal/container"
	"finsight/internal/report"

	"github.com/spf13/cobra"
)

// Name is the name of the category to add
var Name string

// Cmd represents the category command
var Cmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

// AddCmd represents the category add command
var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a category",
	Long:  `Add a category. Names are unique per user, ignoring case.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := root.Prepare()
		if err != nil {
			return err
		}
		return add(c, cmd.OutOrStdout(), userID, Name)
	},
}

// ListCmd represents the category list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := root.Prepare()
		if err != nil {
			return err
		}
		return list(c, cmd.OutOrStdout(), userID, root.OutputFormat())
	},
}

func init() {
	AddCmd.Flags().StringVarP(&Name, "name", "n", "", "Category name")
	_ = AddCmd.MarkFlagRequired("name")
	Cmd.AddCommand(AddCmd, ListCmd)
}

func add(c *container.Container, out io.Writer, userID, name string) error {
	cat, err := c.GetInsights().AddCategory(userID, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Added category %s (%s)\n", cat.Name, cat.ID)
	return err
}

func list(c *container.Container, out io.Writer, userID string, format report.Format) error {
	categories, err := c.GetInsights().Categories(userID)
	if err != nil {
		return err
	}
	rendered, err := c.GetReportGenerator().RenderCategories(categories, format)
	return root.Write(out, rendered, err)
}
