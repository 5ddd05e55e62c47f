package main

import (
	"fmt"
	"os"

	"finsight/cmd/budget"
	"finsight/cmd/category"
	"finsight/cmd/dashboard"
	"finsight/cmd/export"
	"finsight/cmd/forecast"
	"finsight/cmd/root"
	"finsight/cmd/rules"
	"finsight/cmd/suggest"
	"finsight/cmd/transaction"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(suggest.Cmd)
	root.Cmd.AddCommand(forecast.Cmd)
	root.Cmd.AddCommand(budget.StatusCmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(dashboard.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(category.Cmd)
	root.Cmd.AddCommand(transaction.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
