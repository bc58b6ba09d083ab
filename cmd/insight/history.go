package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pminsight/internal/history"
	"pminsight/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList(cmd, args)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [product]",
	Short: "Re-render a stored analysis",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored analyses",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func openStore() (*history.Store, error) {
	return history.Open(cfg.History.DatabasePath, cfg.History.Capacity)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("No stored analyses. Run: insight analyze <product>"))
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%-30s %s", e.Product, formatAge(e.CreatedAt))
		if e.Degraded {
			line += "  " + warnStyle.Render("(recovered)")
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	product := joinArgs(args)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Load(product)
	if err != nil {
		return err
	}

	md := report.Markdown(entry.Product, entry.CreatedAt, entry.Sections)
	fmt.Fprintln(cmd.OutOrStdout(), report.RenderTerminal(md))
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("History cleared."))
	return nil
}
