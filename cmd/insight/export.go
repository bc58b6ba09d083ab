package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pminsight/internal/report"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [product]",
	Short: "Export a stored analysis as a markdown file",
	Long: `Writes the stored analysis of a product to a markdown file. The
filename defaults to a slug of the product name plus the analysis
timestamp.

Example:
  insight export "Notion AI" -o notion.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default derived from product name)")
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func runExport(cmd *cobra.Command, args []string) error {
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

	path := exportOutput
	if path == "" {
		path = report.Filename(entry.Product, entry.CreatedAt)
	}

	md := report.Markdown(entry.Product, entry.CreatedAt, entry.Sections)
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Exported to "+path))
	return nil
}
