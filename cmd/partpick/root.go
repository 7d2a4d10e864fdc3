package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"partpick/internal"
	"partpick/internal/clipboard"
	"partpick/internal/pipeline"
	"partpick/internal/tui"
)

var version = "dev"

var (
	inputFile    string
	query        string
	category     string
	selections   []string
	copyOutput   bool
	exportFile   string
	historyLimit int
)

var rootCmd = &cobra.Command{
	Use:           "partpick",
	Short:         "Pick parts from a spreadsheet and emit a comma-separated order line",
	Long:          `partpick imports "[category] name" labels from xlsx, csv, html, eml or pdf files, lets you select items with quantities and prints them as name,namexN.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items, filtered by search text and category",
	RunE:  runList,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories in first-seen order",
	RunE:  runCategories,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the output line for a selection",
	Long:  `Imports --file (or uses the sample catalog), applies quantities from the file, then applies --select entries in order: "name=qty" sets a quantity, a bare name toggles.`,
	RunE:  runRender,
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Select items interactively",
	RunE:  runPick,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent imports and outputs",
	RunE:  runHistory,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(listCmd, categoriesCmd, renderCmd, pickCmd, historyCmd)

	for _, c := range []*cobra.Command{listCmd, categoriesCmd, renderCmd, pickCmd} {
		c.Flags().StringVarP(&inputFile, "file", "f", "", "Spreadsheet to import (.xlsx .csv .tsv .html .eml .pdf)")
	}

	listCmd.Flags().StringVarP(&query, "query", "q", "", "Search text (case and spaces ignored)")
	listCmd.Flags().StringVarP(&category, "category", "c", internal.CategoryAll, "Category filter")

	renderCmd.Flags().StringSliceVarP(&selections, "select", "s", nil, "Entries to apply: name, name=qty or id=qty (comma-separated or repeated)")
	renderCmd.Flags().BoolVar(&copyOutput, "copy", false, "Copy the output line to the clipboard")
	renderCmd.Flags().StringVar(&exportFile, "export", "", "Also write the selection to an xlsx file")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Rows to show per table")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.importFile(cmd.Context(), inputFile); err != nil {
		return err
	}

	a.store.SetQuery(query)
	a.store.SetCategory(category)
	visible := a.store.Visible()
	for _, item := range visible {
		fmt.Println(formatRow(a.store, item))
	}
	if len(visible) > 0 {
		return nil
	}

	fmt.Println("no matching items")
	if hints := pipeline.Suggest(a.store.Filter("", category), query, a.cfg.Suggest.Limit); len(hints) > 0 {
		fmt.Println("did you mean:")
		for _, item := range hints {
			fmt.Println("  " + formatRow(a.store, item))
		}
	}
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.importFile(cmd.Context(), inputFile); err != nil {
		return err
	}
	for _, c := range a.store.Categories() {
		fmt.Println(c)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.importFile(cmd.Context(), inputFile); err != nil {
		return err
	}
	if err := applySelection(a.store, parseSelectList(selections)); err != nil {
		return err
	}

	output := a.store.Output()
	fmt.Println(output)

	doCopy := a.cfg.Copy
	if cmd.Flags().Changed("copy") {
		doCopy = copyOutput
	}
	copied := false
	if doCopy {
		copied, err = clipboard.Copy(clipboard.System{}, output)
		if err != nil {
			a.logger.Warn("clipboard write failed", "error", err)
			fmt.Fprintln(os.Stderr, "warning: copy failed, copy the line above manually")
		}
	}
	a.svc.RecordOutput(output, len(a.store.SelectedItems()), copied)

	if exportFile != "" {
		path := exportPath(a.cfg.OutputDir, exportFile)
		if err := pipeline.ExportSelectionXLSX(a.store.Items(), a.store.Selection(), path); err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "exported selection to %s\n", path)
	}
	return nil
}

func runPick(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.importFile(cmd.Context(), inputFile); err != nil {
		return err
	}

	model := tui.NewModel(a.svc, tui.Options{
		Clipboard:    clipboard.System{},
		SuggestLimit: a.cfg.Suggest.Limit,
		Logger:       a.logger,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.db == nil {
		fmt.Println("history is disabled (set history_db or PARTPICK_HISTORY_DB)")
		return nil
	}

	imports, err := a.db.ListImports(historyLimit)
	if err != nil {
		return err
	}
	fmt.Println("imports:")
	for _, row := range imports {
		line := fmt.Sprintf("  #%d %s %-10s %-6s items=%d preselected=%d", row.ID, row.CreatedAt, row.Status, row.Source, row.ItemCount, row.Preselected)
		line += " " + row.Filename
		if row.Error != "" {
			line += " (" + row.Error + ")"
		}
		fmt.Println(line)
	}

	outputs, err := a.db.ListOutputs(historyLimit)
	if err != nil {
		return err
	}
	fmt.Println("outputs:")
	for _, row := range outputs {
		copied := ""
		if row.Copied {
			copied = " copied"
		}
		fmt.Printf("  #%d %s entries=%d%s %s\n", row.ID, row.CreatedAt, row.EntryCount, copied, row.Output)
	}
	return nil
}
