package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/tui"
	"github.com/opsdeskhq/opsdesk/internal/ux"
)

var (
	flagFilter   string
	flagPage     int
	flagPageSize int
)

// addListFlags registers the client-side filter/pagination flags shared by
// every list command.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFilter, "filter", "", "keep rows where any column contains this text")
	cmd.Flags().IntVar(&flagPage, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&flagPageSize, "page-size", 0, "rows per page (0 = all)")
}

// renderList formats a list result. Text and CSV output go through the
// table path with client-side filtering and paging applied; json and yaml
// emit the raw items untouched.
func renderList(a *App, raw any, table ux.Table) error {
	format := a.outputFormat()

	f, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: os.Stdout})
	if err != nil {
		return err
	}

	switch format {
	case "json", "yaml":
		return f.Format(raw)
	default:
		table.Data = ux.FilterRows(table.Data, flagFilter)
		table.Data = ux.Paginate(table.Data, flagPage, flagPageSize)
		return f.Format(table)
	}
}

// renderObject formats a single result.
func renderObject(a *App, obj any) error {
	format := a.outputFormat()
	if format == "csv" {
		format = "json"
	}
	f, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: os.Stdout})
	if err != nil {
		return err
	}
	return f.Format(obj)
}

// refetchAfterMutation re-reads a list wholesale after a mutation, the way
// the web client's hooks did. The mutation already succeeded by the time
// this runs; a refetch failure is only a secondary warning and never undoes
// the reported result.
func refetchAfterMutation(what string, fetch func() error) {
	if err := fetch(); err != nil {
		tui.Warn(os.Stderr, "%s changed, but refreshing the list failed: %v", what, err)
	}
}

// confirmOrAbort prompts before destructive operations unless --no-input.
func confirmOrAbort(what string) (bool, error) {
	if flagNoInput {
		return true, nil
	}
	return tui.ConfirmDelete(what)
}
