package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sadopc/focusboard/internal/store"
)

var (
	bold   = color.New(color.Bold)
	faint  = color.New(color.Faint)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

func newTable(header ...interface{}) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	if len(header) == 0 {
		return tbl
	}
	for i, h := range header {
		header[i] = bold.Sprint(h)
	}
	tbl.AddRow(header...)
	return tbl
}

// printTable writes tbl, or a faint placeholder when it only has a header.
func printTable(w io.Writer, tbl *uitable.Table, empty string) {
	if len(tbl.Rows) <= 1 {
		_, _ = fmt.Fprintln(w, faint.Sprint(empty))
		return
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printAdded(cmd *cobra.Command, kind, id string) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", kind, id)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, store.ErrNotFound)
}

func check(done bool) string {
	if done {
		return green.Sprint("✓")
	}
	return "·"
}
