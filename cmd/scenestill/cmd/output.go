package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/scenestill/internal/summary"
)

// newPrinter writes to the command's output, in color only on a terminal.
func newPrinter(cmd *cobra.Command) *summary.Printer {
	w := cmd.OutOrStdout()
	p := summary.New(w)
	if !isTerminal(w) {
		p.WithoutColor()
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
