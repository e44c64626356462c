package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/simreg/pkg/ui/styles"
)

// Table writes rows under header. Terminal output is a pterm table with a
// styled header; text output is tab separated.
func Table(w io.Writer, format Format, header []string, rows [][]string) error {
	if format != FormatTerminal {
		lines := make([]string, 0, len(rows)+1)
		lines = append(lines, strings.Join(header, "\t"))
		for _, row := range rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	}

	headerStyle := styles.GetStyle("Header")
	styled := make([]string, len(header))
	for i, h := range header {
		styled[i] = headerStyle.Render(h)
	}

	data := pterm.TableData{styled}
	data = append(data, rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// Heading formats a section title for the given format
func Heading(format Format, title string) string {
	if format != FormatTerminal {
		return title
	}
	return pterm.Bold.Sprint(styles.GetStyle("Title").Render(title))
}
