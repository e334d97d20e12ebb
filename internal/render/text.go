package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
)

// Text writes page as terminal tables. Group members follow their group table.
func Text(w io.Writer, page Page) error {
	if page.Status != StatusLoaded {
		_, err := fmt.Fprintln(w, page.Message)
		return err
	}

	if _, err := fmt.Fprintln(w, titleStyle.Render(page.Summary)); err != nil {
		return err
	}

	labels := make([]string, len(page.Headers))
	for i, h := range page.Headers {
		labels[i] = h.Label + arrow(h.Indicator)
	}
	if _, err := fmt.Fprintln(w, newTable(labels, page.Rows).Render()); err != nil {
		return err
	}

	for _, row := range page.Rows {
		if len(row.Children) == 0 {
			continue
		}
		title := fmt.Sprintf("Alert Summary %s", row.Cells[0].Text)
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", titleStyle.Render(title), newTable(row.ChildHeaders, row.Children).Render()); err != nil {
			return err
		}
	}
	return nil
}

func newTable(headers []string, rows []Row) *table.Table {
	data := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = strings.TrimRight(c.Text, " ")
		}
		data[i] = cells
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(data...)
}

func arrow(indicator string) string {
	switch indicator {
	case "asc":
		return " ▲"
	case "desc":
		return " ▼"
	}
	return ""
}
