// Package table renders API results with bubble-table.
package table

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"

	"github.com/nhath/pgpeek/internal/client"
)

// Nord colors
const (
	ColorForeground = "#D8DEE9"
	ColorComment    = "#4C566A"
	ColorCyan       = "#88C0D0"
	ColorGreen      = "#A3BE8C"
	ColorOrange     = "#D08770"
	ColorPurple     = "#B48EAD"
	ColorYellow     = "#EBCB8B"
	ColorTeal       = "#8FBCBB"
)

// Null is how SQL NULL is shown.
const Null = "NULL"

// MaxColumnWidth caps a rendered column.
const MaxColumnWidth = 40

// Sort arrows shown next to the sorted column.
const (
	ArrowAsc  = "↑"
	ArrowDesc = "↓"
)

// View describes how a result should be drawn.
type View struct {
	SortColumn string
	SortOrder  string
	// Selected is the index of the column under the cursor, or -1.
	Selected int
	PageSize int
}

// New creates a bubble-table with the Nord palette.
func New(cols []bbtable.Column) bbtable.Model {
	return bbtable.New(cols).
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorForeground))).
		HeaderStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorTeal)).
			Bold(true)).
		HighlightStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGreen)).
			Bold(true)).
		Focused(true).
		BorderRounded()
}

// FromResult builds a table from an API result. Columns keep the order of
// res.Fields.
func FromResult(res *client.Result, v View) bbtable.Model {
	if res == nil {
		return bbtable.New(nil)
	}

	names := make([]string, len(res.Fields))
	for i, f := range res.Fields {
		names[i] = f.Name
	}

	cells := make([][]string, len(res.Rows))
	for i, r := range res.Rows {
		cells[i] = make([]string, len(names))
		for j, name := range names {
			cells[i][j] = FormatValue(r[name])
		}
	}

	headers := make([]string, len(names))
	for i, name := range names {
		headers[i] = Header(name, v.SortColumn, v.SortOrder)
	}

	widths := calculateColumnWidths(headers, cells)
	cols := make([]bbtable.Column, len(names))
	for i := range names {
		col := bbtable.NewColumn(columnKey(i), headers[i], min(widths[i], MaxColumnWidth))
		if i == v.Selected {
			col = col.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)).Underline(true))
		}
		cols[i] = col
	}

	rows := make([]bbtable.Row, len(cells))
	for i, r := range cells {
		data := bbtable.RowData{}
		for j, val := range r {
			data[columnKey(j)] = bbtable.NewStyledCell(val, ValueStyle(res.Rows[i][names[j]]))
		}
		rows[i] = bbtable.NewRow(data)
	}

	pageSize := v.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	return New(cols).
		WithRows(rows).
		WithPageSize(pageSize).
		WithStaticFooter(Footer(len(res.Rows)))
}

// Header renders a column title with the sort arrow when it is the sort
// column.
func Header(name, sortColumn, sortOrder string) string {
	if name != sortColumn || sortColumn == "" {
		return name
	}
	if strings.EqualFold(sortOrder, "DESC") {
		return name + " " + ArrowDesc
	}
	return name + " " + ArrowAsc
}

// Footer is the row count line under the table.
func Footer(n int) string {
	return fmt.Sprintf("Showing %d rows", n)
}

// columnKey keys cells by position so duplicate column names (a join on
// two id columns) stay distinct.
func columnKey(i int) string {
	return "c" + strconv.Itoa(i)
}

// FormatValue renders a decoded JSON value.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return Null
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}

	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(val))
			}
		}
	}

	for i := range widths {
		widths[i] += 2
	}
	return widths
}

// ValueStyle returns the cell style for a decoded JSON value.
func ValueStyle(v any) lipgloss.Style {
	switch v.(type) {
	case nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorComment)).Italic(true)
	case json.Number, float64:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPurple))
	case bool:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))
	}
}
