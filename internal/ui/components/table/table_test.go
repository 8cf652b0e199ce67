package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhath/pgpeek/internal/client"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		name, sortColumn, sortOrder, want string
	}{
		{"id", "", "ASC", "id"},
		{"id", "name", "ASC", "id"},
		{"name", "name", "ASC", "name ↑"},
		{"name", "name", "desc", "name ↓"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Header(tt.name, tt.sortColumn, tt.sortOrder))
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"alice", "alice"},
		{json.Number("9007199254740993"), "9007199254740993"},
		{float64(1.5), "1.5"},
		{true, "true"},
		{map[string]any{"a": json.Number("1")}, `{"a":1}`},
		{[]any{"x", "y"}, `["x","y"]`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestFromResult(t *testing.T) {
	res := &client.Result{
		Fields: []client.Field{{Name: "id", DataTypeID: 23}, {Name: "name", DataTypeID: 25}},
		Rows: []map[string]any{
			{"id": json.Number("1"), "name": "alice"},
			{"id": json.Number("2"), "name": nil},
		},
		RowCount: 2,
	}

	view := FromResult(res, View{SortColumn: "name", SortOrder: "DESC", Selected: -1}).View()

	assert.Contains(t, view, "name ↓")
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "NULL")
	assert.Contains(t, view, "Showing 2 rows")
}

func TestFromResult_Empty(t *testing.T) {
	res := &client.Result{Fields: []client.Field{{Name: "id"}}, Rows: []map[string]any{}}
	assert.Contains(t, FromResult(res, View{Selected: 0}).View(), "Showing 0 rows")
}

func TestCalculateColumnWidths(t *testing.T) {
	widths := calculateColumnWidths([]string{"id", "name ↑"}, [][]string{{"12345", "al"}})
	assert.Equal(t, []int{7, 8}, widths)
}
