package db

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRowCap(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		limit     int
		want      string
	}{
		{"appends limit", "SELECT * FROM users", 50, "SELECT * FROM users LIMIT 50"},
		{"trims before appending", "  SELECT 1 \n", 10, "SELECT 1 LIMIT 10"},
		{"existing limit", "SELECT * FROM users LIMIT 5", 50, "SELECT * FROM users LIMIT 5"},
		{"existing limit lower case", "select * from users limit 5", 50, "select * from users limit 5"},
		{"limit inside identifier", `SELECT speed_limit FROM roads`, 50, `SELECT speed_limit FROM roads`},
		{"limit inside literal", `SELECT 'no LIMIT here'`, 50, `SELECT 'no LIMIT here'`},
		{"zero limit", "SELECT * FROM users", 0, "SELECT * FROM users"},
		{"negative limit", "SELECT * FROM users", -1, "SELECT * FROM users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyRowCap(tt.statement, tt.limit))
		})
	}
}

func TestApplyRowCap_ExactlyOneClause(t *testing.T) {
	statements := []string{
		"SELECT 1",
		"SELECT * FROM orders WHERE total > 10",
		"WITH x AS (SELECT 1) SELECT * FROM x",
		"SELECT \"Weird Name\" FROM \"T\"",
	}
	for _, stmt := range statements {
		capped := ApplyRowCap(stmt, 7)
		assert.Equal(t, 1, strings.Count(strings.ToLower(capped), "limit"), capped)
		assert.True(t, strings.HasSuffix(capped, " LIMIT 7"), capped)

		// Capping again is a no-op.
		assert.Equal(t, capped, ApplyRowCap(capped, 7))
	}
}

func TestTableQuery(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		column string
		order  SortOrder
		limit  int
		want   string
	}{
		{"plain", "users", "", "", 50, `SELECT * FROM "users" LIMIT 50`},
		{"sorted asc", "users", "name", SortAsc, 10, `SELECT * FROM "users" ORDER BY "name" ASC LIMIT 10`},
		{"sorted desc", "users", "created_at", SortDesc, 25, `SELECT * FROM "users" ORDER BY "created_at" DESC LIMIT 25`},
		{"empty order means asc", "users", "id", "", 5, `SELECT * FROM "users" ORDER BY "id" ASC LIMIT 5`},
		{"mixed case", "UserEvents", "", "", 50, `SELECT * FROM "UserEvents" LIMIT 50`},
		{"spaces", "order items", "unit price", SortAsc, 50, `SELECT * FROM "order items" ORDER BY "unit price" ASC LIMIT 50`},
		{"embedded quote", `we"ird`, "", "", 50, `SELECT * FROM "we""ird" LIMIT 50`},
		{"already limited statement text", "limit", "", "", 3, `SELECT * FROM "limit" LIMIT 3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TableQuery(tt.table, tt.column, tt.order, tt.limit))
		})
	}
}

func TestTableQuery_QuotesIdentifierOnce(t *testing.T) {
	for _, table := range []string{"t", "My Table", "semi;colon", "drop table x; --", "ünïcödé"} {
		q := TableQuery(table, "", SortAsc, 1)
		from := strings.TrimSuffix(strings.TrimPrefix(q, "SELECT * FROM "), " LIMIT 1")
		assert.Equal(t, `"`+table+`"`, from)
	}
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{
		"":      SortAsc,
		"asc":   SortAsc,
		"ASC":   SortAsc,
		" Desc": SortDesc,
		"DESC":  SortDesc,
	} {
		got, err := ParseSortOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortOrder("DESC; DROP TABLE users")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSortOrder))
}

func TestSortOrder_Toggle(t *testing.T) {
	assert.Equal(t, SortDesc, SortAsc.Toggle())
	assert.Equal(t, SortAsc, SortDesc.Toggle())
}

func TestIsRowReturning(t *testing.T) {
	assert.True(t, isRowReturning("select 1"))
	assert.True(t, isRowReturning("  WITH x AS (SELECT 1) SELECT * FROM x"))
	assert.True(t, isRowReturning("INSERT INTO t (a) VALUES (1) RETURNING id"))
	assert.False(t, isRowReturning("UPDATE t SET a = 1"))
	assert.False(t, isRowReturning("CREATE TABLE t (id int)"))

	assert.True(t, isRowReturning("-- first rows\nSELECT a FROM t"))
	assert.True(t, isRowReturning("/* report */ select a from t"))
	assert.True(t, isRowReturning("/* outer /* inner */ still */\n-- x\nWITH q AS (SELECT 1) SELECT * FROM q"))
	assert.True(t, isRowReturning("FETCH 10 FROM cur"))
	assert.True(t, isRowReturning("EXECUTE stmt(1)"))
	assert.True(t, isRowReturning("CALL proc(NULL)"))
	assert.False(t, isRowReturning("-- cleanup\nDELETE FROM t"))
	assert.False(t, isRowReturning("/* unterminated SELECT"))
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, "raw", normalizeValue([]byte("raw")))
	assert.Nil(t, normalizeValue(math.NaN()))
	assert.Nil(t, normalizeValue(math.Inf(-1)))
	assert.Nil(t, normalizeValue(float32(math.Inf(1))))
	assert.Equal(t, float32(2.5), normalizeValue(float32(2.5)))
	assert.Equal(t, int64(7), normalizeValue(int64(7)))
}
