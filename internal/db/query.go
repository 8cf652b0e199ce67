package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// DefaultRowLimit caps result sets when the caller does not choose a limit.
const DefaultRowLimit = 50

// SortOrder is the direction of an ORDER BY clause
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder accepts asc/desc in any case. An empty value means ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ASC":
		return SortAsc, nil
	case "DESC":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("%w: %q (expected ASC or DESC)", ErrInvalidSortOrder, s)
	}
}

// Toggle returns the opposite direction.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// ApplyRowCap appends " LIMIT n" to statement unless limit is not positive or
// the statement already mentions "limit" anywhere (case-insensitive).
//
// This is a substring heuristic, not a SQL rewrite: a statement that only
// contains "limit" inside an identifier or string literal is left uncapped.
func ApplyRowCap(statement string, limit int) string {
	stmt := strings.TrimSpace(statement)
	if limit <= 0 || strings.Contains(strings.ToLower(stmt), "limit") {
		return stmt
	}
	return stmt + " LIMIT " + strconv.Itoa(limit)
}

// TableQuery builds the default table scan:
//
//	SELECT * FROM "<table>" [ORDER BY "<column>" ASC|DESC] LIMIT n
//
// Identifiers are double-quoted once with embedded quotes doubled. The limit
// clause is always present.
func TableQuery(table, sortColumn string, order SortOrder, limit int) string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(pq.QuoteIdentifier(table))
	if sortColumn != "" {
		if order == "" {
			order = SortAsc
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(pq.QuoteIdentifier(sortColumn))
		b.WriteByte(' ')
		b.WriteString(string(order))
	}
	b.WriteString(" LIMIT ")
	b.WriteString(strconv.Itoa(limit))
	return b.String()
}

// DefaultStatement is the editable query seeded when a table is picked.
func DefaultStatement(table string) string {
	return "SELECT * FROM " + table
}

// isRowReturning reports whether statement should go through QueryContext
func isRowReturning(statement string) bool {
	trimmed := strings.ToUpper(stripLeadingComments(statement))
	for _, prefix := range []string{"SELECT", "WITH", "EXPLAIN", "SHOW", "VALUES", "TABLE", "FETCH", "EXECUTE", "CALL", "("} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return strings.Contains(trimmed, "RETURNING")
}

// stripLeadingComments drops whitespace and any -- or /* */ comments before
// the first keyword. Block comments nest as in PostgreSQL.
func stripLeadingComments(statement string) string {
	s := strings.TrimSpace(statement)
	for {
		switch {
		case strings.HasPrefix(s, "--"):
			i := strings.IndexByte(s, '\n')
			if i < 0 {
				return ""
			}
			s = strings.TrimSpace(s[i+1:])
		case strings.HasPrefix(s, "/*"):
			depth, i := 0, 0
			for i < len(s) {
				switch {
				case strings.HasPrefix(s[i:], "/*"):
					depth++
					i += 2
				case strings.HasPrefix(s[i:], "*/"):
					depth--
					i += 2
				default:
					i++
				}
				if depth == 0 {
					break
				}
			}
			if depth > 0 {
				return ""
			}
			s = strings.TrimSpace(s[i:])
		default:
			return s
		}
	}
}
