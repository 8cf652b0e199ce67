package db

import (
	"context"
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Field describes one result column. DataTypeID is the PostgreSQL type OID.
type Field struct {
	Name       string `json:"name"`
	DataTypeID uint32 `json:"dataTypeID"`
}

// Row maps column name to value.
type Row map[string]any

// Result is what a query or table scan returns.
type Result struct {
	Rows     []Row         `json:"rows"`
	Fields   []Field       `json:"fields"`
	RowCount int64         `json:"rowCount"`
	Duration time.Duration `json:"-"`
}

// types resolves type names reported by the pgx stdlib bridge back to OIDs.
// Only read after construction.
var types = pgtype.NewMap()

// typeOID maps a column's database type name to its OID. The pgx bridge
// reports known types by upper-cased name and unknown ones by numeric OID.
func typeOID(ct *sql.ColumnType) uint32 {
	name := ct.DatabaseTypeName()
	if name == "" {
		return 0
	}
	if t, ok := types.TypeForName(strings.ToLower(name)); ok {
		return t.OID
	}
	if oid, err := strconv.ParseUint(name, 10, 32); err == nil {
		return uint32(oid)
	}
	return 0
}

// execute runs statement on conn and collects the result.
func execute(ctx context.Context, conn *sql.DB, statement string) (*Result, error) {
	start := time.Now()
	if !isRowReturning(statement) {
		return executeDML(ctx, conn, statement, start)
	}

	rows, err := conn.QueryContext(ctx, statement)
	if err != nil {
		return nil, WrapQueryError(statement, err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, WrapQueryError(statement, err)
	}
	fields := make([]Field, len(colTypes))
	for i, ct := range colTypes {
		fields[i] = Field{Name: ct.Name(), DataTypeID: typeOID(ct)}
	}

	results := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(fields))
		ptrs := make([]any, len(fields))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, WrapQueryError(statement, err)
		}

		row := make(Row, len(fields))
		for i, f := range fields {
			row[f.Name] = normalizeValue(values[i])
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(statement, err)
	}

	return &Result{
		Rows:     results,
		Fields:   fields,
		RowCount: int64(len(results)),
		Duration: time.Since(start),
	}, nil
}

// executeDML runs INSERT/UPDATE/DELETE/DDL; RowCount is the affected rows.
func executeDML(ctx context.Context, conn *sql.DB, statement string, start time.Time) (*Result, error) {
	res, err := conn.ExecContext(ctx, statement)
	if err != nil {
		return nil, WrapQueryError(statement, err)
	}
	affected, _ := res.RowsAffected()
	return &Result{
		Rows:     make([]Row, 0),
		Fields:   make([]Field, 0),
		RowCount: affected,
		Duration: time.Since(start),
	}, nil
}

// normalizeValue makes driver values JSON friendly. NaN and infinities
// have no JSON form and become null.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil
		}
		return val
	default:
		return val
	}
}
