package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type InsertBuilder struct {
	table         string
	columns       []string
	rows          [][]any
	conflictKeys  []string
	updateColumns []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflict names the natural key of the target table.
func (b *InsertBuilder) OnConflict(keys ...string) *InsertBuilder {
	b.conflictKeys = append([]string(nil), keys...)
	return b
}

// DoUpdateExcluded overwrites the given columns from the proposed row. With no columns, every
// inserted column outside the conflict key is overwritten.
func (b *InsertBuilder) DoUpdateExcluded(columns ...string) *InsertBuilder {
	b.updateColumns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	argIndex := 1
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			writeArg(&buf, &args, &argIndex, value)
		}
		buf.WriteString(")")
	}

	if err := b.appendConflictClause(&buf); err != nil {
		return "", nil, err
	}

	return buf.String(), args, nil
}

func (b *InsertBuilder) appendConflictClause(buf *strings.Builder) error {
	if len(b.conflictKeys) == 0 {
		return nil
	}
	buf.WriteString(" ON CONFLICT (")
	buf.WriteString(strings.Join(b.conflictKeys, ", "))
	buf.WriteString(")")

	updates := b.updateColumns
	if len(updates) == 0 {
		key := make(map[string]struct{}, len(b.conflictKeys))
		for _, k := range b.conflictKeys {
			key[k] = struct{}{}
		}
		for _, col := range b.columns {
			if _, ok := key[col]; !ok {
				updates = append(updates, col)
			}
		}
	}
	if len(updates) == 0 {
		return fmt.Errorf("on conflict update for %s has no columns to update", b.table)
	}

	buf.WriteString(" DO UPDATE SET ")
	for i, col := range updates {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(col)
		buf.WriteString(" = EXCLUDED.")
		buf.WriteString(col)
	}
	return nil
}

func writeArg(buf *strings.Builder, args *[]any, argIndex *int, value any) {
	buf.WriteString("$" + strconv.Itoa(*argIndex))
	*args = append(*args, value)
	*argIndex = *argIndex + 1
}

func rewritePlaceholders(expr string, exprArgs []any, args *[]any, argIndex *int) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			writeArg(&out, args, argIndex, exprArgs[next])
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}
