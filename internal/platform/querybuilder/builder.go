// Package querybuilder renders the small set of postgres statements the
// storage adapters need, numbering placeholders as $1..$n in render order.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and its positional arguments.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) text(parts ...string) {
	for _, p := range parts {
		w.sql.WriteString(p)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sql.WriteByte('$')
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// fragment writes raw SQL, binding one argument per '?'. A '?' with no
// remaining argument is written literally.
func (w *writer) fragment(sql string, args []any) {
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && len(args) > 0 {
			w.bind(args[0])
			args = args[1:]
			continue
		}
		w.sql.WriteByte(sql[i])
	}
}

func (w *writer) where(conds []Condition) {
	for i, cond := range conds {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		cond(w)
	}
}

func (w *writer) result() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

// Condition is one AND-ed predicate of a WHERE clause.
type Condition func(w *writer)

func Eq(column string, value any) Condition {
	return func(w *writer) {
		w.text(column, " = ")
		w.bind(value)
	}
}

// In renders an IN list. An empty list renders as an always-false predicate.
func In[T any](column string, values []T) Condition {
	return func(w *writer) {
		if len(values) == 0 {
			w.text("1=0")
			return
		}
		w.text(column, " IN (")
		for i, v := range values {
			if i > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	}
}

// Expr is a raw predicate with '?' placeholders.
func Expr(sql string, args ...any) Condition {
	return func(w *writer) { w.fragment(sql, args) }
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("select: no columns")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("select: no table")
	}

	var w writer
	w.text("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.text(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.result()
}

type assignment struct {
	column string
	value  any
	raw    bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression such as NOW().
func (b *UpdateBuilder) SetExpr(column, sql string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: sql, raw: true})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("update: no table")
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update %s: no assignments", b.table)
	case len(b.where) == 0:
		return "", nil, fmt.Errorf("update %s: where condition required", b.table)
	}

	var w writer
	w.text("UPDATE ", b.table, " SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.text(", ")
		}
		w.text(set.column, " = ")
		if set.raw {
			w.text(set.value.(string))
			continue
		}
		w.bind(set.value)
	}
	w.where(b.where)
	return w.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

// DeleteFrom starts a DELETE statement. A WHERE condition is mandatory.
func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("delete: no table")
	case len(b.where) == 0:
		return "", nil, fmt.Errorf("delete from %s: where condition required", b.table)
	}

	var w writer
	w.text("DELETE FROM ", b.table)
	w.where(b.where)
	return w.result()
}

// insert renders a multi-row INSERT followed by an optional raw suffix.
func insert(table string, columns []string, rows [][]any, suffix string) (string, []any, error) {
	var w writer
	w.text("INSERT INTO ", table, " (", strings.Join(columns, ", "), ") VALUES ")
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("insert %s: row %d has %d values, want %d", table, i, len(row), len(columns))
		}
		if i > 0 {
			w.text(", ")
		}
		w.text("(")
		for j, v := range row {
			if j > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	}
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		w.text(" ", suffix)
	}
	return w.result()
}
