// Package querybuilder renders the small set of PostgreSQL statements the
// repositories need, numbering placeholders as $1, $2, ...
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type Condition interface {
	appendSQL(q *query)
}

// query accumulates SQL text and its positional arguments.
type query struct {
	buf  strings.Builder
	args []any
}

func (q *query) bind(value any) {
	q.args = append(q.args, value)
	q.buf.WriteString("$" + strconv.Itoa(len(q.args)))
}

// expr writes raw SQL, binding each ? to the next value of exprArgs.
func (q *query) expr(sql string, exprArgs []any) {
	next := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && next < len(exprArgs) {
			q.bind(exprArgs[next])
			next++
			continue
		}
		q.buf.WriteByte(sql[i])
	}
}

func (q *query) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			q.buf.WriteString(" WHERE ")
		} else {
			q.buf.WriteString(" AND ")
		}
		c.appendSQL(q)
	}
}

func (q *query) suffix(sql string) {
	if sql == "" {
		return
	}
	q.buf.WriteString(" ")
	q.buf.WriteString(sql)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(q *query) {
	q.buf.WriteString(c.column + " = ")
	q.bind(c.value)
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) appendSQL(q *query) {
	q.buf.WriteString(c.column + " IS NULL")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var q query
	q.buf.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	q.where(b.where)
	if len(b.orderBy) > 0 {
		q.buf.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	return q.buf.String(), q.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

// Suffix appends raw SQL such as ON CONFLICT or RETURNING clauses.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert has %d values, expected %d", len(b.values), len(b.columns))
	}

	var q query
	q.buf.WriteString("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES (")
	for i, v := range b.values {
		if i > 0 {
			q.buf.WriteString(", ")
		}
		q.bind(v)
	}
	q.buf.WriteString(")")
	q.suffix(b.suffix)
	return q.buf.String(), q.args, nil
}

type setClause struct {
	column string
	value  any
	expr   string
	isExpr bool
}

type UpdateBuilder struct {
	table string
	sets  []setClause
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression; ? marks in expr bind args in order.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: args, expr: expr, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var q query
	q.buf.WriteString("UPDATE " + b.table + " SET ")
	for i, s := range b.sets {
		if i > 0 {
			q.buf.WriteString(", ")
		}
		q.buf.WriteString(s.column + " = ")
		if s.isExpr {
			exprArgs, _ := s.value.([]any)
			q.expr(s.expr, exprArgs)
			continue
		}
		q.bind(s.value)
	}
	q.where(b.where)
	return q.buf.String(), q.args, nil
}
