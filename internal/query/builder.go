// Package query assembles SELECT statements from a fixed set of fragments.
//
// Identifiers (table, column and join names) are validated against a strict
// pattern and interpolated; they must come from compile-time constants or
// whitelists, never from request input. Values are always bound as
// placeholders.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mdobak/go-xerrors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// Direction is a validated ORDER BY direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// ParseDirection accepts the four literal spellings accepted on the wire.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "asc", "ASC":
		return Ascending, true
	case "desc", "DESC":
		return Descending, true
	default:
		return "", false
	}
}

// SelectBuilder accumulates the fragments of a single SELECT statement.
// The zero value is not usable, start with Select.
type SelectBuilder struct {
	table      string
	columns    []string
	joins      []string
	conditions []string
	whereArgs  []any
	groupBy    []string
	orderBy    string
	limit      *int64
	offset     *int64
	err        error
}

func Select(table string) *SelectBuilder {
	b := &SelectBuilder{table: table}
	b.checkIdentifier(table)
	return b
}

// Columns adds plain column identifiers to the select list.
func (b *SelectBuilder) Columns(columns ...string) *SelectBuilder {
	for _, column := range columns {
		b.checkIdentifier(column)
	}
	b.columns = append(b.columns, columns...)
	return b
}

// ColumnExpr adds a raw select expression such as an aggregate. The
// expression must be a compile-time constant.
func (b *SelectBuilder) ColumnExpr(expr string) *SelectBuilder {
	b.columns = append(b.columns, expr)
	return b
}

// LeftJoin adds a LEFT JOIN with a constant ON condition.
func (b *SelectBuilder) LeftJoin(table, on string) *SelectBuilder {
	b.checkIdentifier(table)
	b.joins = append(b.joins, fmt.Sprintf("LEFT JOIN %s ON %s", table, on))
	return b
}

// Where adds an equality condition on column against a bound value.
// Conditions are combined with AND.
func (b *SelectBuilder) Where(column string, value any) *SelectBuilder {
	b.checkIdentifier(column)
	b.whereArgs = append(b.whereArgs, value)
	b.conditions = append(b.conditions, fmt.Sprintf("%s = $%d", column, len(b.whereArgs)))
	return b
}

func (b *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	for _, column := range columns {
		b.checkIdentifier(column)
	}
	b.groupBy = append(b.groupBy, columns...)
	return b
}

func (b *SelectBuilder) OrderBy(column string, direction Direction) *SelectBuilder {
	b.checkIdentifier(column)
	if direction != Ascending && direction != Descending {
		b.fail(xerrors.Newf("query: invalid order direction %q", direction))
		return b
	}
	b.orderBy = fmt.Sprintf("%s %s", column, direction)
	return b
}

func (b *SelectBuilder) Limit(limit int64) *SelectBuilder {
	b.limit = &limit
	return b
}

func (b *SelectBuilder) Offset(offset int64) *SelectBuilder {
	b.offset = &offset
	return b
}

// Build renders the page query and its bound arguments.
func (b *SelectBuilder) Build() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if len(b.columns) == 0 {
		return "", nil, xerrors.New("query: no columns selected")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(b.columns, ", "), b.table)
	for _, join := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(join)
	}
	args := b.appendWhere(&sb)
	if len(b.groupBy) > 0 {
		fmt.Fprintf(&sb, " GROUP BY %s", strings.Join(b.groupBy, ", "))
	}
	if b.orderBy != "" {
		fmt.Fprintf(&sb, " ORDER BY %s", b.orderBy)
	}
	if b.limit != nil {
		args = append(args, *b.limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if b.offset != nil {
		args = append(args, *b.offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	return sb.String(), args, nil
}

// BuildCount renders a COUNT(*) query over the same table and WHERE
// predicate as Build, without joins, grouping or pagination. Sharing the
// predicate keeps the page and the reported total consistent with each
// other.
func (b *SelectBuilder) BuildCount() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT COUNT(*) FROM %s", b.table)
	args := b.appendWhere(&sb)

	return sb.String(), args, nil
}

func (b *SelectBuilder) appendWhere(sb *strings.Builder) []any {
	if len(b.conditions) > 0 {
		fmt.Fprintf(sb, " WHERE %s", strings.Join(b.conditions, " AND "))
	}
	args := make([]any, len(b.whereArgs))
	copy(args, b.whereArgs)
	return args
}

func (b *SelectBuilder) checkIdentifier(identifier string) {
	if !identifierPattern.MatchString(identifier) {
		b.fail(xerrors.Newf("query: invalid identifier %q", identifier))
	}
}

func (b *SelectBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
