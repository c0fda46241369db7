package sqlstore

import (
	"strings"
	"time"

	"github.com/dmitrymomot/library/pkg/search"
	"github.com/dmitrymomot/library/svc/library"
)

// selectBuilder accumulates WHERE predicates and their bind arguments.
type selectBuilder struct {
	dialect search.Dialect
	where   []string
	args    []any
}

func (b *selectBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return b.dialect.Placeholder(len(b.args))
}

func (b *selectBuilder) and(predicate string) {
	b.where = append(b.where, predicate)
}

// search adds the free text filter, if any.
func (b *selectBuilder) search(schema search.Schema, token *string) {
	if token == nil {
		return
	}
	f := search.Build(b.dialect, schema, *token, len(b.args)+1)
	b.where = append(b.where, f.SQL)
	b.args = append(b.args, f.Args...)
}

func (b *selectBuilder) whereClause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

// list renders a flat SELECT; the window applies after every filter.
func (b *selectBuilder) list(columns string, schema search.Schema, orderBy string, q library.ListQuery) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(columns)
	sb.WriteByte(' ')
	sb.WriteString(schema.From())
	sb.WriteString(b.whereClause())
	sb.WriteString(" ORDER BY ")
	sb.WriteString(orderBy)
	if q.Window.Bounded() {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.bind(q.Window.Limit))
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.bind(q.Window.Offset))
	}
	return sb.String()
}

func (b *selectBuilder) count(schema search.Schema) string {
	return "SELECT COUNT(*) " + schema.From() + b.whereClause()
}

// loanScope renders the scope predicate over the loans table aliased as table.
func (b *selectBuilder) loanScope(scope library.Scope, now time.Time, table string) string {
	switch scope {
	case library.ScopeCheckedOut:
		return table + ".returned_on IS NULL"
	case library.ScopeOverdue:
		return table + ".returned_on IS NULL AND " + table + ".return_by < " + b.bind(timeArg(b.dialect, startOfDay(now)))
	}
	return ""
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
