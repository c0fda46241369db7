package search

import (
	"strconv"
	"strings"
)

// Dialect selects the SQL flavour of generated predicates.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Placeholder returns the n-th (1-based) bind parameter of the dialect.
func (d Dialect) Placeholder(n int) string {
	if d == SQLite {
		return "?" + strconv.Itoa(n)
	}
	return "$" + strconv.Itoa(n)
}

func (d Dialect) like() string {
	if d == SQLite {
		// SQLite LIKE folds ASCII letters only.
		return "LIKE"
	}
	return "ILIKE"
}

// dateText renders the calendar date part of a timestamp column as YYYY-MM-DD.
func (d Dialect) dateText(expr string) string {
	if d == SQLite {
		// timestamps are stored as ISO-8601 text
		return "substr(" + expr + ", 1, 10)"
	}
	return "to_char(" + expr + ", 'YYYY-MM-DD')"
}

// ColumnKind tells the builder how to turn a column into searchable text.
type ColumnKind uint8

const (
	KindText ColumnKind = iota
	KindNumber
	KindDate
)

// Column is a searchable expression.
type Column struct {
	Exprs []string // several expressions are joined with a single space
	Kind  ColumnKind
}

// Text is a text column.
func Text(expr string) Column { return Column{Exprs: []string{expr}, Kind: KindText} }

// Number is a numeric column compared through its text form.
func Number(expr string) Column { return Column{Exprs: []string{expr}, Kind: KindNumber} }

// Date is a timestamp column compared through its calendar date only.
func Date(expr string) Column { return Column{Exprs: []string{expr}, Kind: KindDate} }

// Concat matches text columns joined with a space as a single unit,
// e.g. "first last".
func Concat(exprs ...string) Column { return Column{Exprs: exprs, Kind: KindText} }

func (c Column) sql(d Dialect) string {
	switch c.Kind {
	case KindNumber:
		return "CAST(" + c.Exprs[0] + " AS TEXT)"
	case KindDate:
		return d.dateText(c.Exprs[0])
	}
	if len(c.Exprs) == 1 {
		return c.Exprs[0]
	}
	return "(" + strings.Join(c.Exprs, " || ' ' || ") + ")"
}

// Join is a one-to-one association reachable through a foreign key.
type Join struct {
	Table string
	On    string
}

// Schema describes a searchable entity.
type Schema struct {
	Table   string
	Joins   []Join
	Columns []Column
}

// From renders the FROM clause with every join. Callers compose a flat
// SELECT around it so limit and offset apply after the joined filter.
func (s Schema) From() string {
	var b strings.Builder
	b.WriteString("FROM ")
	b.WriteString(s.Table)
	for _, j := range s.Joins {
		b.WriteString(" JOIN ")
		b.WriteString(j.Table)
		b.WriteString(" ON ")
		b.WriteString(j.On)
	}
	return b.String()
}

// Filter is a parenthesized boolean SQL expression with its bind arguments.
type Filter struct {
	SQL  string
	Args []any
}

// matchNothing is used for empty tokens.
const matchNothing = "(1 = 0)"

// Build returns an OR of case-insensitive substring predicates over every
// column of the schema. The token is bound once, as parameter number first.
// An empty token yields a filter matching zero rows.
//
// On SQLite only ASCII letters match case-insensitively: LIKE and lower()
// fold nothing beyond A-Z without the ICU extension, so "émile" does not
// match "Émile". Postgres ILIKE folds per the database collation.
func Build(d Dialect, s Schema, token string, first int) Filter {
	if token == "" || len(s.Columns) == 0 {
		return Filter{SQL: matchNothing}
	}

	ph := d.Placeholder(first)
	op := d.like()
	parts := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		parts = append(parts, c.sql(d)+" "+op+" "+ph+` ESCAPE '\'`)
	}

	return Filter{
		SQL:  "(" + strings.Join(parts, " OR ") + ")",
		Args: []any{Contains(token)},
	}
}

// Contains returns a LIKE pattern matching token literally anywhere.
func Contains(token string) string {
	return "%" + escapeLike(token) + "%"
}

// escapeLike escapes SQL LIKE wildcards (%, _) and the escape char (\).
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
