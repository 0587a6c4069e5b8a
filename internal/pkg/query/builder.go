// Package query builds parameterized SELECT statements for Cloud Spanner.
// Parameter names are generated, so callers never have to keep SQL
// placeholders and parameter maps in sync by hand.
package query

import (
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction selects the ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Builder accumulates the pieces of a SELECT statement. Methods mutate
// the receiver and return it for chaining.
type Builder struct {
	table      string
	columns    []string
	conditions []Condition
	orderCol   string
	orderDir   Direction
	limit      int64
}

// From starts a builder for the given table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns to retrieve. Without any Select call the
// statement selects *.
func (b *Builder) Select(columns ...string) *Builder {
	b.columns = append(b.columns, columns...)
	return b
}

// Where appends a condition. Conditions combine with AND.
func (b *Builder) Where(cond Condition) *Builder {
	b.conditions = append(b.conditions, cond)
	return b
}

// OrderBy sets the sort column and direction.
func (b *Builder) OrderBy(column string, dir Direction) *Builder {
	b.orderCol = column
	b.orderDir = dir
	return b
}

// Limit caps the number of rows returned. Zero means no limit.
func (b *Builder) Limit(n int64) *Builder {
	b.limit = n
	return b
}

// Build renders the statement with its parameter map.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := map[string]interface{}{}

	sql.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.columns, ", "))
	}
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if len(b.conditions) > 0 {
		sql.WriteString(" WHERE ")
		fragments := make([]string, 0, len(b.conditions))
		for i, cond := range b.conditions {
			fragment, condParams := cond.SQL(i)
			fragments = append(fragments, fragment)
			for name, value := range condParams {
				params[name] = value
			}
		}
		sql.WriteString(strings.Join(fragments, " AND "))
	}

	if b.orderCol != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(b.orderCol)
		if b.orderDir == Desc {
			sql.WriteString(" DESC")
		} else {
			sql.WriteString(" ASC")
		}
	}

	if b.limit > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limit
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}
