package query

import (
	"fmt"
	"strconv"
	"strings"
)

// predicate compares one or more columns against a single argument. Several
// columns are joined with OR and parenthesised.
type predicate struct {
	columns []string
	op      string
	arg     any
}

// Builder assembles SELECT statements over a ProjectionMap. Predicates are
// ANDed together and numbered $1..$n in the order they were added.
type Builder struct {
	projection  *ProjectionMap
	predicates  []predicate
	orderBy     []SortField
	defaultSort []SortField
}

// NewBuilder starts a query over projection. defaultSort is used when
// OrderByFields leaves no ordering.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// BuildCount renders SELECT COUNT(*) with the current predicates.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.where()
	return "SELECT COUNT(*) FROM " + b.projection.Table() + where, args
}

// BuildPage renders the projected SELECT for a 1-based page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.where()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.projection.Columns())
	sb.WriteString(" FROM ")
	sb.WriteString(b.projection.Table())
	sb.WriteString(where)
	sb.WriteString(b.order())
	fmt.Fprintf(&sb, " LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)

	return sb.String(), args
}

// BuildSingle renders the projected SELECT of the row whose idField equals id.
// Predicates are ignored.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(), b.projection.Table(), b.projection.Column(idField),
	), []any{id}
}

// OrderByFields replaces the ordering. Fields absent from the projection are
// dropped so client input never reaches the SQL text.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	var kept []SortField
	for _, f := range fields {
		if b.projection.Has(f.Field) {
			kept = append(kept, f)
		}
	}
	if len(kept) > 0 {
		b.orderBy = kept
	}
	return b
}

// WhereContains matches field case-insensitively against *value. A nil or
// empty value adds nothing.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.add("ILIKE", "%"+*value+"%", field)
}

// WhereEquals matches field against value. A nil value adds nothing.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if value == nil {
		return b
	}
	return b.add("=", value, field)
}

// WhereSearch matches *search case-insensitively against any of fields.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}
	return b.add("ILIKE", "%"+*search+"%", fields...)
}

func (b *Builder) add(op string, arg any, fields ...string) *Builder {
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = b.projection.Column(f)
	}
	b.predicates = append(b.predicates, predicate{columns: columns, op: op, arg: arg})
	return b
}

func (b *Builder) where() (string, []any) {
	if len(b.predicates) == 0 {
		return "", nil
	}

	var args []any
	clauses := make([]string, len(b.predicates))

	for i, p := range b.predicates {
		terms := make([]string, len(p.columns))
		for j, col := range p.columns {
			args = append(args, p.arg)
			terms[j] = col + " " + p.op + " $" + strconv.Itoa(len(args))
		}

		if len(terms) == 1 {
			clauses[i] = terms[0]
		} else {
			clauses[i] = "(" + strings.Join(terms, " OR ") + ")"
		}
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (b *Builder) order() string {
	fields := b.orderBy
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	terms := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		terms[i] = b.projection.Column(f.Field) + " " + dir
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}
