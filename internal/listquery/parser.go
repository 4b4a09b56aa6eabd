package listquery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
)

type Operator string

const (
	OpEquals   Operator = "equals"
	OpContains Operator = "contains"
	OpGreater  Operator = "gt"
	OpLess     Operator = "lt"
)

// Predicate is a single condition on a column.
type Predicate struct {
	Column string
	Op     Operator
	Value  any
}

type OrderBy struct {
	Column string
	Desc   bool
}

// Parsed is what the storage layer executes.
type Parsed struct {
	Filters []Predicate
	OrderBy OrderBy
	Skip    int
	Take    int
}

// Field is a filterable column. Min and Max bound numeric values.
type Field struct {
	Column  string
	Numeric bool
	Min     *float64
	Max     *float64
}

// Spec describes the list endpoint of one kind.
type Spec struct {
	SearchParam    string
	SearchColumn   string
	DefaultSort    string
	DefaultPerPage int
	SortFields     map[string]string
	FilterFields   map[string]Field
}

// Parse translates a Query into predicates, order and pagination.
// Sort and filter names are resolved through SortFields and FilterFields.
func Parse(q Query, spec Spec) (Parsed, error) {
	out := Parsed{
		Skip: (q.Page - 1) * q.PerPage,
		Take: q.PerPage,
	}

	if q.Search != "" && spec.SearchColumn != "" {
		out.Filters = append(out.Filters, Predicate{
			Column: spec.SearchColumn,
			Op:     OpContains,
			Value:  strings.ToLower(q.Search),
		})
	}

	if q.FilterName != "" {
		p, err := parseFilter(q, spec)
		if err != nil {
			return Parsed{}, err
		}
		out.Filters = append(out.Filters, p)
	}

	out.OrderBy = OrderBy{Column: spec.DefaultSort, Desc: q.AscOrDesc == "desc"}
	if q.SortBy != "" {
		col, ok := spec.SortFields[q.SortBy]
		if !ok {
			return Parsed{}, apperrors.BadRequest(fmt.Sprintf("cannot sort by %q", q.SortBy))
		}
		out.OrderBy.Column = col
	}

	return out, nil
}

func parseFilter(q Query, spec Spec) (Predicate, error) {
	field, ok := spec.FilterFields[q.FilterName]
	if !ok {
		return Predicate{}, apperrors.BadRequest(fmt.Sprintf("cannot filter by %q", q.FilterName))
	}

	op := operatorOf(q.FilterOperator)
	p := Predicate{Column: field.Column, Op: op}

	if op == OpContains {
		p.Value = strings.ToLower(q.FilterValue)
		return p, nil
	}

	if !field.Numeric {
		p.Value = strings.ToLower(q.FilterValue)
		return p, nil
	}

	v, err := strconv.ParseFloat(q.FilterValue, 64)
	if err != nil {
		return Predicate{}, apperrors.BadRequest(fmt.Sprintf("filter value for %q must be a number", q.FilterName))
	}
	if (field.Min != nil && v < *field.Min) || (field.Max != nil && v > *field.Max) {
		return Predicate{}, apperrors.BadRequest(fmt.Sprintf("filter value for %q is out of range", q.FilterName))
	}
	p.Value = v
	return p, nil
}

func operatorOf(s string) Operator {
	switch s {
	case "contains":
		return OpContains
	case ">":
		return OpGreater
	case "<":
		return OpLess
	default:
		return OpEquals
	}
}

// Key is a stable representation used in cache keys.
func (p Parsed) Key() string {
	var b strings.Builder
	for _, f := range p.Filters {
		fmt.Fprintf(&b, "%s:%s:%v|", f.Column, f.Op, f.Value)
	}
	dir := "asc"
	if p.OrderBy.Desc {
		dir = "desc"
	}
	fmt.Fprintf(&b, "o=%s:%s|s=%d|t=%d", p.OrderBy.Column, dir, p.Skip, p.Take)
	return b.String()
}

// Bound is a helper for Field.Min and Field.Max.
func Bound(v float64) *float64 { return &v }
