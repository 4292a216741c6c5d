package firemodel

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
)

// Filter narrows a query. The set of filters is closed: Equal, Range and
// Contains. A filter with an empty field path, or with operands that cannot
// form a meaningful condition, is a no-op: Apply returns the query
// unchanged and Key returns "".
type Filter interface {
	Apply(q interfaces.Query) interfaces.Query
	Key() string

	isFilter()
}

// Equal matches documents whose Field equals Value.
type Equal struct {
	Field string
	Value Value
}

// Range matches documents whose Field lies strictly between Min and Max.
// Either bound may be left unset for an open range. When both are set they
// must be of comparable kinds with Min < Max, otherwise the filter is a no-op.
type Range struct {
	Field string
	Min   Value
	Max   Value
}

// Contains matches documents whose Field equals one of Values.
type Contains struct {
	Field  string
	Values []Value
}

// Order sorts query results by Field.
type Order struct {
	Field     string
	Ascending bool
}

func (Equal) isFilter()    {}
func (Range) isFilter()    {}
func (Contains) isFilter() {}

func (f Equal) valid() bool {
	return f.Field != "" && f.Value.Valid()
}

func (f Equal) Apply(q interfaces.Query) interfaces.Query {
	if !f.valid() {
		return q
	}
	return q.Where(f.Field, interfaces.OpEqual, f.Value.Native())
}

func (f Equal) Key() string {
	if !f.valid() {
		return ""
	}
	return strconv.Quote(f.Field) + "==" + f.Value.String()
}

func (f Range) valid() bool {
	if f.Field == "" {
		return false
	}
	switch {
	case f.Min.Valid() && f.Max.Valid():
		c, ok := f.Min.Compare(f.Max)
		return ok && c < 0
	case f.Min.Valid():
		_, ok := f.Min.Compare(f.Min)
		return ok
	case f.Max.Valid():
		_, ok := f.Max.Compare(f.Max)
		return ok
	}
	return false
}

func (f Range) Apply(q interfaces.Query) interfaces.Query {
	if !f.valid() {
		return q
	}
	if f.Min.Valid() {
		q = q.Where(f.Field, interfaces.OpGreaterThan, f.Min.Native())
	}
	if f.Max.Valid() {
		q = q.Where(f.Field, interfaces.OpLessThan, f.Max.Native())
	}
	return q
}

func (f Range) Key() string {
	if !f.valid() {
		return ""
	}
	var parts []string
	if f.Min.Valid() {
		parts = append(parts, strconv.Quote(f.Field)+">"+f.Min.String())
	}
	if f.Max.Valid() {
		parts = append(parts, strconv.Quote(f.Field)+"<"+f.Max.String())
	}
	return strings.Join(parts, "&")
}

func (f Contains) valid() bool {
	if f.Field == "" || len(f.Values) == 0 {
		return false
	}
	for _, v := range f.Values {
		if !v.Valid() {
			return false
		}
	}
	return true
}

func (f Contains) Apply(q interfaces.Query) interfaces.Query {
	if !f.valid() {
		return q
	}
	return q.Where(f.Field, interfaces.OpIn, List(f.Values...).Native())
}

func (f Contains) Key() string {
	if !f.valid() {
		return ""
	}
	return strconv.Quote(f.Field) + " in " + List(f.Values...).String()
}

// Apply adds the ordering to q, or returns q unchanged if Field is empty.
func (o Order) Apply(q interfaces.Query) interfaces.Query {
	if o.Field == "" {
		return q
	}
	return q.OrderBy(o.Field, o.direction())
}

// Key returns the canonical form of the ordering, or "" if it is a no-op.
func (o Order) Key() string {
	if o.Field == "" {
		return ""
	}
	return "order:" + strconv.Quote(o.Field) + ":" + o.direction().String()
}

func (o Order) direction() interfaces.Direction {
	if o.Ascending {
		return interfaces.Asc
	}
	return interfaces.Desc
}

// Asc orders by field ascending.
func Asc(field string) Order { return Order{Field: field, Ascending: true} }

// Desc orders by field descending.
func Desc(field string) Order { return Order{Field: field} }
