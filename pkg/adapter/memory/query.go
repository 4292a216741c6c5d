package memory

import (
	"context"
	"reflect"
	"slices"
	"strings"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type clause struct {
	path  string
	op    interfaces.Operator
	value any
}

type ordering struct {
	path string
	dir  interfaces.Direction
}

// query is immutable; refinements copy the clause slices.
type query struct {
	backend    *Backend
	collection string
	group      bool
	where      []clause
	orders     []ordering
	limit      int
}

var _ interfaces.Query = (*query)(nil)

func (q *query) clone() *query {
	c := *q
	c.where = slices.Clone(q.where)
	c.orders = slices.Clone(q.orders)
	return &c
}

func (q *query) Where(path string, op interfaces.Operator, value any) interfaces.Query {
	c := q.clone()
	c.where = append(c.where, clause{path: path, op: op, value: value})
	return c
}

func (q *query) OrderBy(path string, dir interfaces.Direction) interfaces.Query {
	c := q.clone()
	c.orders = append(c.orders, ordering{path: path, dir: dir})
	return c
}

func (q *query) Limit(n int) interfaces.Query {
	c := q.clone()
	c.limit = n
	return c
}

func (q *query) Documents(ctx context.Context, _ interfaces.Source) (*interfaces.QuerySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "context done before query")
	}

	q.backend.mu.Lock()
	defer q.backend.mu.Unlock()
	if q.backend.closed {
		return nil, ErrClosed
	}

	return q.runLocked(interfaces.Metadata{}), nil
}

// runLocked evaluates the query against the backend's current documents.
func (q *query) runLocked(md interfaces.Metadata) *interfaces.QuerySnapshot {
	var hits []*document
	for _, doc := range q.backend.docs {
		if q.matches(doc) {
			hits = append(hits, doc)
		}
	}

	slices.SortStableFunc(hits, func(a, b *document) int {
		for _, o := range q.orders {
			av, _ := lookup(a.data, o.path)
			bv, _ := lookup(b.data, o.path)
			c := compareValues(av, bv)
			if o.dir == interfaces.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return strings.Compare(a.ref.Path(), b.ref.Path())
	})

	if q.limit > 0 && len(hits) > q.limit {
		hits = hits[:q.limit]
	}

	snap := &interfaces.QuerySnapshot{Metadata: md}
	for _, doc := range hits {
		snap.Documents = append(snap.Documents, doc.snapshot(md))
	}
	return snap
}

func (q *query) inScope(doc *document) bool {
	if q.group {
		return doc.ref.CollectionName() == q.collection
	}
	return doc.ref.Parent.Path() == q.collection
}

// matches applies the collection scope and where clauses. Documents missing
// an ordered field are excluded, as Firestore does.
func (q *query) matches(doc *document) bool {
	if doc == nil || !q.inScope(doc) {
		return false
	}

	for _, w := range q.where {
		v, ok := lookup(doc.data, w.path)
		if !ok {
			return false
		}

		switch w.op {
		case interfaces.OpEqual:
			if !equalValues(v, w.value) {
				return false
			}
		case interfaces.OpGreaterThan:
			if !orderable(v, w.value) || compareValues(v, w.value) <= 0 {
				return false
			}
		case interfaces.OpLessThan:
			if !orderable(v, w.value) || compareValues(v, w.value) >= 0 {
				return false
			}
		case interfaces.OpIn:
			if !slices.ContainsFunc(asList(w.value), func(x any) bool { return equalValues(v, x) }) {
				return false
			}
		default:
			return false
		}
	}

	for _, o := range q.orders {
		if _, ok := lookup(doc.data, o.path); !ok {
			return false
		}
	}
	return true
}

// lookup resolves a dotted field path.
func lookup(data map[string]any, path string) (any, bool) {
	cur := any(data)
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
