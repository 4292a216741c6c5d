package firemodel

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
)

// BuildQuery folds filters onto base in order, then orders in order, then
// applies limit when it is positive. No-op filters and orders are skipped.
// It has no side effects beyond calling the refinement methods of base.
func BuildQuery(base interfaces.Query, filters []Filter, orders []Order, limit int) interfaces.Query {
	q := base
	for _, f := range filters {
		if f == nil {
			continue
		}
		q = f.Apply(q)
	}
	for _, o := range orders {
		q = o.Apply(q)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

// QueryKey returns the listener key of the query BuildQuery would produce
// for the same arguments on the collection at path. Identical inputs always
// give identical keys, and no-op filters do not contribute, so a query with a
// no-op filter shares its key with the same query without it.
func QueryKey(path string, filters []Filter, orders []Order, limit int, group bool) string {
	prefix := "query:"
	if group {
		prefix = "group:"
	}

	parts := []string{prefix + strconv.Quote(path)}
	for _, f := range filters {
		if f == nil {
			continue
		}
		if k := f.Key(); k != "" {
			parts = append(parts, k)
		}
	}
	for _, o := range orders {
		if k := o.Key(); k != "" {
			parts = append(parts, k)
		}
	}
	if limit > 0 {
		parts = append(parts, "limit:"+strconv.Itoa(limit))
	}
	return strings.Join(parts, "|")
}

// DocumentKey returns the listener key of a document listener on ref.
func DocumentKey(ref *Reference) string {
	return "doc:" + ref.Path()
}

// QueryOption configures reads: Get, List, Listen and ListenQuery. Filter,
// order and limit options only affect List and ListenQuery.
type QueryOption func(*queryConfig)

type queryConfig struct {
	filters      []Filter
	orders       []Order
	limit        int
	group        bool
	includeCache bool
}

func newQueryConfig(opts []QueryOption) *queryConfig {
	cfg := &queryConfig{includeCache: true}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *queryConfig) source() interfaces.Source {
	if c.includeCache {
		return interfaces.SourceDefault
	}
	return interfaces.SourceServer
}

// Where appends filters.
func Where(filters ...Filter) QueryOption {
	return func(c *queryConfig) {
		c.filters = append(c.filters, filters...)
	}
}

// OrderBy appends orderings.
func OrderBy(orders ...Order) QueryOption {
	return func(c *queryConfig) {
		c.orders = append(c.orders, orders...)
	}
}

// Limit caps the number of results. Zero or negative means no limit.
func Limit(n int) QueryOption {
	return func(c *queryConfig) {
		c.limit = n
	}
}

// CollectionGroup queries every collection with the model's collection
// name, at any depth, instead of a single collection.
func CollectionGroup() QueryOption {
	return func(c *queryConfig) {
		c.group = true
	}
}

// ServerOnly excludes locally cached data. One-shot reads go to the server;
// listeners skip snapshots served from cache.
func ServerOnly() QueryOption {
	return func(c *queryConfig) {
		c.includeCache = false
	}
}
