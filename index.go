package firemodel

import "github.com/m-mizutani/firemodel/pkg/domain/model"

// RequiredIndex returns the composite index Firestore needs to serve a
// query with filters and orders, and false if single-field indexes are
// enough. Equality and membership fields come first, then the range field
// unless it is ordered explicitly, then the orders.
func RequiredIndex(filters []Filter, orders []Order, group bool) (Index, bool) {
	var (
		fields   []IndexField
		seen     = map[string]bool{}
		equality = true
	)
	add := func(name, order string) {
		if seen[name] {
			return
		}
		seen[name] = true
		fields = append(fields, IndexField{Name: name, Order: order})
	}

	var ranges []string
	for _, f := range filters {
		switch f := f.(type) {
		case Equal:
			if f.valid() {
				add(f.Field, model.OrderAscending)
			}
		case Contains:
			if f.valid() {
				add(f.Field, model.OrderAscending)
			}
		case Range:
			if f.valid() {
				ranges = append(ranges, f.Field)
				equality = false
			}
		}
	}

	ordered := map[string]bool{}
	for _, o := range orders {
		if o.Field != "" {
			ordered[o.Field] = true
			equality = false
		}
	}
	for _, name := range ranges {
		if !ordered[name] {
			add(name, model.OrderAscending)
		}
	}
	for _, o := range orders {
		if o.Field == "" {
			continue
		}
		order := model.OrderAscending
		if !o.Ascending {
			order = model.OrderDescending
		}
		add(o.Field, order)
	}

	// equality-only queries are served by merging single-field indexes
	if len(fields) < 2 || equality {
		return Index{}, false
	}

	scope := model.QueryScopeCollection
	if group {
		scope = model.QueryScopeCollectionGroup
	}
	return Index{Fields: fields, QueryScope: scope}, true
}
