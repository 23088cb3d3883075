package store

import "strings"

// FilterOp enumerates the comparisons a query filter supports.
type FilterOp string

const (
	OpEq       FilterOp = "=="
	OpGte      FilterOp = ">="
	OpLte      FilterOp = "<="
	OpContains FilterOp = "contains" // string array membership
)

// Filter matches one top-level document field.
type Filter struct {
	Field string
	Op    FilterOp
	Value string
}

// Query selects documents from one collection by field filters, applied
// in Go after decoding. Collections are small enough that a scan is fine.
type Query struct {
	collection string
	filters    []Filter
	limit      int
}

func NewQuery(collection string) *Query {
	return &Query{collection: collection}
}

func (q *Query) Where(field string, op FilterOp, value string) *Query {
	q.filters = append(q.filters, Filter{Field: field, Op: op, Value: value})
	return q
}

func (q *Query) WhereEq(field, value string) *Query {
	return q.Where(field, OpEq, value)
}

func (q *Query) Limit(limit int) *Query {
	q.limit = limit
	return q
}

// matches evaluates all filters against a decoded document.
func (q *Query) matches(doc map[string]any) bool {
	for _, f := range q.filters {
		if !matchFilter(doc, f) {
			return false
		}
	}
	return true
}

func matchFilter(doc map[string]any, f Filter) bool {
	raw, ok := doc[f.Field]
	if !ok {
		return false
	}
	switch f.Op {
	case OpEq:
		s, ok := raw.(string)
		return ok && s == f.Value
	case OpGte:
		s, ok := raw.(string)
		return ok && strings.Compare(s, f.Value) >= 0
	case OpLte:
		s, ok := raw.(string)
		return ok && strings.Compare(s, f.Value) <= 0
	case OpContains:
		arr, ok := raw.([]any)
		if !ok {
			return false
		}
		for _, v := range arr {
			if s, ok := v.(string); ok && s == f.Value {
				return true
			}
		}
		return false
	}
	return false
}
