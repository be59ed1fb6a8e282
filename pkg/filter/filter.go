// Package filter models query predicates as a small backend-neutral tree.
// Services build trees describing what they want; the repository compiles
// them to the store's query language. That keeps filter-construction logic
// (notably the price-range OR across simple and variant pricing) testable
// without a database.
package filter

import "go.mongodb.org/mongo-driver/bson"

// Node is one predicate in the tree.
type Node interface {
	// BSON compiles the node to a MongoDB filter document.
	BSON() bson.M
}

// Eq matches documents where Field equals Value.
type Eq struct {
	Field string
	Value interface{}
}

func (e Eq) BSON() bson.M { return bson.M{e.Field: e.Value} }

// Regex matches Field against a case-insensitive pattern.
type Regex struct {
	Field   string
	Pattern string
}

func (r Regex) BSON() bson.M {
	return bson.M{r.Field: bson.M{"$regex": r.Pattern, "$options": "i"}}
}

// Range constrains Field to [Min, Max]; either bound may be nil for
// open-ended ranges.
type Range struct {
	Field string
	Min   *float64
	Max   *float64
}

func (r Range) BSON() bson.M {
	bounds := bson.M{}
	if r.Min != nil {
		bounds["$gte"] = *r.Min
	}
	if r.Max != nil {
		bounds["$lte"] = *r.Max
	}
	return bson.M{r.Field: bounds}
}

// In matches documents where Field is any of Values.
type In struct {
	Field  string
	Values interface{}
}

func (i In) BSON() bson.M { return bson.M{i.Field: bson.M{"$in": i.Values}} }

// Exists matches on field presence.
type Exists struct {
	Field string
	Value bool
}

func (e Exists) BSON() bson.M { return bson.M{e.Field: bson.M{"$exists": e.Value}} }

// And is the conjunction of its children. Empty And matches everything.
type And []Node

func (a And) BSON() bson.M {
	switch len(a) {
	case 0:
		return bson.M{}
	case 1:
		return a[0].BSON()
	}
	parts := make([]bson.M, len(a))
	for i, n := range a {
		parts[i] = n.BSON()
	}
	return bson.M{"$and": parts}
}

// Or is the disjunction of its children. Empty Or matches everything.
type Or []Node

func (o Or) BSON() bson.M {
	switch len(o) {
	case 0:
		return bson.M{}
	case 1:
		return o[0].BSON()
	}
	parts := make([]bson.M, len(o))
	for i, n := range o {
		parts[i] = n.BSON()
	}
	return bson.M{"$or": parts}
}
