package api

import "github.com/goliatone/go-portfolio/pkg/schema"

// Entity is one record of a collection as the remote API represents it: a
// JSON object whose attribute set is dictated by the collection's schema.
// Ids are assigned by the server on create and never change.
type Entity map[string]any

// ID returns the entity identifier as a string. Numeric ids (the common case
// for SQL-backed APIs) are rendered without an exponent; a missing id yields
// the empty string.
func (e Entity) ID() string {
	return schema.StringValue(e["id"])
}

// Clone returns a shallow copy of the entity.
func (e Entity) Clone() Entity {
	if e == nil {
		return nil
	}
	out := make(Entity, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// IDs extracts identifiers from a list of entities, preserving order.
func IDs(entities []Entity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.ID())
	}
	return out
}
