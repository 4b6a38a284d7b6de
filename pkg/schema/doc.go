// Package schema defines the declarative field taxonomy that drives the
// portfolio admin: the closed FieldKind enumeration, per-field specs,
// collection descriptors, the polymorphic section block format, and the
// curated icon library with mode inference and SVG sanitizing. Collections
// can be declared in Go (see components/collections) or derived from an
// OpenAPI document via CollectionsFromDocument.
package schema
