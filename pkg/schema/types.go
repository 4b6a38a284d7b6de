package schema

import (
	"fmt"
	"strings"
)

// FieldKind is the closed enumeration of editable field kinds. Every renderer
// and form controller switches exhaustively over these values, so adding a
// kind is a compile-surfaced change rather than a stringly-typed convention.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindColor    FieldKind = "color"
	KindList     FieldKind = "list"
	KindTags     FieldKind = "tags"
	KindKeyValue FieldKind = "keyvalue"
	KindSections FieldKind = "sections"
	KindImage    FieldKind = "image"
	KindFiles    FieldKind = "files"
	KindIcon     FieldKind = "icon"
)

// Valid reports whether the kind is one of the known enumeration values.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindTextarea, KindSelect, KindColor, KindList, KindTags,
		KindKeyValue, KindSections, KindImage, KindFiles, KindIcon:
		return true
	default:
		return false
	}
}

// Repeatable reports whether the kind holds a growable list of string rows.
func (k FieldKind) Repeatable() bool {
	switch k {
	case KindList, KindTags, KindFiles:
		return true
	default:
		return false
	}
}

// SelectOption is one enumerated choice for a KindSelect field.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldSpec describes one editable attribute of an entity. Only the
// configuration relevant to the declared kind is consulted: Options for
// selects, Accept for file lists, Icons for icon pickers.
type FieldSpec struct {
	Name        string
	Label       string
	Kind        FieldKind
	Required    bool
	Placeholder string
	Default     any
	Options     []SelectOption
	Accept      string
	Icons       []IconPreset
}

// ZeroValue computes the initial form value for the field when creating a new
// entity: empty collections for repeatable kinds, an empty object for
// key-value fields, otherwise the declared default or the empty string.
func (f FieldSpec) ZeroValue() any {
	switch f.Kind {
	case KindList, KindTags, KindFiles:
		return []string{}
	case KindKeyValue:
		return map[string]any{}
	case KindSections:
		return []Section{}
	case KindImage:
		return ""
	default:
		if f.Default != nil {
			return f.Default
		}
		return ""
	}
}

// Collection describes one schema-driven entity collection: its REST endpoint
// segment, display names, field schema, and whether manual ordering applies.
type Collection struct {
	Name        string
	Singular    string
	Endpoint    string
	Reorderable bool
	Fields      []FieldSpec

	// Card renders a short plain-text summary of one entity for list views.
	// Optional; list UIs fall back to the entity id when nil.
	Card func(map[string]any) string
}

// Field looks up a field spec by name.
func (c Collection) Field(name string) (FieldSpec, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Validate checks structural soundness of the collection descriptor: a
// non-empty endpoint, unique field names, known kinds, and options present on
// every select field.
func (c Collection) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("schema: collection %q: endpoint is required", c.Name)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("schema: collection %q: at least one field is required", c.Name)
	}
	seen := make(map[string]struct{}, len(c.Fields))
	for _, f := range c.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("schema: collection %q: field name is required", c.Name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("schema: collection %q: duplicate field %q", c.Name, name)
		}
		seen[name] = struct{}{}
		if !f.Kind.Valid() {
			return fmt.Errorf("schema: collection %q: field %q has unknown kind %q", c.Name, name, f.Kind)
		}
		if f.Kind == KindSelect && len(f.Options) == 0 {
			return fmt.Errorf("schema: collection %q: select field %q has no options", c.Name, name)
		}
	}
	return nil
}
