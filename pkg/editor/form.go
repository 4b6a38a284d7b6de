package editor

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/api"
	"github.com/goliatone/go-portfolio/pkg/schema"
)

// Form is the in-memory editing state for one entity. Values are keyed by
// field name and shaped per field kind: strings for single controls, string
// slices for repeatable rows, maps for key-value fields, section slices for
// section blocks.
type Form struct {
	collection schema.Collection
	entityID   string
	values     map[string]any

	// rawJSON keeps the literal text typed into each key-value field so a
	// half-edited document survives re-rendering while the last parsed value
	// stays authoritative.
	rawJSON map[string]string

	// iconModes holds explicit picker-mode overrides. They live only as long
	// as the Form itself, so a reopened editor re-infers from the value.
	iconModes map[string]schema.IconMode
}

// NewForm builds editing state for a new entity: repeatable kinds start
// empty, everything else starts at the field default.
func NewForm(coll schema.Collection) *Form {
	values := make(map[string]any, len(coll.Fields))
	for _, f := range coll.Fields {
		values[f.Name] = f.ZeroValue()
	}
	return &Form{
		collection: coll,
		values:     values,
		rawJSON:    map[string]string{},
		iconModes:  map[string]schema.IconMode{},
	}
}

// EditForm builds editing state pre-populated from an existing entity.
// Missing attributes fall back to the per-kind zero value.
func EditForm(coll schema.Collection, entity api.Entity) *Form {
	form := &Form{
		collection: coll,
		entityID:   entity.ID(),
		values:     schema.Normalize(coll.Fields, entity),
		rawJSON:    map[string]string{},
		iconModes:  map[string]schema.IconMode{},
	}
	return form
}

// EntityID returns the bound entity id, empty for a create form.
func (f *Form) EntityID() string { return f.entityID }

// IsNew reports whether the form creates a new entity on save.
func (f *Form) IsNew() bool { return f.entityID == "" }

// Collection returns the schema the form renders.
func (f *Form) Collection() schema.Collection { return f.collection }

// Fields returns the field schema in declaration order.
func (f *Form) Fields() []schema.FieldSpec { return f.collection.Fields }

// Value returns the current in-memory value for a field.
func (f *Form) Value(name string) any { return f.values[name] }

// StringValue returns the field value rendered as a string, for single-control
// kinds.
func (f *Form) StringValue(name string) string {
	return schema.StringValue(f.values[name])
}

// SetString binds a single-control value: text, textarea, select, color,
// image, or icon.
func (f *Form) SetString(name, value string) {
	if _, ok := f.collection.Field(name); !ok {
		return
	}
	f.values[name] = value
}

// Rows returns the string rows of a repeatable field.
func (f *Form) Rows(name string) []string {
	return schema.StringSlice(f.values[name])
}

// AddRow appends one empty row to a repeatable field.
func (f *Form) AddRow(name string) {
	f.values[name] = append(f.Rows(name), "")
}

// SetRow replaces the row at index i. Out-of-range indices are ignored.
func (f *Form) SetRow(name string, i int, value string) {
	rows := f.Rows(name)
	if i < 0 || i >= len(rows) {
		return
	}
	rows[i] = value
	f.values[name] = rows
}

// SetRows replaces every row of a repeatable field.
func (f *Form) SetRows(name string, rows []string) {
	field, ok := f.collection.Field(name)
	if !ok || !field.Kind.Repeatable() {
		return
	}
	if rows == nil {
		rows = []string{}
	}
	f.values[name] = rows
}

// RemoveRow deletes the row at index i. Out-of-range indices are ignored.
func (f *Form) RemoveRow(name string, i int) {
	rows := f.Rows(name)
	if i < 0 || i >= len(rows) {
		return
	}
	f.values[name] = append(rows[:i:i], rows[i+1:]...)
}

// RawJSON returns the literal text last typed into a key-value field. Before
// any edit it renders the current parsed value.
func (f *Form) RawJSON(name string) string {
	if raw, ok := f.rawJSON[name]; ok {
		return raw
	}
	encoded, err := json.MarshalIndent(schema.KeyValueMap(f.values[name]), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

// SetRawJSON records every keystroke of a key-value field and parses it
// optimistically: valid JSON objects replace the in-memory value, anything
// else silently keeps the last parse.
func (f *Form) SetRawJSON(name, raw string) {
	f.rawJSON[name] = raw
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return
	}
	f.values[name] = parsed
}

// Sections returns the section blocks of a sections field.
func (f *Form) Sections(name string) []schema.Section {
	return schema.SectionSlice(f.values[name])
}

// AddSection appends an empty text section.
func (f *Form) AddSection(name string) {
	f.values[name] = append(f.Sections(name), schema.Section{Kind: schema.SectionText})
}

// RemoveSection deletes the block at index i.
func (f *Form) RemoveSection(name string, i int) {
	blocks := f.Sections(name)
	if i < 0 || i >= len(blocks) {
		return
	}
	f.values[name] = append(blocks[:i:i], blocks[i+1:]...)
}

func (f *Form) updateSection(name string, i int, fn func(*schema.Section)) {
	blocks := f.Sections(name)
	if i < 0 || i >= len(blocks) {
		return
	}
	fn(&blocks[i])
	f.values[name] = blocks
}

// SetSectionName renames the block at index i.
func (f *Form) SetSectionName(name string, i int, title string) {
	f.updateSection(name, i, func(s *schema.Section) { s.Name = title })
}

// SetSectionKind retags the block at index i. Switching between text and
// list resets the content to the new kind's empty value.
func (f *Form) SetSectionKind(name string, i int, kind schema.SectionKind) {
	f.updateSection(name, i, func(s *schema.Section) { s.SetKind(kind) })
}

// SetSectionText replaces a text block's content.
func (f *Form) SetSectionText(name string, i int, text string) {
	f.updateSection(name, i, func(s *schema.Section) { s.Text = text })
}

// AddSectionItem appends one empty item to a list block.
func (f *Form) AddSectionItem(name string, i int) {
	f.updateSection(name, i, func(s *schema.Section) { s.Items = append(s.Items, "") })
}

// SetSectionItem replaces the item at index j of a list block.
func (f *Form) SetSectionItem(name string, i, j int, value string) {
	f.updateSection(name, i, func(s *schema.Section) {
		if j < 0 || j >= len(s.Items) {
			return
		}
		s.Items[j] = value
	})
}

// SetSectionItems replaces every item of a list block.
func (f *Form) SetSectionItems(name string, i int, items []string) {
	f.updateSection(name, i, func(s *schema.Section) {
		if items == nil {
			items = []string{}
		}
		s.Items = items
	})
}

// RemoveSectionItem deletes the item at index j of a list block.
func (f *Form) RemoveSectionItem(name string, i, j int) {
	f.updateSection(name, i, func(s *schema.Section) {
		if j < 0 || j >= len(s.Items) {
			return
		}
		s.Items = append(s.Items[:j:j], s.Items[j+1:]...)
	})
}

// ApplyUpload writes a stored-file reference into form state: single-image
// fields take the URL as their value, multi-file fields append it.
func (f *Form) ApplyUpload(name, url string) {
	field, ok := f.collection.Field(name)
	if !ok {
		return
	}
	switch field.Kind {
	case schema.KindImage:
		f.values[name] = url
	case schema.KindFiles:
		f.values[name] = append(f.Rows(name), url)
	}
}

// IconMode returns the picker mode for an icon field: the session override
// when one was chosen, otherwise the mode inferred from the value's shape.
func (f *Form) IconMode(name string) schema.IconMode {
	if mode, ok := f.iconModes[name]; ok {
		return mode
	}
	field, _ := f.collection.Field(name)
	presets := field.Icons
	if len(presets) == 0 {
		presets = schema.BuiltinIcons()
	}
	return schema.InferIconMode(f.StringValue(name), presets)
}

// SetIconMode records an explicit picker-mode choice for this editing
// session.
func (f *Form) SetIconMode(name string, mode schema.IconMode) {
	f.iconModes[name] = mode
}

// SetIcon binds an icon value. Raw SVG input is sanitized before it is
// stored; curated preset markup is kept byte-for-byte so mode inference
// keeps recognizing it.
func (f *Form) SetIcon(name, value string) {
	if strings.HasPrefix(strings.TrimSpace(value), "<svg") {
		field, _ := f.collection.Field(name)
		presets := field.Icons
		if len(presets) == 0 {
			presets = schema.BuiltinIcons()
		}
		if _, ok := schema.MatchPreset(value, presets); !ok {
			value = schema.SanitizeIcon(value)
		}
	}
	f.SetString(name, value)
}

// Values returns a copy of the current field values, shaped for submission.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}
