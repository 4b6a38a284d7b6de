package schema

import (
	"fmt"
	"strconv"
)

// Normalize coerces a raw entity (as decoded from JSON) into canonical form
// values for the given field schema: strings for scalar kinds, []string for
// repeatable kinds, map[string]any for key-value fields, and []Section for
// section lists. Missing values take each field's zero value so edit forms
// always start fully populated.
func Normalize(fields []FieldSpec, entity map[string]any) map[string]any {
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		raw, ok := entity[f.Name]
		if !ok || raw == nil {
			values[f.Name] = f.ZeroValue()
			continue
		}
		switch f.Kind {
		case KindList, KindTags, KindFiles:
			values[f.Name] = StringSlice(raw)
		case KindKeyValue:
			values[f.Name] = KeyValueMap(raw)
		case KindSections:
			values[f.Name] = SectionSlice(raw)
		default:
			values[f.Name] = StringValue(raw)
		}
	}
	return values
}

// StringValue renders a scalar form value as a string. Numbers decoded from
// JSON arrive as float64; integral values print without an exponent or
// trailing fraction.
func StringValue(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// StringSlice coerces a decoded JSON array into a string slice.
func StringSlice(raw any) []string {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, StringValue(item))
		}
		return out
	default:
		return []string{}
	}
}

// KeyValueMap coerces a decoded JSON object into a map, returning an empty
// map for any other shape.
func KeyValueMap(raw any) map[string]any {
	if m, ok := raw.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	return map[string]any{}
}

// SectionSlice coerces a decoded JSON array of section blocks into []Section.
// Blocks with unrecognised shapes are dropped rather than failing the whole
// entity.
func SectionSlice(raw any) []Section {
	switch v := raw.(type) {
	case []Section:
		out := make([]Section, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]Section, 0, len(v))
		for _, item := range v {
			block, ok := item.(map[string]any)
			if !ok {
				continue
			}
			section := Section{
				Name: StringValue(block["name"]),
				Kind: SectionKind(StringValue(block["type"])),
			}
			switch content := block["content"].(type) {
			case []any, []string:
				section.Kind = SectionList
				section.Items = StringSlice(content)
			default:
				if section.Kind == "" {
					section.Kind = SectionText
				}
				if section.Kind == SectionList {
					section.Items = []string{}
				} else {
					section.Text = StringValue(content)
				}
			}
			out = append(out, section)
		}
		return out
	default:
		return []Section{}
	}
}
