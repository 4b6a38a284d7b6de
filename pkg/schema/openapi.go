package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPI extension keys understood by the collection builder. They let an
// API document pin a field to a specific editor kind or name a collection
// explicitly instead of relying on inference from the path.
const (
	kindExtensionKey       = "x-portfolio-kind"
	acceptExtensionKey     = "x-portfolio-accept"
	collectionExtensionKey = "x-portfolio-collection"
)

// CollectionsFromDocument derives collection descriptors from an OpenAPI
// document: every path of the form "/{segment}" exposing a POST operation
// with a JSON request body becomes one Collection, its fields mapped from the
// body schema's properties. A sibling "/{segment}/reorder" path marks the
// collection as reorderable.
func CollectionsFromDocument(ctx context.Context, data []byte) ([]Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("schema: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("schema: openapi document has no paths")
	}

	paths := doc.Paths.Map()
	reorderable := make(map[string]bool)
	for path := range paths {
		if endpoint, ok := strings.CutSuffix(strings.Trim(path, "/"), "/reorder"); ok {
			reorderable[endpoint] = true
		}
	}

	var collections []Collection
	for path, item := range paths {
		if item == nil || item.Post == nil {
			continue
		}
		endpoint := strings.Trim(path, "/")
		if endpoint == "" || strings.ContainsAny(endpoint, "/{") {
			continue
		}
		body := jsonBodySchema(item.Post.RequestBody)
		if body == nil || len(body.Properties) == 0 {
			continue
		}

		name := labelFromName(endpoint)
		if ext, ok := item.Post.Extensions[collectionExtensionKey].(string); ok && ext != "" {
			name = ext
		}

		fields, err := fieldsFromSchema(body)
		if err != nil {
			return nil, fmt.Errorf("schema: collection %q: %w", endpoint, err)
		}

		collections = append(collections, Collection{
			Name:        name,
			Singular:    singularize(name),
			Endpoint:    endpoint,
			Reorderable: reorderable[endpoint],
			Fields:      fields,
		})
	}

	if len(collections) == 0 {
		return nil, errors.New("schema: no collection operations found")
	}
	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Endpoint < collections[j].Endpoint
	})
	return collections, nil
}

func jsonBodySchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	media := ref.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

func fieldsFromSchema(body *openapi3.Schema) ([]FieldSpec, error) {
	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]FieldSpec, 0, len(names))
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, err := fieldFromProperty(name, ref.Value, required[name])
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func fieldFromProperty(name string, prop *openapi3.Schema, required bool) (FieldSpec, error) {
	field := FieldSpec{
		Name:     name,
		Label:    labelFromName(name),
		Required: required,
		Kind:     inferKind(prop),
		Default:  prop.Default,
	}
	if prop.Title != "" {
		field.Label = prop.Title
	}
	if prop.Description != "" {
		field.Placeholder = prop.Description
	}

	if ext, ok := prop.Extensions[kindExtensionKey].(string); ok && ext != "" {
		kind := FieldKind(ext)
		if !kind.Valid() {
			return FieldSpec{}, fmt.Errorf("field %q: unknown kind %q", name, ext)
		}
		field.Kind = kind
	}
	if ext, ok := prop.Extensions[acceptExtensionKey].(string); ok && ext != "" {
		field.Accept = ext
	}

	if field.Kind == KindSelect {
		if len(prop.Enum) == 0 {
			return FieldSpec{}, fmt.Errorf("field %q: select without enum values", name)
		}
		for _, value := range prop.Enum {
			choice := StringValue(value)
			field.Options = append(field.Options, SelectOption{Value: choice, Label: labelFromName(choice)})
		}
	}
	return field, nil
}

func inferKind(prop *openapi3.Schema) FieldKind {
	switch firstSchemaType(prop.Type) {
	case "array":
		if hasSectionItems(prop) {
			return KindSections
		}
		return KindTags
	case "object":
		return KindKeyValue
	default:
		if len(prop.Enum) > 0 {
			return KindSelect
		}
		switch prop.Format {
		case "textarea":
			return KindTextarea
		case "color":
			return KindColor
		case "uri":
			return KindText
		}
		return KindText
	}
}

func hasSectionItems(prop *openapi3.Schema) bool {
	if prop.Items == nil || prop.Items.Value == nil {
		return false
	}
	_, hasName := prop.Items.Value.Properties["name"]
	_, hasContent := prop.Items.Value.Properties["content"]
	return hasName && hasContent
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func labelFromName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func singularize(name string) string {
	if strings.HasSuffix(name, "s") && len(name) > 1 {
		return name[:len(name)-1]
	}
	return name
}
