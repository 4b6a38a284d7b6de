package schema

import (
	"encoding/json"
	"fmt"
)

// SectionKind tags the shape of a section block's content.
type SectionKind string

const (
	SectionText SectionKind = "text"
	SectionList SectionKind = "list"
)

// Section is one heterogeneous block inside a KindSections field. The wire
// format is {"name": ..., "type": "text"|"list", "content": ...} where content
// is a string for text blocks and an array of strings for list blocks.
type Section struct {
	Name  string
	Kind  SectionKind
	Text  string
	Items []string
}

// SetKind switches the block type. Changing kind resets the content to the
// empty value of the new shape; there is no migration between shapes.
func (s *Section) SetKind(kind SectionKind) {
	if s.Kind == kind {
		return
	}
	s.Kind = kind
	s.Text = ""
	s.Items = nil
	if kind == SectionList {
		s.Items = []string{}
	}
}

type sectionWire struct {
	Name    string          `json:"name"`
	Type    SectionKind     `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON emits the polymorphic content shape expected by the remote API.
func (s Section) MarshalJSON() ([]byte, error) {
	var content any
	if s.Kind == SectionList {
		items := s.Items
		if items == nil {
			items = []string{}
		}
		content = items
	} else {
		content = s.Text
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	kind := s.Kind
	if kind == "" {
		kind = SectionText
	}
	return json.Marshal(sectionWire{Name: s.Name, Type: kind, Content: raw})
}

// UnmarshalJSON accepts either content shape and infers the kind from the
// content when the type tag is missing.
func (s *Section) UnmarshalJSON(data []byte) error {
	var wire sectionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("schema: decode section: %w", err)
	}
	s.Name = wire.Name
	s.Kind = wire.Type
	s.Text = ""
	s.Items = nil

	if len(wire.Content) == 0 || string(wire.Content) == "null" {
		if s.Kind == "" {
			s.Kind = SectionText
		}
		if s.Kind == SectionList {
			s.Items = []string{}
		}
		return nil
	}

	var items []string
	if err := json.Unmarshal(wire.Content, &items); err == nil {
		if s.Kind == "" {
			s.Kind = SectionList
		}
		s.Items = items
		return nil
	}

	var text string
	if err := json.Unmarshal(wire.Content, &text); err != nil {
		return fmt.Errorf("schema: section %q: unsupported content shape", wire.Name)
	}
	if s.Kind == "" {
		s.Kind = SectionText
	}
	s.Text = text
	return nil
}
