package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestZeroValuePerKind(t *testing.T) {
	cases := []struct {
		kind FieldKind
		want any
	}{
		{KindText, ""},
		{KindTextarea, ""},
		{KindColor, ""},
		{KindImage, ""},
		{KindIcon, ""},
		{KindList, []string{}},
		{KindTags, []string{}},
		{KindFiles, []string{}},
		{KindKeyValue, map[string]any{}},
		{KindSections, []Section{}},
	}
	for _, tc := range cases {
		field := FieldSpec{Name: "f", Kind: tc.kind}
		if diff := cmp.Diff(tc.want, field.ZeroValue()); diff != "" {
			t.Errorf("kind %s zero value mismatch (-want +got):\n%s", tc.kind, diff)
		}
	}
}

func TestZeroValueUsesDefault(t *testing.T) {
	field := FieldSpec{Name: "category", Kind: KindSelect, Default: "web"}
	if got := field.ZeroValue(); got != "web" {
		t.Fatalf("expected declared default, got %v", got)
	}

	// Image fields start empty even with a default configured.
	field = FieldSpec{Name: "image", Kind: KindImage, Default: "x.png"}
	if got := field.ZeroValue(); got != "" {
		t.Fatalf("image zero value = %v, want empty", got)
	}
}

func TestCollectionValidate(t *testing.T) {
	valid := Collection{
		Name:     "Things",
		Endpoint: "things",
		Fields: []FieldSpec{
			{Name: "title", Kind: KindText},
			{Name: "category", Kind: KindSelect, Options: []SelectOption{{Value: "a", Label: "A"}}},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid collection rejected: %v", err)
	}

	cases := []struct {
		name string
		coll Collection
	}{
		{"missing endpoint", Collection{Name: "X", Fields: []FieldSpec{{Name: "a", Kind: KindText}}}},
		{"no fields", Collection{Name: "X", Endpoint: "x"}},
		{"duplicate field", Collection{Name: "X", Endpoint: "x", Fields: []FieldSpec{
			{Name: "a", Kind: KindText}, {Name: "a", Kind: KindText},
		}}},
		{"unknown kind", Collection{Name: "X", Endpoint: "x", Fields: []FieldSpec{
			{Name: "a", Kind: FieldKind("mystery")},
		}}},
		{"select without options", Collection{Name: "X", Endpoint: "x", Fields: []FieldSpec{
			{Name: "a", Kind: KindSelect},
		}}},
	}
	for _, tc := range cases {
		if err := tc.coll.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestCollectionFieldLookup(t *testing.T) {
	coll := Collection{Fields: []FieldSpec{{Name: "title", Kind: KindText}}}
	if _, ok := coll.Field("title"); !ok {
		t.Fatal("expected to find field")
	}
	if _, ok := coll.Field("missing"); ok {
		t.Fatal("unexpected lookup hit")
	}
}
