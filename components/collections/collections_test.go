package collections

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-portfolio/pkg/schema"
)

func TestBuiltinCollectionsValidate(t *testing.T) {
	builtin := Builtin()
	if len(builtin) != 5 {
		t.Fatalf("builtin collections = %d, want 5", len(builtin))
	}
	for _, coll := range builtin {
		if err := coll.Validate(); err != nil {
			t.Errorf("%s: %v", coll.Name, err)
		}
		if !coll.Reorderable {
			t.Errorf("%s: expected manual ordering", coll.Name)
		}
		if coll.Card == nil {
			t.Errorf("%s: no card renderer", coll.Name)
		}
	}
}

func TestProjectsSchema(t *testing.T) {
	coll := Projects()
	if coll.Endpoint != "projects" {
		t.Fatalf("endpoint = %q", coll.Endpoint)
	}

	wantKinds := map[string]schema.FieldKind{
		"title":        schema.KindText,
		"description":  schema.KindTextarea,
		"category":     schema.KindSelect,
		"image":        schema.KindImage,
		"technologies": schema.KindTags,
		"solution":     schema.KindList,
		"videos":       schema.KindFiles,
		"sections":     schema.KindSections,
	}
	for name, kind := range wantKinds {
		field, ok := coll.Field(name)
		if !ok {
			t.Errorf("field %q missing", name)
			continue
		}
		if field.Kind != kind {
			t.Errorf("field %q kind = %q, want %q", name, field.Kind, kind)
		}
	}

	category, _ := coll.Field("category")
	if category.Default != "web" {
		t.Fatalf("category default = %v", category.Default)
	}
	videos, _ := coll.Field("videos")
	if videos.Accept != "video/*" {
		t.Fatalf("videos accept = %q", videos.Accept)
	}
	title, _ := coll.Field("title")
	if !title.Required {
		t.Fatal("title should be required")
	}
}

func TestCardRenderers(t *testing.T) {
	cases := []struct {
		name   string
		coll   schema.Collection
		entity map[string]any
		want   string
	}{
		{
			name: "project with category and tech",
			coll: Projects(),
			entity: map[string]any{
				"title":        "Nextride",
				"category":     "web",
				"technologies": []any{"Laravel", "React"},
			},
			want: "[web] Nextride (Laravel, React)",
		},
		{
			name:   "project bare title",
			coll:   Projects(),
			entity: map[string]any{"title": "Nextride"},
			want:   "Nextride",
		},
		{
			name: "experience",
			coll: Experiences(),
			entity: map[string]any{
				"role":         "Intern",
				"organization": "Acme",
				"period":       "05/2024 - 06/2024",
			},
			want: "Intern — Acme (05/2024 - 06/2024)",
		},
		{
			name:   "service numbered",
			coll:   Services(),
			entity: map[string]any{"number": "01", "title": "Web Development"},
			want:   "01. Web Development",
		},
		{
			name:   "skill with items",
			coll:   Skills(),
			entity: map[string]any{"category": "Backend", "items": []any{"Go", "Postgres"}},
			want:   "Backend: Go, Postgres",
		},
		{
			name:   "contact link",
			coll:   ContactLinks(),
			entity: map[string]any{"label": "GitHub", "href": "https://github.com/x"},
			want:   "GitHub → https://github.com/x",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.coll.Card(tc.entity); got != tc.want {
				t.Fatalf("card = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRegistryLookupAndEndpoints(t *testing.T) {
	r := NewRegistry()

	want := []string{"contact-links", "experiences", "projects", "services", "skills"}
	if diff := cmp.Diff(want, r.Endpoints()); diff != "" {
		t.Fatalf("endpoints mismatch (-want +got):\n%s", diff)
	}

	coll, ok := r.Lookup("projects")
	if !ok || coll.Name != "Projects" {
		t.Fatalf("lookup projects: ok=%v coll=%q", ok, coll.Name)
	}
	if _, ok := r.Lookup("nope"); ok {
		t.Fatal("unknown endpoint resolved")
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	custom := schema.Collection{
		Name:     "Talks",
		Singular: "Talk",
		Endpoint: "talks",
		Fields: []schema.FieldSpec{
			{Name: "title", Kind: schema.KindText, Required: true},
		},
	}
	if err := r.Register(custom); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := r.Lookup("talks"); !ok {
		t.Fatal("registered collection not found")
	}

	invalid := schema.Collection{Name: "Broken"}
	if err := r.Register(invalid); err == nil {
		t.Fatal("invalid collection accepted")
	}
}
