package collections

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-portfolio/pkg/schema"
)

// Projects is the portfolio-project collection.
func Projects() schema.Collection {
	return schema.Collection{
		Name:        "Projects",
		Singular:    "Project",
		Endpoint:    "projects",
		Reorderable: true,
		Fields: []schema.FieldSpec{
			{Name: "title", Label: "Title", Kind: schema.KindText, Required: true, Placeholder: "Project title"},
			{Name: "description", Label: "Description", Kind: schema.KindTextarea, Required: true, Placeholder: "Describe the project..."},
			{
				Name:  "category",
				Label: "Category",
				Kind:  schema.KindSelect,
				Options: []schema.SelectOption{
					{Value: "web", Label: "Web Development"},
					{Value: "data", Label: "Data Science"},
				},
				Default: "web",
			},
			{Name: "image", Label: "Cover Image", Kind: schema.KindImage},
			{Name: "github", Label: "GitHub URL", Kind: schema.KindText, Placeholder: "https://github.com/..."},
			{Name: "link", Label: "Live Demo URL", Kind: schema.KindText, Placeholder: "https://..."},
			{Name: "technologies", Label: "Technologies", Kind: schema.KindTags},
			{Name: "skills", Label: "Skills", Kind: schema.KindTags},
			{Name: "problem", Label: "Problem Statement", Kind: schema.KindTextarea, Placeholder: "What problem does this solve?"},
			{Name: "solution", Label: "Solution Points", Kind: schema.KindList},
			{Name: "benefits", Label: "Benefits", Kind: schema.KindList},
			{Name: "videos", Label: "Videos", Kind: schema.KindFiles, Accept: "video/*"},
			{Name: "images", Label: "Images", Kind: schema.KindFiles, Accept: "image/*"},
			{Name: "sections", Label: "Sections", Kind: schema.KindSections},
		},
		Card: func(entity map[string]any) string {
			title := schema.StringValue(entity["title"])
			category := schema.StringValue(entity["category"])
			tech := schema.StringSlice(entity["technologies"])
			line := title
			if category != "" {
				line = "[" + category + "] " + line
			}
			if len(tech) > 0 {
				line += " (" + strings.Join(tech, ", ") + ")"
			}
			return line
		},
	}
}

// Experiences is the work-experience timeline collection.
func Experiences() schema.Collection {
	return schema.Collection{
		Name:        "Experiences",
		Singular:    "Experience",
		Endpoint:    "experiences",
		Reorderable: true,
		Fields: []schema.FieldSpec{
			{Name: "role", Label: "Role / Title", Kind: schema.KindText, Required: true, Placeholder: "e.g. Intern - Web Development"},
			{Name: "period", Label: "Period", Kind: schema.KindText, Required: true, Placeholder: "e.g. 05/2024 - 06/2024"},
			{Name: "organization", Label: "Organization", Kind: schema.KindText, Required: true, Placeholder: "Company name"},
			{Name: "icon", Label: "Icon", Kind: schema.KindIcon},
			{Name: "accent", Label: "Accent Color", Kind: schema.KindColor, Default: "#5ea0ff"},
			{Name: "points", Label: "Key Points", Kind: schema.KindList},
		},
		Card: func(entity map[string]any) string {
			role := schema.StringValue(entity["role"])
			org := schema.StringValue(entity["organization"])
			period := schema.StringValue(entity["period"])
			if org == "" {
				return role
			}
			return fmt.Sprintf("%s — %s (%s)", role, org, period)
		},
	}
}

// Services is the offered-services collection.
func Services() schema.Collection {
	return schema.Collection{
		Name:        "Services",
		Singular:    "Service",
		Endpoint:    "services",
		Reorderable: true,
		Fields: []schema.FieldSpec{
			{Name: "number", Label: "Number", Kind: schema.KindText, Required: true, Placeholder: "01"},
			{Name: "title", Label: "Title", Kind: schema.KindText, Required: true, Placeholder: "Service title"},
			{Name: "description", Label: "Description", Kind: schema.KindTextarea, Required: true, Placeholder: "Describe the service..."},
			{Name: "icon", Label: "Icon", Kind: schema.KindIcon, Default: "💻"},
			{Name: "items", Label: "Capabilities", Kind: schema.KindList},
		},
		Card: func(entity map[string]any) string {
			number := schema.StringValue(entity["number"])
			title := schema.StringValue(entity["title"])
			if number == "" {
				return title
			}
			return number + ". " + title
		},
	}
}

// Skills is the skill-category collection.
func Skills() schema.Collection {
	return schema.Collection{
		Name:        "Skills",
		Singular:    "Skill",
		Endpoint:    "skills",
		Reorderable: true,
		Fields: []schema.FieldSpec{
			{Name: "category", Label: "Category Name", Kind: schema.KindText, Required: true, Placeholder: "e.g. Web Development"},
			{Name: "icon", Label: "Icon", Kind: schema.KindIcon, Default: "💻"},
			{Name: "accent", Label: "Accent Color", Kind: schema.KindColor, Default: "#5ea0ff"},
			{Name: "items", Label: "Skills", Kind: schema.KindTags},
		},
		Card: func(entity map[string]any) string {
			category := schema.StringValue(entity["category"])
			items := schema.StringSlice(entity["items"])
			if len(items) == 0 {
				return category
			}
			return category + ": " + strings.Join(items, ", ")
		},
	}
}

// ContactLinks is the outbound contact-link collection.
func ContactLinks() schema.Collection {
	return schema.Collection{
		Name:        "Contact Links",
		Singular:    "Contact Link",
		Endpoint:    "contact-links",
		Reorderable: true,
		Fields: []schema.FieldSpec{
			{Name: "label", Label: "Label", Kind: schema.KindText, Required: true, Placeholder: "e.g. GitHub"},
			{Name: "href", Label: "URL", Kind: schema.KindText, Required: true, Placeholder: "https://..."},
			{Name: "icon_svg", Label: "Icon SVG", Kind: schema.KindTextarea, Placeholder: "<svg ...>...</svg>"},
		},
		Card: func(entity map[string]any) string {
			label := schema.StringValue(entity["label"])
			href := schema.StringValue(entity["href"])
			if href == "" {
				return label
			}
			return label + " → " + href
		},
	}
}

// Registry maps collection endpoints to their descriptors.
type Registry struct {
	mu          sync.RWMutex
	collections map[string]schema.Collection
}

// NewRegistry returns a registry holding the built-in collections.
func NewRegistry() *Registry {
	r := &Registry{collections: map[string]schema.Collection{}}
	for _, coll := range Builtin() {
		r.collections[coll.Endpoint] = coll
	}
	return r
}

// Builtin returns the five built-in collection descriptors.
func Builtin() []schema.Collection {
	return []schema.Collection{
		Projects(),
		Experiences(),
		Services(),
		Skills(),
		ContactLinks(),
	}
}

// Register adds or replaces a collection. The descriptor must validate.
func (r *Registry) Register(coll schema.Collection) error {
	if err := coll.Validate(); err != nil {
		return fmt.Errorf("collections: register: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[coll.Endpoint] = coll
	return nil
}

// Lookup finds a collection by its endpoint segment.
func (r *Registry) Lookup(endpoint string) (schema.Collection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	coll, ok := r.collections[endpoint]
	return coll, ok
}

// Endpoints lists the registered endpoints in sorted order.
func (r *Registry) Endpoints() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.collections))
	for endpoint := range r.collections {
		out = append(out, endpoint)
	}
	sort.Strings(out)
	return out
}
