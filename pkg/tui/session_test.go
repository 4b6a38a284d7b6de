package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-portfolio/pkg/api"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/schema"
)

type memRemote struct {
	items  []api.Entity
	nextID int

	createErr  error
	reorderErr error

	creates      []map[string]any
	deleteCalls  []string
	reorderCalls [][]string
}

func (r *memRemote) List(context.Context) ([]api.Entity, error) {
	out := make([]api.Entity, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *memRemote) Create(_ context.Context, values map[string]any) (api.Entity, error) {
	r.creates = append(r.creates, values)
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	entity := api.Entity{"id": string(rune('a' + r.nextID - 1))}
	for k, v := range values {
		entity[k] = v
	}
	r.items = append(r.items, entity)
	return entity, nil
}

func (r *memRemote) Update(_ context.Context, id string, values map[string]any) (api.Entity, error) {
	for i, item := range r.items {
		if item.ID() == id {
			entity := api.Entity{"id": id}
			for k, v := range values {
				entity[k] = v
			}
			r.items[i] = entity
			return entity, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memRemote) Delete(_ context.Context, id string) error {
	r.deleteCalls = append(r.deleteCalls, id)
	for i, item := range r.items {
		if item.ID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memRemote) Reorder(_ context.Context, ids []string) error {
	r.reorderCalls = append(r.reorderCalls, ids)
	if r.reorderErr != nil {
		return r.reorderErr
	}
	byID := make(map[string]api.Entity, len(r.items))
	for _, item := range r.items {
		byID[item.ID()] = item
	}
	ordered := make([]api.Entity, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, byID[id])
	}
	r.items = ordered
	return nil
}

func seedItems(r *memRemote, titles ...string) {
	for i, title := range titles {
		r.items = append(r.items, api.Entity{
			"id":    string(rune('a' + i)),
			"title": title,
		})
	}
	r.nextID = len(titles)
}

func titleCollection(reorderable bool) schema.Collection {
	return schema.Collection{
		Name:        "Projects",
		Singular:    "Project",
		Endpoint:    "projects",
		Reorderable: reorderable,
		Fields: []schema.FieldSpec{
			{Name: "title", Label: "Title", Kind: schema.KindText, Required: true},
		},
		Card: func(e map[string]any) string {
			title, _ := e["title"].(string)
			return title
		},
	}
}

func TestManageCreateFlow(t *testing.T) {
	remote := &memRemote{}
	ed := editor.New(titleCollection(false), remote)
	driver := &stubDriver{
		t:        t,
		selects:  []int{0, 4}, // New Project, then Back
		inputs:   []string{"Nextride"},
		confirms: []bool{true}, // Save changes?
	}

	if err := NewSession(driver).Manage(context.Background(), ed); err != nil {
		t.Fatalf("Manage: %v", err)
	}
	if len(remote.items) != 1 || remote.items[0]["title"] != "Nextride" {
		t.Fatalf("unexpected items: %#v", remote.items)
	}
}

func TestManageDeleteDeclined(t *testing.T) {
	remote := &memRemote{}
	seedItems(remote, "A", "B")
	ed := editor.New(titleCollection(false), remote)
	driver := &stubDriver{
		t:        t,
		selects:  []int{2, 0, 4}, // Delete, pick first entry, Back
		confirms: []bool{false},  // Really delete?
	}

	if err := NewSession(driver).Manage(context.Background(), ed); err != nil {
		t.Fatalf("Manage: %v", err)
	}
	if len(remote.deleteCalls) != 0 {
		t.Fatalf("declined delete still hit the server: %v", remote.deleteCalls)
	}
	if len(remote.items) != 2 {
		t.Fatalf("items = %d, want 2", len(remote.items))
	}
}

func TestManageDeleteConfirmed(t *testing.T) {
	remote := &memRemote{}
	seedItems(remote, "A", "B")
	ed := editor.New(titleCollection(false), remote)
	driver := &stubDriver{
		t:        t,
		selects:  []int{2, 0, 4},
		confirms: []bool{true},
	}

	if err := NewSession(driver).Manage(context.Background(), ed); err != nil {
		t.Fatalf("Manage: %v", err)
	}
	if len(remote.items) != 1 || remote.items[0]["title"] != "B" {
		t.Fatalf("unexpected items: %#v", remote.items)
	}
}

func TestManageMove(t *testing.T) {
	remote := &memRemote{}
	seedItems(remote, "A", "B", "C")
	ed := editor.New(titleCollection(true), remote)
	driver := &stubDriver{
		t:       t,
		selects: []int{3, 2, 5}, // Move, pick C, Back
		inputs:  []string{"1"},  // new position
	}

	if err := NewSession(driver).Manage(context.Background(), ed); err != nil {
		t.Fatalf("Manage: %v", err)
	}
	if len(remote.reorderCalls) != 1 {
		t.Fatalf("reorder calls = %d", len(remote.reorderCalls))
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, remote.reorderCalls[0]); diff != "" {
		t.Fatalf("persisted order mismatch (-want +got):\n%s", diff)
	}
}

func TestManageSaveFailureShowsBanner(t *testing.T) {
	remote := &memRemote{createErr: &api.Error{
		Status:  422,
		Message: "The title field is required.",
	}}
	ed := editor.New(titleCollection(false), remote)
	driver := &stubDriver{
		t:        t,
		selects:  []int{0, 4},
		inputs:   []string{""},
		confirms: []bool{true, false}, // Save changes? yes; Keep editing? no
	}

	if err := NewSession(driver).Manage(context.Background(), ed); err != nil {
		t.Fatalf("Manage: %v", err)
	}
	found := false
	for _, line := range driver.infos {
		if line == "! The title field is required." {
			found = true
		}
	}
	if !found {
		t.Fatalf("server detail never shown; infos = %q", driver.infos)
	}
}

func TestManageIconPresetPick(t *testing.T) {
	coll := schema.Collection{
		Name:     "Services",
		Singular: "Service",
		Endpoint: "services",
		Fields: []schema.FieldSpec{
			{Name: "icon", Label: "Icon", Kind: schema.KindIcon},
		},
	}
	remote := &memRemote{}
	ed := editor.New(coll, remote)
	driver := &stubDriver{
		t:        t,
		selects:  []int{0, 0, 1, 4}, // New, mode: library, second preset, Back
		confirms: []bool{true},
	}

	if err := NewSession(driver).Manage(context.Background(), ed); err != nil {
		t.Fatalf("Manage: %v", err)
	}
	want := schema.BuiltinIcons()[1].SVG
	if len(remote.items) != 1 || remote.items[0]["icon"] != want {
		t.Fatalf("icon not stored as preset markup: %#v", remote.items)
	}
}

func TestManageSectionsFlow(t *testing.T) {
	coll := schema.Collection{
		Name:     "Projects",
		Singular: "Project",
		Endpoint: "projects",
		Fields: []schema.FieldSpec{
			{Name: "sections", Label: "Sections", Kind: schema.KindSections},
		},
	}
	remote := &memRemote{}
	ed := editor.New(coll, remote)
	driver := &stubDriver{
		t:         t,
		selects:   []int{0, 0, 4},           // New, section type: Text, Back
		confirms:  []bool{true, false, true}, // add a section, no more, save
		inputs:    []string{"Overview"},
		textareas: []string{"A short paragraph"},
	}

	if err := NewSession(driver).Manage(context.Background(), ed); err != nil {
		t.Fatalf("Manage: %v", err)
	}
	if len(remote.creates) != 1 {
		t.Fatalf("creates = %d", len(remote.creates))
	}
	blocks := schema.SectionSlice(remote.creates[0]["sections"])
	if len(blocks) != 1 {
		t.Fatalf("blocks = %#v", blocks)
	}
	if blocks[0].Name != "Overview" || blocks[0].Kind != schema.SectionText || blocks[0].Text != "A short paragraph" {
		t.Fatalf("unexpected block: %#v", blocks[0])
	}
}

func TestManageLoadFailureShowsBannerAndEmptyList(t *testing.T) {
	remote := &failingListRemote{}
	ed := editor.New(titleCollection(false), remote)
	driver := &stubDriver{
		t:       t,
		selects: []int{4}, // Back
	}

	if err := NewSession(driver).Manage(context.Background(), ed); err != nil {
		t.Fatalf("Manage: %v", err)
	}
	if len(driver.infos) < 2 || driver.infos[0] != "! Failed to load data" || driver.infos[1] != "(no entries)" {
		t.Fatalf("infos = %q", driver.infos)
	}
}

type failingListRemote struct{ memRemote }

func (r *failingListRemote) List(context.Context) ([]api.Entity, error) {
	return nil, errors.New("boom")
}

func TestValidators(t *testing.T) {
	if err := colorValidator("#5ea0ff"); err != nil {
		t.Fatalf("valid color rejected: %v", err)
	}
	if err := colorValidator("#abc"); err != nil {
		t.Fatalf("short form rejected: %v", err)
	}
	if err := colorValidator(""); err != nil {
		t.Fatalf("blank color rejected: %v", err)
	}
	if err := colorValidator("blue"); err == nil {
		t.Fatal("named color accepted")
	}

	validate := positionValidator(3)
	if err := validate("2"); err != nil {
		t.Fatalf("in-range position rejected: %v", err)
	}
	for _, raw := range []string{"0", "4", "x", ""} {
		if err := validate(raw); err == nil {
			t.Fatalf("position %q accepted", raw)
		}
	}
}

func TestOptionIndexHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	if got := indexOf(options, "b"); got != 1 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf(options, "z"); got != -1 {
		t.Fatalf("indexOf miss = %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "c"}, defaultsFromIndices(options, []int{0, 2, 9})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(ErrAborted.Error(), "aborted") {
		t.Fatalf("ErrAborted = %q", ErrAborted)
	}
}
