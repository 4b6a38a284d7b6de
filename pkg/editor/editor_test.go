package editor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-portfolio/pkg/api"
	"github.com/goliatone/go-portfolio/pkg/schema"
)

// fakeRemote is an in-memory CollectionAPI with per-operation scripted
// failures.
type fakeRemote struct {
	items  []api.Entity
	nextID int

	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	reorderErr error

	reorderCalls [][]string
	deleteCalls  []string
}

func (r *fakeRemote) List(context.Context) ([]api.Entity, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]api.Entity, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *fakeRemote) Create(_ context.Context, values map[string]any) (api.Entity, error) {
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

func (r *fakeRemote) Update(_ context.Context, id string, values map[string]any) (api.Entity, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
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

func (r *fakeRemote) Delete(_ context.Context, id string) error {
	r.deleteCalls = append(r.deleteCalls, id)
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, item := range r.items {
		if item.ID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *fakeRemote) Reorder(_ context.Context, ids []string) error {
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

func testCollection() schema.Collection {
	return schema.Collection{
		Name:        "Projects",
		Singular:    "Project",
		Endpoint:    "projects",
		Reorderable: true,
		Fields: []schema.FieldSpec{
			{Name: "title", Label: "Title", Kind: schema.KindText, Required: true},
			{Name: "category", Label: "Category", Kind: schema.KindSelect, Default: "web",
				Options: []schema.SelectOption{{Value: "web", Label: "Web"}, {Value: "data", Label: "Data"}}},
			{Name: "technologies", Label: "Technologies", Kind: schema.KindTags},
			{Name: "image", Label: "Image", Kind: schema.KindImage},
			{Name: "videos", Label: "Videos", Kind: schema.KindFiles, Accept: "video/*"},
		},
	}
}

func seededRemote(titles ...string) *fakeRemote {
	remote := &fakeRemote{}
	for i, title := range titles {
		remote.items = append(remote.items, api.Entity{
			"id":    string(rune('a' + i)),
			"title": title,
		})
	}
	remote.nextID = len(titles)
	return remote
}

func TestLoadFailureEmptiesListAndSetsBanner(t *testing.T) {
	remote := seededRemote("A", "B")
	ed := New(testCollection(), remote)
	ctx := context.Background()

	ed.Load(ctx)
	if len(ed.Items()) != 2 {
		t.Fatalf("initial load: got %d items", len(ed.Items()))
	}

	remote.listErr = errors.New("boom")
	ed.Load(ctx)
	if ed.Items() != nil {
		t.Fatalf("failed load must empty the list, got %#v", ed.Items())
	}
	if ed.Banner() != "Failed to load data" {
		t.Fatalf("banner = %q", ed.Banner())
	}
}

func TestCreateRoundTripShowsSubmittedValues(t *testing.T) {
	remote := seededRemote()
	ed := New(testCollection(), remote)
	ctx := context.Background()
	ed.Load(ctx)

	ed.StartCreate()
	if ed.Mode() != ModeEdit || !ed.Form().IsNew() {
		t.Fatal("StartCreate should open a fresh form in edit mode")
	}
	if got := ed.Form().StringValue("category"); got != "web" {
		t.Fatalf("select default = %q, want web", got)
	}

	ed.Form().SetString("title", "Nextride")
	ed.Form().SetRows("technologies", []string{"Laravel", "MySQL"})

	if !ed.Save(ctx) {
		t.Fatalf("Save failed: banner=%q", ed.Banner())
	}
	if ed.Mode() != ModeList || ed.Form() != nil {
		t.Fatal("successful save should return to the list")
	}

	items := ed.Items()
	if len(items) != 1 {
		t.Fatalf("expected reloaded list with 1 item, got %d", len(items))
	}
	if items[0]["title"] != "Nextride" {
		t.Fatalf("title = %v", items[0]["title"])
	}
	if diff := cmp.Diff([]string{"Laravel", "MySQL"}, schema.StringSlice(items[0]["technologies"])); diff != "" {
		t.Fatalf("technologies mismatch (-want +got):\n%s", diff)
	}
}

func TestEditRemoveTagRowSavesRemainder(t *testing.T) {
	remote := seededRemote()
	remote.items = append(remote.items, api.Entity{
		"id":           "a",
		"title":        "Nextride",
		"technologies": []any{"Laravel", "MySQL"},
	})
	ed := New(testCollection(), remote)
	ctx := context.Background()
	ed.Load(ctx)

	if !ed.StartEdit("a") {
		t.Fatal("StartEdit did not find the entity")
	}
	ed.Form().RemoveRow("technologies", 0)

	if !ed.Save(ctx) {
		t.Fatalf("Save failed: banner=%q", ed.Banner())
	}
	got := schema.StringSlice(remote.items[0]["technologies"])
	if diff := cmp.Diff([]string{"MySQL"}, got); diff != "" {
		t.Fatalf("saved technologies mismatch (-want +got):\n%s", diff)
	}
}

func TestStartEditUnknownID(t *testing.T) {
	ed := New(testCollection(), seededRemote("A"))
	ed.Load(context.Background())

	if ed.StartEdit("zzz") {
		t.Fatal("StartEdit accepted an id not in the list")
	}
	if ed.Mode() != ModeList {
		t.Fatal("mode must stay ModeList after a failed StartEdit")
	}
}

func TestSaveFailureKeepsFormAndShowsServerDetail(t *testing.T) {
	remote := seededRemote()
	remote.createErr = &api.Error{
		Status:  422,
		Message: "The title field is required.",
	}
	ed := New(testCollection(), remote)
	ctx := context.Background()
	ed.Load(ctx)

	ed.StartCreate()
	if ed.Save(ctx) {
		t.Fatal("Save should fail")
	}
	if ed.Mode() != ModeEdit || ed.Form() == nil {
		t.Fatal("failed save must keep the form open")
	}
	if ed.Banner() != "The title field is required." {
		t.Fatalf("banner = %q", ed.Banner())
	}

	// Non-API failures fall back to the generic message.
	remote.createErr = errors.New("dial tcp: connection refused")
	if ed.Save(ctx) {
		t.Fatal("Save should fail")
	}
	if ed.Banner() != "Failed to save" {
		t.Fatalf("banner = %q", ed.Banner())
	}
}

func TestSaveFailureShowsValidationFieldsAsJSON(t *testing.T) {
	remote := seededRemote()
	remote.createErr = &api.Error{
		Status: 422,
		Fields: map[string][]string{"title": {"required"}},
	}
	ed := New(testCollection(), remote)
	ctx := context.Background()

	ed.StartCreate()
	if ed.Save(ctx) {
		t.Fatal("Save should fail")
	}
	if !strings.Contains(ed.Banner(), `"title"`) || !strings.Contains(ed.Banner(), "required") {
		t.Fatalf("banner = %q, want stringified field errors", ed.Banner())
	}
}

func TestDeleteIsTwoStep(t *testing.T) {
	remote := seededRemote("A", "B")
	ed := New(testCollection(), remote)
	ctx := context.Background()
	ed.Load(ctx)

	if ed.Delete(ctx, "a") {
		t.Fatal("first Delete call must only arm")
	}
	if ed.DeleteArmed() != "a" {
		t.Fatalf("armed = %q, want a", ed.DeleteArmed())
	}
	if len(remote.deleteCalls) != 0 {
		t.Fatal("arming must not hit the network")
	}

	if !ed.Delete(ctx, "a") {
		t.Fatalf("confirmed delete failed: banner=%q", ed.Banner())
	}
	if len(ed.Items()) != 1 || ed.Items()[0].ID() != "b" {
		t.Fatalf("unexpected list after delete: %#v", ed.Items())
	}
	if ed.DeleteArmed() != "" {
		t.Fatal("confirmation must clear after delete")
	}
}

func TestDeleteRearmsOnDifferentEntity(t *testing.T) {
	remote := seededRemote("A", "B")
	ed := New(testCollection(), remote)
	ctx := context.Background()
	ed.Load(ctx)

	ed.Delete(ctx, "a")
	if ed.Delete(ctx, "b") {
		t.Fatal("switching targets must re-arm, not delete")
	}
	if ed.DeleteArmed() != "b" {
		t.Fatalf("armed = %q, want b", ed.DeleteArmed())
	}
	if len(remote.deleteCalls) != 0 {
		t.Fatal("no delete should have been issued")
	}

	ed.DisarmDelete()
	if ed.DeleteArmed() != "" {
		t.Fatal("DisarmDelete did not clear the confirmation")
	}
}

func TestDeleteFailureDisarmsAndKeepsEntity(t *testing.T) {
	remote := seededRemote("A")
	ed := New(testCollection(), remote)
	ctx := context.Background()
	ed.Load(ctx)

	ed.Delete(ctx, "a")
	remote.deleteErr = errors.New("boom")
	if ed.Delete(ctx, "a") {
		t.Fatal("delete should fail")
	}
	if ed.Banner() != "Failed to delete" {
		t.Fatalf("banner = %q", ed.Banner())
	}
	if ed.DeleteArmed() != "" {
		t.Fatal("failed delete must disarm")
	}
	if len(ed.Items()) != 1 {
		t.Fatal("entity must remain listed after a failed delete")
	}
}

func TestReorderOptimisticThenPersist(t *testing.T) {
	remote := seededRemote("A", "B", "C")
	ed := New(testCollection(), remote)
	ctx := context.Background()
	ed.Load(ctx)

	// Move C to the front.
	ed.Reorder(ctx, 2, 0)

	got := api.IDs(ed.Items())
	if diff := cmp.Diff([]string{"c", "a", "b"}, got); diff != "" {
		t.Fatalf("local order mismatch (-want +got):\n%s", diff)
	}
	if len(remote.reorderCalls) != 1 {
		t.Fatalf("reorder calls = %d, want 1", len(remote.reorderCalls))
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, remote.reorderCalls[0]); diff != "" {
		t.Fatalf("persisted ids mismatch (-want +got):\n%s", diff)
	}
	if ed.Banner() != "" {
		t.Fatalf("banner = %q, want none", ed.Banner())
	}
}

func TestReorderFailureRollsBackViaReload(t *testing.T) {
	remote := seededRemote("A", "B", "C")
	remote.reorderErr = errors.New("boom")
	ed := New(testCollection(), remote)
	ctx := context.Background()
	ed.Load(ctx)

	ed.Reorder(ctx, 2, 0)

	if ed.Banner() != "Failed to save order" {
		t.Fatalf("banner = %q", ed.Banner())
	}
	got := api.IDs(ed.Items())
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("server order not restored (-want +got):\n%s", diff)
	}
}

func TestReorderNoOpIndices(t *testing.T) {
	remote := seededRemote("A", "B")
	ed := New(testCollection(), remote)
	ctx := context.Background()
	ed.Load(ctx)

	ed.Reorder(ctx, 1, 1)
	ed.Reorder(ctx, -1, 0)
	ed.Reorder(ctx, 0, 5)

	if len(remote.reorderCalls) != 0 {
		t.Fatalf("no-op reorders hit the network %d times", len(remote.reorderCalls))
	}
	got := api.IDs(ed.Items())
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("order changed by no-op (-want +got):\n%s", diff)
	}
}

type fakeUploader struct {
	result  api.UploadResult
	err     error
	calls   int
	started func(*fakeUploader)
}

func (u *fakeUploader) Upload(_ context.Context, _ string, _ io.Reader) (api.UploadResult, error) {
	u.calls++
	if u.started != nil {
		u.started(u)
	}
	if u.err != nil {
		return api.UploadResult{}, u.err
	}
	return u.result, nil
}

func TestUploadWritesURLIntoForm(t *testing.T) {
	uploader := &fakeUploader{result: api.UploadResult{URL: "/uploads/cover.png"}}
	ed := New(testCollection(), seededRemote(), WithUploader(uploader))
	ctx := context.Background()

	ed.StartCreate()
	if err := ed.Upload(ctx, "image", "cover.png", strings.NewReader("png")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if got := ed.Form().StringValue("image"); got != "/uploads/cover.png" {
		t.Fatalf("image value = %q", got)
	}

	// Multi-file fields append instead of replacing.
	uploader.result = api.UploadResult{URL: "/uploads/one.mp4"}
	if err := ed.Upload(ctx, "videos", "one.mp4", strings.NewReader("v1")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	uploader.result = api.UploadResult{URL: "/uploads/two.mp4"}
	if err := ed.Upload(ctx, "videos", "two.mp4", strings.NewReader("v2")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	got := ed.Form().Rows("videos")
	if diff := cmp.Diff([]string{"/uploads/one.mp4", "/uploads/two.mp4"}, got); diff != "" {
		t.Fatalf("videos mismatch (-want +got):\n%s", diff)
	}
	if ed.Uploading("videos") {
		t.Fatal("uploading flag must clear after completion")
	}
}

func TestUploadRejectsConcurrentSameField(t *testing.T) {
	ed := New(testCollection(), seededRemote())
	uploader := &fakeUploader{result: api.UploadResult{URL: "/uploads/a.png"}}
	uploader.started = func(u *fakeUploader) {
		// Re-entrancy while the first upload is in flight: same field is
		// rejected, another field goes through.
		if u.calls > 1 {
			return
		}
		if !ed.Uploading("image") {
			t.Error("in-flight flag not set during upload")
		}
		if err := ed.Upload(context.Background(), "image", "b.png", strings.NewReader("b")); err == nil {
			t.Error("second upload for the same field should be rejected")
		}
	}
	WithUploader(uploader)(ed)

	ed.StartCreate()
	if err := ed.Upload(context.Background(), "image", "a.png", strings.NewReader("a")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if uploader.calls != 1 {
		t.Fatalf("uploader calls = %d, want 1", uploader.calls)
	}
}

func TestUploadFailureSetsBanner(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("boom")}
	ed := New(testCollection(), seededRemote(), WithUploader(uploader))
	ctx := context.Background()

	ed.StartCreate()
	if err := ed.Upload(ctx, "image", "a.png", strings.NewReader("a")); err == nil {
		t.Fatal("upload should fail")
	}
	if ed.Banner() != "Upload failed" {
		t.Fatalf("banner = %q", ed.Banner())
	}
	if ed.Uploading("image") {
		t.Fatal("uploading flag must clear after failure")
	}
	if got := ed.Form().StringValue("image"); got != "" {
		t.Fatalf("failed upload wrote a value: %q", got)
	}
}

func TestUploadRequiresFormAndUploader(t *testing.T) {
	ed := New(testCollection(), seededRemote(), WithUploader(&fakeUploader{}))
	if err := ed.Upload(context.Background(), "image", "a.png", strings.NewReader("a")); err == nil {
		t.Fatal("upload without an active form should fail")
	}

	ed = New(testCollection(), seededRemote())
	ed.StartCreate()
	if err := ed.Upload(context.Background(), "image", "a.png", strings.NewReader("a")); err == nil {
		t.Fatal("upload without an uploader should fail")
	}
}
