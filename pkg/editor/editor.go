// Package editor implements the generic entity editor: a list/edit
// controller over one schema-driven collection, plus the smaller admin
// controllers (message inbox, section visibility, hero content). Every
// remote failure is converted to a short banner string and kept local; no
// operation is fatal to the controller.
package editor

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/api"
	"github.com/goliatone/go-portfolio/pkg/schema"
)

// Mode is the editor's top-level state.
type Mode int

const (
	// ModeList shows the entity list with create/edit/delete/reorder actions.
	ModeList Mode = iota
	// ModeEdit shows the schema-driven form for one entity.
	ModeEdit
)

// CollectionAPI is the remote surface the editor drives. *api.CollectionClient
// satisfies it; tests plug in fakes.
type CollectionAPI interface {
	List(ctx context.Context) ([]api.Entity, error)
	Create(ctx context.Context, values map[string]any) (api.Entity, error)
	Update(ctx context.Context, id string, values map[string]any) (api.Entity, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

var _ CollectionAPI = (*api.CollectionClient)(nil)

// Editor drives create/edit/delete/reorder for one collection. It owns its
// entity list exclusively; each admin surface builds its own instance.
type Editor struct {
	collection schema.Collection
	remote     CollectionAPI
	uploader   api.Uploader
	log        *zap.Logger

	mode        Mode
	items       []api.Entity
	form        *Form
	loading     bool
	saving      bool
	banner      string
	deleteArmed string
	uploading   map[string]bool
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithUploader injects the collaborator image and file fields delegate
// uploads to.
func WithUploader(u api.Uploader) EditorOption {
	return func(e *Editor) {
		e.uploader = u
	}
}

// WithEditorLogger routes operation diagnostics to log.
func WithEditorLogger(log *zap.Logger) EditorOption {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// New builds an editor for one collection against the given remote.
func New(coll schema.Collection, remote CollectionAPI, opts ...EditorOption) *Editor {
	e := &Editor{
		collection: coll,
		remote:     remote,
		log:        zap.NewNop(),
		uploading:  map[string]bool{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Collection returns the schema the editor manages.
func (e *Editor) Collection() schema.Collection { return e.collection }

// Mode reports the current state.
func (e *Editor) Mode() Mode { return e.mode }

// Items returns the current entity list in display order.
func (e *Editor) Items() []api.Entity { return e.items }

// Form returns the active form, or nil outside ModeEdit.
func (e *Editor) Form() *Form { return e.form }

// Loading reports an in-flight list load.
func (e *Editor) Loading() bool { return e.loading }

// Saving reports an in-flight create or update.
func (e *Editor) Saving() bool { return e.saving }

// Banner returns the current inline error message, empty when none.
func (e *Editor) Banner() string { return e.banner }

// DeleteArmed returns the id whose delete confirmation is armed, empty when
// none.
func (e *Editor) DeleteArmed() string { return e.deleteArmed }

// Uploading reports whether the named field has an upload in flight.
func (e *Editor) Uploading(field string) bool { return e.uploading[field] }

// Load fetches the full entity list. On failure the banner is set and the
// list is emptied; there is no stale-data fallback in the admin surface.
func (e *Editor) Load(ctx context.Context) {
	e.loading = true
	e.deleteArmed = ""
	items, err := e.remote.List(ctx)
	e.loading = false
	if err != nil {
		e.log.Debug("list load failed",
			zap.String("collection", e.collection.Endpoint),
			zap.Error(err),
		)
		e.items = nil
		e.banner = "Failed to load data"
		return
	}
	e.items = items
}

// StartCreate opens an empty form.
func (e *Editor) StartCreate() {
	e.form = NewForm(e.collection)
	e.mode = ModeEdit
	e.banner = ""
	e.deleteArmed = ""
}

// StartEdit opens a form pre-populated from the listed entity with the given
// id. It reports false when the id is not in the current list.
func (e *Editor) StartEdit(id string) bool {
	for _, item := range e.items {
		if item.ID() == id {
			e.form = EditForm(e.collection, item)
			e.mode = ModeEdit
			e.banner = ""
			e.deleteArmed = ""
			return true
		}
	}
	return false
}

// Cancel abandons the active form and returns to the list.
func (e *Editor) Cancel() {
	e.form = nil
	e.mode = ModeList
	e.banner = ""
}

// Save submits the active form: create when the form is new, update
// otherwise. Success reloads the list and returns to it; failure keeps the
// form open with the server-reported detail (or a generic message) as the
// banner.
func (e *Editor) Save(ctx context.Context) bool {
	if e.mode != ModeEdit || e.form == nil {
		return false
	}
	e.saving = true
	e.banner = ""

	var err error
	if e.form.IsNew() {
		_, err = e.remote.Create(ctx, e.form.Values())
	} else {
		_, err = e.remote.Update(ctx, e.form.EntityID(), e.form.Values())
	}
	e.saving = false

	if err != nil {
		e.log.Debug("save failed",
			zap.String("collection", e.collection.Endpoint),
			zap.Bool("create", e.form.IsNew()),
			zap.Error(err),
		)
		if detail := api.Detail(err); detail != "" {
			e.banner = detail
		} else {
			e.banner = "Failed to save"
		}
		return false
	}

	e.form = nil
	e.mode = ModeList
	e.Load(ctx)
	return true
}

// Delete drives the two-step confirmation. The first call for an id arms it
// and returns false with no network traffic; a second call for the same id
// performs the delete and reloads. A call for a different id re-arms onto
// that id instead. A failed delete disarms and sets the banner, leaving the
// entity in place.
func (e *Editor) Delete(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}
	if e.deleteArmed != id {
		e.deleteArmed = id
		return false
	}
	e.deleteArmed = ""
	if err := e.remote.Delete(ctx, id); err != nil {
		e.log.Debug("delete failed",
			zap.String("collection", e.collection.Endpoint),
			zap.String("id", id),
			zap.Error(err),
		)
		e.banner = "Failed to delete"
		return false
	}
	e.Load(ctx)
	return true
}

// DisarmDelete clears a pending delete confirmation.
func (e *Editor) DisarmDelete() {
	e.deleteArmed = ""
}

// Reorder moves the row at index from to index to and persists the new id
// sequence. The local list is updated first; if the remote call fails the
// banner is set and the list is hard-reloaded from the server, discarding
// the optimistic order. Equal or out-of-range indices are a no-op with no
// network call.
func (e *Editor) Reorder(ctx context.Context, from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(e.items) || to >= len(e.items) {
		return
	}
	e.deleteArmed = ""

	reordered := make([]api.Entity, 0, len(e.items))
	reordered = append(reordered, e.items...)
	moved := reordered[from]
	reordered = append(reordered[:from], reordered[from+1:]...)
	reordered = append(reordered[:to], append([]api.Entity{moved}, reordered[to:]...)...)
	e.items = reordered

	if err := e.remote.Reorder(ctx, api.IDs(reordered)); err != nil {
		e.log.Debug("reorder failed",
			zap.String("collection", e.collection.Endpoint),
			zap.Error(err),
		)
		e.banner = "Failed to save order"
		e.Load(ctx)
	}
}

// Upload sends one file for the named field and writes the returned URL into
// form state. A field with an upload already in flight rejects re-submission;
// unrelated fields are unaffected.
func (e *Editor) Upload(ctx context.Context, field, filename string, content io.Reader) error {
	if e.form == nil {
		return fmt.Errorf("editor: no active form")
	}
	if e.uploader == nil {
		return fmt.Errorf("editor: no uploader configured")
	}
	if e.uploading[field] {
		return fmt.Errorf("editor: field %q has an upload in flight", field)
	}

	e.uploading[field] = true
	result, err := e.uploader.Upload(ctx, filename, content)
	delete(e.uploading, field)

	if err != nil {
		e.log.Debug("upload failed",
			zap.String("collection", e.collection.Endpoint),
			zap.String("field", field),
			zap.Error(err),
		)
		e.banner = "Upload failed"
		return err
	}
	e.form.ApplyUpload(field, result.URL)
	return nil
}
