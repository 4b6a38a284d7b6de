package editor

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/api"
)

// SettingsAPI is the remote surface the visibility controller drives.
type SettingsAPI interface {
	Sections(ctx context.Context) ([]api.SectionSetting, error)
	UpdateSections(ctx context.Context, visibleKeys []string) error
}

var _ SettingsAPI = (*api.Client)(nil)

// Visibility toggles which site sections are shown. Toggles flip locally;
// Save sends the list of visible keys.
type Visibility struct {
	remote SettingsAPI
	log    *zap.Logger

	sections []api.SectionSetting
	loading  bool
	saving   bool
	banner   string
	dirty    bool
}

// VisibilityOption configures a Visibility controller.
type VisibilityOption func(*Visibility)

// WithVisibilityLogger routes diagnostics to log.
func WithVisibilityLogger(log *zap.Logger) VisibilityOption {
	return func(v *Visibility) {
		if log != nil {
			v.log = log
		}
	}
}

// NewVisibility builds the controller over the given remote.
func NewVisibility(remote SettingsAPI, opts ...VisibilityOption) *Visibility {
	v := &Visibility{
		remote: remote,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load fetches every section toggle.
func (v *Visibility) Load(ctx context.Context) {
	v.loading = true
	sections, err := v.remote.Sections(ctx)
	v.loading = false
	if err != nil {
		v.log.Debug("sections load failed", zap.Error(err))
		v.banner = "Failed to load sections"
		return
	}
	v.sections = sections
	v.dirty = false
}

// Sections returns the toggles in server order.
func (v *Visibility) Sections() []api.SectionSetting { return v.sections }

// Banner returns the current inline error, empty when none.
func (v *Visibility) Banner() string { return v.banner }

// Loading reports an in-flight load.
func (v *Visibility) Loading() bool { return v.loading }

// Saving reports an in-flight save.
func (v *Visibility) Saving() bool { return v.saving }

// Dirty reports unsaved local toggles.
func (v *Visibility) Dirty() bool { return v.dirty }

// Toggle flips one section locally. It reports false for an unknown key.
func (v *Visibility) Toggle(key string) bool {
	for i := range v.sections {
		if v.sections[i].Key == key {
			v.sections[i].Visible = !v.sections[i].Visible
			v.dirty = true
			return true
		}
	}
	return false
}

// VisibleKeys returns the keys currently toggled on, in order.
func (v *Visibility) VisibleKeys() []string {
	keys := []string{}
	for _, s := range v.sections {
		if s.Visible {
			keys = append(keys, s.Key)
		}
	}
	return keys
}

// Save persists the visible-key list.
func (v *Visibility) Save(ctx context.Context) bool {
	v.saving = true
	v.banner = ""
	err := v.remote.UpdateSections(ctx, v.VisibleKeys())
	v.saving = false
	if err != nil {
		v.log.Debug("sections save failed", zap.Error(err))
		v.banner = "Failed to save"
		return false
	}
	v.dirty = false
	return true
}
