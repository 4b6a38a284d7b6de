package editor

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/api"
)

// HeroAPI is the remote surface the hero form drives.
type HeroAPI interface {
	HeroContent(ctx context.Context) (api.HeroContent, error)
	UpdateHeroContent(ctx context.Context, hero api.HeroContent) error
	UploadHeroImage(ctx context.Context, filename string, content io.Reader) (api.UploadResult, error)
}

var _ HeroAPI = (*api.Client)(nil)

// HeroForm edits the hero settings document. Unlike the schema-driven
// editor it works on a typed struct; callers mutate Content directly and
// call Save.
type HeroForm struct {
	remote HeroAPI
	log    *zap.Logger

	Content   api.HeroContent
	loading   bool
	saving    bool
	uploading bool
	banner    string
}

// HeroOption configures a HeroForm.
type HeroOption func(*HeroForm)

// WithHeroLogger routes diagnostics to log.
func WithHeroLogger(log *zap.Logger) HeroOption {
	return func(h *HeroForm) {
		if log != nil {
			h.log = log
		}
	}
}

// NewHeroForm builds the controller over the given remote.
func NewHeroForm(remote HeroAPI, opts ...HeroOption) *HeroForm {
	h := &HeroForm{
		remote: remote,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load fetches the current hero document into Content.
func (h *HeroForm) Load(ctx context.Context) {
	h.loading = true
	content, err := h.remote.HeroContent(ctx)
	h.loading = false
	if err != nil {
		h.log.Debug("hero load failed", zap.Error(err))
		h.banner = "Failed to load hero content"
		return
	}
	h.Content = content
}

// Banner returns the current inline error, empty when none.
func (h *HeroForm) Banner() string { return h.banner }

// Loading reports an in-flight load.
func (h *HeroForm) Loading() bool { return h.loading }

// Saving reports an in-flight save.
func (h *HeroForm) Saving() bool { return h.saving }

// Uploading reports an in-flight portrait upload.
func (h *HeroForm) Uploading() bool { return h.uploading }

// Save persists Content. Failure surfaces the server-reported detail when
// one exists.
func (h *HeroForm) Save(ctx context.Context) bool {
	h.saving = true
	h.banner = ""
	err := h.remote.UpdateHeroContent(ctx, h.Content)
	h.saving = false
	if err != nil {
		h.log.Debug("hero save failed", zap.Error(err))
		if detail := api.Detail(err); detail != "" {
			h.banner = detail
		} else {
			h.banner = "Failed to save hero content"
		}
		return false
	}
	return true
}

// UploadImage stores a new portrait and writes its URL into Content. A
// second upload is rejected while one is in flight.
func (h *HeroForm) UploadImage(ctx context.Context, filename string, content io.Reader) bool {
	if h.uploading {
		return false
	}
	h.uploading = true
	result, err := h.remote.UploadHeroImage(ctx, filename, content)
	h.uploading = false
	if err != nil {
		h.log.Debug("hero image upload failed", zap.Error(err))
		h.banner = "Upload failed"
		return false
	}
	h.Content.ProfileImage = result.URL
	return true
}
