package api

import (
	"context"
	"io"
	"net/http"
)

// SectionSetting is one toggleable page section and its current visibility.
type SectionSetting struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// HeroLink is an outbound link rendered alongside the hero block.
type HeroLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon,omitempty"`
}

// HeroMetric is a single headline statistic, such as "3+ years in tech".
type HeroMetric struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// HeroContent is the editable hero block of the site.
type HeroContent struct {
	Eyebrow             string       `json:"eyebrow,omitempty"`
	Title               string       `json:"title,omitempty"`
	Subtitle            string       `json:"subtitle,omitempty"`
	Description         string       `json:"description,omitempty"`
	Highlights          []string     `json:"highlights,omitempty"`
	CTAPrimaryLabel     string       `json:"cta_primary_label,omitempty"`
	CTAPrimarySection   string       `json:"cta_primary_section,omitempty"`
	CTASecondaryLabel   string       `json:"cta_secondary_label,omitempty"`
	CTASecondarySection string       `json:"cta_secondary_section,omitempty"`
	Links               []HeroLink   `json:"links,omitempty"`
	ProfileImage        string       `json:"profile_image,omitempty"`
	ImagePositionX      int          `json:"image_position_x,omitempty"`
	ImagePositionY      int          `json:"image_position_y,omitempty"`
	ImageZoom           int          `json:"image_zoom,omitempty"`
	Name                string       `json:"name,omitempty"`
	Bio                 string       `json:"bio,omitempty"`
	StatusText          string       `json:"status_text,omitempty"`
	RoleText            string       `json:"role_text,omitempty"`
	Metrics             []HeroMetric `json:"metrics,omitempty"`
}

// Sections returns every section toggle, visible or not. Requires auth.
func (c *Client) Sections(ctx context.Context) ([]SectionSetting, error) {
	var sections []SectionSetting
	if err := c.do(ctx, http.MethodGet, "/settings/sections", nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// UpdateSections replaces the set of visible sections with the given keys.
func (c *Client) UpdateSections(ctx context.Context, visibleKeys []string) error {
	if visibleKeys == nil {
		visibleKeys = []string{}
	}
	body := map[string]any{"visible_sections": visibleKeys}
	return c.do(ctx, http.MethodPut, "/settings/sections", body, nil)
}

// VisibleSections returns the keys of currently visible sections. This
// endpoint is public; the site reads it without a token.
func (c *Client) VisibleSections(ctx context.Context) ([]string, error) {
	var keys []string
	if err := c.do(ctx, http.MethodGet, "/settings/visible-sections", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// HeroContent fetches the current hero block.
func (c *Client) HeroContent(ctx context.Context) (HeroContent, error) {
	var hero HeroContent
	if err := c.do(ctx, http.MethodGet, "/settings/hero", nil, &hero); err != nil {
		return HeroContent{}, err
	}
	return hero, nil
}

// UpdateHeroContent saves the hero block.
func (c *Client) UpdateHeroContent(ctx context.Context, hero HeroContent) error {
	return c.do(ctx, http.MethodPut, "/settings/hero", hero, nil)
}

// UploadHeroImage stores a new portrait image and returns its URL.
func (c *Client) UploadHeroImage(ctx context.Context, filename string, content io.Reader) (UploadResult, error) {
	return c.uploadFile(ctx, "/settings/hero/upload-image", "image", filename, content)
}
