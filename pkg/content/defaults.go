package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-portfolio/pkg/api"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults is the bundled content snapshot the site falls back to when the
// API is unreachable.
type Defaults struct {
	Projects        []api.Entity    `json:"projects"`
	Experiences     []api.Entity    `json:"experiences"`
	Services        []api.Entity    `json:"services"`
	Skills          []api.Entity    `json:"skills"`
	ContactLinks    []api.Entity    `json:"contact_links"`
	Hero            api.HeroContent `json:"hero"`
	VisibleSections []string        `json:"visible_sections"`
}

var (
	defaultsOnce   sync.Once
	cachedDefaults Defaults
	defaultsErr    error
)

// BundledDefaults parses the embedded snapshot once and returns it. The
// YAML is decoded through JSON so the entity maps come out keyed the same
// way API responses do.
func BundledDefaults() (Defaults, error) {
	defaultsOnce.Do(func() {
		var raw map[string]any
		if err := yaml.Unmarshal(defaultsYAML, &raw); err != nil {
			defaultsErr = fmt.Errorf("content: parse bundled defaults: %w", err)
			return
		}
		bridge, err := json.Marshal(raw)
		if err != nil {
			defaultsErr = fmt.Errorf("content: re-encode bundled defaults: %w", err)
			return
		}
		if err := json.Unmarshal(bridge, &cachedDefaults); err != nil {
			defaultsErr = fmt.Errorf("content: decode bundled defaults: %w", err)
		}
	})
	return cachedDefaults, defaultsErr
}
