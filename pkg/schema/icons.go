package schema

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// IconMode identifies which editing strategy an icon picker should present.
type IconMode string

const (
	IconModePreset IconMode = "preset"
	IconModeEmoji  IconMode = "emoji"
	IconModeSVG    IconMode = "svg"
)

// IconPreset is one entry in the curated icon library.
type IconPreset struct {
	ID    string
	Label string
	SVG   string
}

// InferIconMode derives the picker mode from the current value's shape: a
// value matching a curated preset opens the library, other inline SVG markup
// opens the custom-SVG editor, and any other non-empty value is treated as an
// emoji or short text glyph. Empty values default to the library.
func InferIconMode(value string, presets []IconPreset) IconMode {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return IconModePreset
	}
	for _, preset := range presets {
		if preset.SVG == trimmed {
			return IconModePreset
		}
	}
	if strings.HasPrefix(trimmed, "<svg") {
		return IconModeSVG
	}
	return IconModeEmoji
}

// MatchPreset returns the curated entry whose markup equals value, if any.
func MatchPreset(value string, presets []IconPreset) (IconPreset, bool) {
	trimmed := strings.TrimSpace(value)
	for _, preset := range presets {
		if preset.SVG == trimmed {
			return preset, true
		}
	}
	return IconPreset{}, false
}

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// SanitizeIcon strips anything but a safe SVG subset from user-supplied icon
// markup. An empty result means the input had no renderable SVG content.
func SanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		elements := []string{
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs", "use", "clipPath",
		}
		policy.AllowElements(elements...)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")

		policy.AllowAttrs("href", "xlink:href", "clip-path").OnElements("use")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"stroke-linecap", "stroke-linejoin", "class",
			).OnElements(el)
		}

		policy.AllowAttrs("id", "clipPathUnits").OnElements("clipPath")
		policy.AllowAttrs("id").OnElements("defs")
		policy.AllowAttrs("id").OnElements("g")

		iconPolicy = policy
	})
	return iconPolicy
}

const presetStroke = `fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"`

// BuiltinIcons returns the curated icon library used when a FieldSpec does not
// supply its own presets. Callers receive a copy and may reorder or filter it.
func BuiltinIcons() []IconPreset {
	out := make([]IconPreset, len(builtinIcons))
	copy(out, builtinIcons)
	return out
}

var builtinIcons = []IconPreset{
	{ID: "briefcase", Label: "Briefcase", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><rect x="2" y="7" width="20" height="14" rx="2" ry="2"/><path d="M16 7V5a2 2 0 00-2-2h-4a2 2 0 00-2 2v2"/></svg>`},
	{ID: "code", Label: "Code", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><polyline points="16 18 22 12 16 6"/><polyline points="8 6 2 12 8 18"/></svg>`},
	{ID: "laptop", Label: "Laptop", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><rect x="2" y="3" width="20" height="14" rx="2" ry="2"/><line x1="2" y1="20" x2="22" y2="20"/></svg>`},
	{ID: "palette", Label: "Design", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><circle cx="13.5" cy="6.5" r="0.5" fill="currentColor"/><circle cx="17.5" cy="10.5" r="0.5" fill="currentColor"/><circle cx="8.5" cy="7.5" r="0.5" fill="currentColor"/><circle cx="6.5" cy="12.5" r="0.5" fill="currentColor"/><path d="M12 2C6.5 2 2 6.5 2 12s4.5 10 10 10c.9 0 1.5-.7 1.5-1.5 0-.4-.1-.7-.4-1-.3-.3-.4-.7-.4-1.1 0-.8.7-1.5 1.5-1.5H16c3.3 0 6-2.7 6-6 0-5.5-4.5-9.9-10-10z"/></svg>`},
	{ID: "database", Label: "Database", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><ellipse cx="12" cy="5" rx="9" ry="3"/><path d="M21 12c0 1.66-4 3-9 3s-9-1.34-9-3"/><path d="M3 5v14c0 1.66 4 3 9 3s9-1.34 9-3V5"/></svg>`},
	{ID: "globe", Label: "Web", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><circle cx="12" cy="12" r="10"/><line x1="2" y1="12" x2="22" y2="12"/><path d="M12 2a15.3 15.3 0 014 10 15.3 15.3 0 01-4 10 15.3 15.3 0 01-4-10 15.3 15.3 0 014-10z"/></svg>`},
	{ID: "server", Label: "Server", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><rect x="2" y="2" width="20" height="8" rx="2" ry="2"/><rect x="2" y="14" width="20" height="8" rx="2" ry="2"/><line x1="6" y1="6" x2="6.01" y2="6"/><line x1="6" y1="18" x2="6.01" y2="18"/></svg>`},
	{ID: "terminal", Label: "Terminal", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><polyline points="4 17 10 11 4 5"/><line x1="12" y1="19" x2="20" y2="19"/></svg>`},
	{ID: "cpu", Label: "CPU", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><rect x="4" y="4" width="16" height="16" rx="2" ry="2"/><rect x="9" y="9" width="6" height="6"/><line x1="9" y1="1" x2="9" y2="4"/><line x1="15" y1="1" x2="15" y2="4"/><line x1="9" y1="20" x2="9" y2="23"/><line x1="15" y1="20" x2="15" y2="23"/><line x1="20" y1="9" x2="23" y2="9"/><line x1="20" y1="14" x2="23" y2="14"/><line x1="1" y1="9" x2="4" y2="9"/><line x1="1" y1="14" x2="4" y2="14"/></svg>`},
	{ID: "rocket", Label: "Rocket", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><path d="M4.5 16.5c-1.5 1.26-2 5-2 5s3.74-.5 5-2c.71-.84.7-2.13-.09-2.91a2.18 2.18 0 00-2.91-.09z"/><path d="M12 15l-3-3a22 22 0 012-3.95A12.88 12.88 0 0122 2c0 2.72-.78 7.5-6 11a22.35 22.35 0 01-4 2z"/><path d="M9 12H4s.55-3.03 2-4c1.62-1.08 3 0 3 0"/><path d="M12 15v5s3.03-.55 4-2c1.08-1.62 0-3 0-3"/></svg>`},
	{ID: "graduation", Label: "Education", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><path d="M22 10v6M2 10l10-5 10 5-10 5z"/><path d="M6 12v5c0 1.66 2.69 3 6 3s6-1.34 6-3v-5"/></svg>`},
	{ID: "lightbulb", Label: "Idea", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><path d="M9 18h6"/><path d="M10 22h4"/><path d="M15.09 14c.18-.98.65-1.74 1.41-2.5A4.65 4.65 0 0018 8 6 6 0 006 8c0 1 .23 2.23 1.5 3.5A4.61 4.61 0 019 14"/></svg>`},
	{ID: "chart", Label: "Analytics", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><line x1="18" y1="20" x2="18" y2="10"/><line x1="12" y1="20" x2="12" y2="4"/><line x1="6" y1="20" x2="6" y2="14"/></svg>`},
	{ID: "shield", Label: "Security", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z"/></svg>`},
	{ID: "smartphone", Label: "Mobile", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><rect x="5" y="2" width="14" height="20" rx="2" ry="2"/><line x1="12" y1="18" x2="12.01" y2="18"/></svg>`},
	{ID: "cloud", Label: "Cloud", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><path d="M18 10h-1.26A8 8 0 109 20h9a5 5 0 000-10z"/></svg>`},
	{ID: "git", Label: "Git", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><circle cx="18" cy="18" r="3"/><circle cx="6" cy="6" r="3"/><circle cx="18" cy="6" r="3"/><line x1="6" y1="9" x2="6" y2="21"/><path d="M18 9a9 9 0 01-9 9"/></svg>`},
	{ID: "wrench", Label: "Tools", SVG: `<svg viewBox="0 0 24 24" ` + presetStroke + `><path d="M14.7 6.3a1 1 0 000 1.4l1.6 1.6a1 1 0 001.4 0l3.77-3.77a6 6 0 01-7.94 7.94l-6.91 6.91a2.12 2.12 0 01-3-3l6.91-6.91a6 6 0 017.94-7.94l-3.76 3.76z"/></svg>`},
}
