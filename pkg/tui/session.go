// Package tui runs the admin surfaces as terminal prompt sessions. The
// PromptDriver seam keeps the flows testable against a scripted driver; the
// survey-backed driver is the interactive default.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/api"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/schema"
)

// Session drives admin controllers through a PromptDriver.
type Session struct {
	driver PromptDriver
	log    *zap.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger routes diagnostics to log.
func WithSessionLogger(log *zap.Logger) SessionOption {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSession builds a session over the given driver.
func NewSession(driver PromptDriver, opts ...SessionOption) *Session {
	s := &Session{
		driver: driver,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Manage runs the list/edit loop for one collection until the user backs
// out or aborts.
func (s *Session) Manage(ctx context.Context, ed *editor.Editor) error {
	ed.Load(ctx)
	coll := ed.Collection()

	for {
		if err := s.showBanner(ctx, ed.Banner()); err != nil {
			return err
		}
		if err := s.listItems(ctx, ed); err != nil {
			return err
		}

		actions := []string{"New " + coll.Singular, "Edit", "Delete"}
		if coll.Reorderable {
			actions = append(actions, "Move")
		}
		actions = append(actions, "Reload", "Back")

		choice, err := s.driver.Select(ctx, SelectConfig{
			Message: coll.Name,
			Options: actions,
		})
		if err != nil {
			return err
		}

		switch actions[choice] {
		case "New " + coll.Singular:
			ed.StartCreate()
			if err := s.editEntity(ctx, ed); err != nil {
				return err
			}
		case "Edit":
			id, ok, err := s.pickEntity(ctx, ed, "Edit which "+strings.ToLower(coll.Singular)+"?")
			if err != nil {
				return err
			}
			if ok && ed.StartEdit(id) {
				if err := s.editEntity(ctx, ed); err != nil {
					return err
				}
			}
		case "Delete":
			if err := s.deleteEntity(ctx, ed); err != nil {
				return err
			}
		case "Move":
			if err := s.moveEntity(ctx, ed); err != nil {
				return err
			}
		case "Reload":
			ed.Load(ctx)
		case "Back":
			return nil
		}
	}
}

func (s *Session) showBanner(ctx context.Context, banner string) error {
	if banner == "" {
		return nil
	}
	return s.driver.Info(ctx, "! "+banner)
}

func (s *Session) listItems(ctx context.Context, ed *editor.Editor) error {
	items := ed.Items()
	if len(items) == 0 {
		return s.driver.Info(ctx, "(no entries)")
	}
	for i, item := range items {
		if err := s.driver.Info(ctx, fmt.Sprintf("%2d. %s", i+1, s.card(ed.Collection(), item))); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) card(coll schema.Collection, item api.Entity) string {
	if coll.Card != nil {
		if line := coll.Card(item); line != "" {
			return line
		}
	}
	return item.ID()
}

func (s *Session) pickEntity(ctx context.Context, ed *editor.Editor, message string) (string, bool, error) {
	items := ed.Items()
	if len(items) == 0 {
		return "", false, s.driver.Info(ctx, "(no entries)")
	}
	options := make([]string, 0, len(items)+1)
	for _, item := range items {
		options = append(options, s.card(ed.Collection(), item))
	}
	options = append(options, "Cancel")
	choice, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return "", false, err
	}
	if choice < 0 || choice >= len(items) {
		return "", false, nil
	}
	return items[choice].ID(), true, nil
}

func (s *Session) deleteEntity(ctx context.Context, ed *editor.Editor) error {
	singular := strings.ToLower(ed.Collection().Singular)
	id, ok, err := s.pickEntity(ctx, ed, "Delete which "+singular+"?")
	if err != nil || !ok {
		return err
	}
	// First call arms the confirmation, the prompt decides whether the
	// second call fires.
	ed.Delete(ctx, id)
	confirmed, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: "Really delete this " + singular + "?",
	})
	if err != nil {
		return err
	}
	if !confirmed {
		ed.DisarmDelete()
		return nil
	}
	ed.Delete(ctx, id)
	return s.showBanner(ctx, ed.Banner())
}

func (s *Session) moveEntity(ctx context.Context, ed *editor.Editor) error {
	items := ed.Items()
	if len(items) < 2 {
		return s.driver.Info(ctx, "(nothing to reorder)")
	}
	options := make([]string, 0, len(items)+1)
	for _, item := range items {
		options = append(options, s.card(ed.Collection(), item))
	}
	options = append(options, "Cancel")
	from, err := s.driver.Select(ctx, SelectConfig{Message: "Move which entry?", Options: options})
	if err != nil {
		return err
	}
	if from < 0 || from >= len(items) {
		return nil
	}
	raw, err := s.driver.Input(ctx, InputConfig{
		Message:   fmt.Sprintf("New position (1-%d)", len(items)),
		Default:   strconv.Itoa(from + 1),
		Validator: positionValidator(len(items)),
	})
	if err != nil {
		return err
	}
	to, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	ed.Reorder(ctx, from, to-1)
	return s.showBanner(ctx, ed.Banner())
}

func positionValidator(max int) func(string) error {
	return func(raw string) error {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 || n > max {
			return fmt.Errorf("enter a number between 1 and %d", max)
		}
		return nil
	}
}

func (s *Session) editEntity(ctx context.Context, ed *editor.Editor) error {
	for {
		form := ed.Form()
		if form == nil {
			return nil
		}
		for _, field := range form.Fields() {
			if err := s.promptField(ctx, ed, field); err != nil {
				return err
			}
		}
		save, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Save changes?", Default: true})
		if err != nil {
			return err
		}
		if !save {
			ed.Cancel()
			return nil
		}
		if ed.Save(ctx) {
			return nil
		}
		if err := s.showBanner(ctx, ed.Banner()); err != nil {
			return err
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Keep editing?", Default: true})
		if err != nil {
			return err
		}
		if !again {
			ed.Cancel()
			return nil
		}
	}
}

func (s *Session) promptField(ctx context.Context, ed *editor.Editor, field schema.FieldSpec) error {
	form := ed.Form()
	label := field.Label
	if field.Required {
		label += " *"
	}

	switch field.Kind {
	case schema.KindText:
		value, err := s.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     form.StringValue(field.Name),
			Placeholder: field.Placeholder,
		})
		if err != nil {
			return err
		}
		form.SetString(field.Name, value)

	case schema.KindTextarea:
		value, err := s.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: form.StringValue(field.Name),
		})
		if err != nil {
			return err
		}
		form.SetString(field.Name, value)

	case schema.KindSelect:
		labels := make([]string, len(field.Options))
		defaultIdx := 0
		current := form.StringValue(field.Name)
		for i, opt := range field.Options {
			labels[i] = opt.Label
			if opt.Value == current {
				defaultIdx = i
			}
		}
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return err
		}
		if choice >= 0 && choice < len(field.Options) {
			form.SetString(field.Name, field.Options[choice].Value)
		}

	case schema.KindColor:
		value, err := s.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   form.StringValue(field.Name),
			Help:      "hex color, e.g. #5ea0ff",
			Validator: colorValidator,
		})
		if err != nil {
			return err
		}
		form.SetString(field.Name, value)

	case schema.KindList, schema.KindTags:
		rows, err := s.editRows(ctx, label, form.Rows(field.Name))
		if err != nil {
			return err
		}
		form.SetRows(field.Name, rows)

	case schema.KindKeyValue:
		raw, err := s.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: form.RawJSON(field.Name),
			Help:    "JSON object; invalid input keeps the previous value",
		})
		if err != nil {
			return err
		}
		form.SetRawJSON(field.Name, raw)

	case schema.KindSections:
		if err := s.editSections(ctx, form, field, label); err != nil {
			return err
		}

	case schema.KindImage:
		if err := s.promptUpload(ctx, ed, field, label, false); err != nil {
			return err
		}

	case schema.KindFiles:
		if err := s.promptUpload(ctx, ed, field, label, true); err != nil {
			return err
		}

	case schema.KindIcon:
		if err := s.promptIcon(ctx, form, field, label); err != nil {
			return err
		}
	}
	return nil
}

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func colorValidator(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if !colorPattern.MatchString(strings.TrimSpace(raw)) {
		return fmt.Errorf("enter a hex color like #5ea0ff")
	}
	return nil
}

// editRows walks the existing rows (clearing one drops it) and then appends
// new rows until the user stops.
func (s *Session) editRows(ctx context.Context, label string, rows []string) ([]string, error) {
	kept := []string{}
	for i, row := range rows {
		value, err := s.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s [%d]", label, i+1),
			Default: row,
			Help:    "clear to remove this entry",
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(value) != "" {
			kept = append(kept, value)
		}
	}
	for {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Add another " + strings.ToLower(label) + " entry?"})
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		value, err := s.driver.Input(ctx, InputConfig{Message: label})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(value) == "" {
			break
		}
		kept = append(kept, value)
	}
	return kept, nil
}

var sectionKindLabels = []string{"Text", "List"}

func (s *Session) editSections(ctx context.Context, form *editor.Form, field schema.FieldSpec, label string) error {
	i := 0
	for i < len(form.Sections(field.Name)) {
		block := form.Sections(field.Name)[i]
		title := block.Name
		if title == "" {
			title = fmt.Sprintf("section %d", i+1)
		}
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("%s — %s", label, title),
			Options: []string{"Edit", "Remove", "Next"},
		})
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			if err := s.editSection(ctx, form, field.Name, i); err != nil {
				return err
			}
			i++
		case 1:
			form.RemoveSection(field.Name, i)
		default:
			i++
		}
	}
	for {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Add a section?"})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		form.AddSection(field.Name)
		if err := s.editSection(ctx, form, field.Name, len(form.Sections(field.Name))-1); err != nil {
			return err
		}
	}
}

func (s *Session) editSection(ctx context.Context, form *editor.Form, fieldName string, i int) error {
	block := form.Sections(fieldName)[i]

	name, err := s.driver.Input(ctx, InputConfig{Message: "Section name", Default: block.Name})
	if err != nil {
		return err
	}
	form.SetSectionName(fieldName, i, name)

	defaultKind := 0
	if block.Kind == schema.SectionList {
		defaultKind = 1
	}
	kindChoice, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Section type",
		Options:      sectionKindLabels,
		DefaultIndex: defaultKind,
		Help:         "changing the type clears the content",
	})
	if err != nil {
		return err
	}
	kind := schema.SectionText
	if kindChoice == 1 {
		kind = schema.SectionList
	}
	form.SetSectionKind(fieldName, i, kind)

	block = form.Sections(fieldName)[i]
	switch block.Kind {
	case schema.SectionText:
		text, err := s.driver.TextArea(ctx, TextAreaConfig{Message: "Content", Default: block.Text})
		if err != nil {
			return err
		}
		form.SetSectionText(fieldName, i, text)
	case schema.SectionList:
		items, err := s.editRows(ctx, "item", block.Items)
		if err != nil {
			return err
		}
		form.SetSectionItems(fieldName, i, items)
	}
	return nil
}

func (s *Session) promptUpload(ctx context.Context, ed *editor.Editor, field schema.FieldSpec, label string, multi bool) error {
	form := ed.Form()
	for {
		current := ""
		if !multi {
			current = form.StringValue(field.Name)
		} else if rows := form.Rows(field.Name); len(rows) > 0 {
			current = fmt.Sprintf("%d file(s)", len(rows))
		}
		message := label
		if current != "" {
			message = fmt.Sprintf("%s (current: %s)", label, current)
		}
		path, err := s.driver.Input(ctx, InputConfig{
			Message: message,
			Help:    "path to a local file; leave blank to keep as is",
		})
		if err != nil {
			return err
		}
		path = strings.TrimSpace(path)
		if path == "" {
			return nil
		}
		if err := s.uploadPath(ctx, ed, field.Name, path); err != nil {
			if infoErr := s.driver.Info(ctx, "! "+err.Error()); infoErr != nil {
				return infoErr
			}
		}
		if !multi {
			return nil
		}
	}
}

func (s *Session) uploadPath(ctx context.Context, ed *editor.Editor, fieldName, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ed.Upload(ctx, fieldName, filepath.Base(path), file)
}

var iconModeLabels = []string{"Icon library", "Emoji / text", "Custom SVG"}

func (s *Session) promptIcon(ctx context.Context, form *editor.Form, field schema.FieldSpec, label string) error {
	presets := field.Icons
	if len(presets) == 0 {
		presets = schema.BuiltinIcons()
	}

	defaultIdx := 0
	switch form.IconMode(field.Name) {
	case schema.IconModeEmoji:
		defaultIdx = 1
	case schema.IconModeSVG:
		defaultIdx = 2
	}
	choice, err := s.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      iconModeLabels,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		form.SetIconMode(field.Name, schema.IconModePreset)
		labels := make([]string, len(presets))
		presetIdx := 0
		for i, preset := range presets {
			labels[i] = preset.Label
		}
		if match, ok := schema.MatchPreset(form.StringValue(field.Name), presets); ok {
			for i, preset := range presets {
				if preset.ID == match.ID {
					presetIdx = i
				}
			}
		}
		picked, err := s.driver.Select(ctx, SelectConfig{
			Message:      "Pick an icon",
			Options:      labels,
			DefaultIndex: presetIdx,
			PageSize:     10,
		})
		if err != nil {
			return err
		}
		if picked >= 0 && picked < len(presets) {
			form.SetIcon(field.Name, presets[picked].SVG)
		}
	case 1:
		form.SetIconMode(field.Name, schema.IconModeEmoji)
		value, err := s.driver.Input(ctx, InputConfig{
			Message: "Emoji or short text",
			Default: form.StringValue(field.Name),
		})
		if err != nil {
			return err
		}
		form.SetIcon(field.Name, value)
	case 2:
		form.SetIconMode(field.Name, schema.IconModeSVG)
		value, err := s.driver.TextArea(ctx, TextAreaConfig{
			Message: "SVG markup",
			Default: form.StringValue(field.Name),
			Help:    "markup is sanitized before it is stored",
		})
		if err != nil {
			return err
		}
		form.SetIcon(field.Name, value)
	}
	return nil
}
