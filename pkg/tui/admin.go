package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-portfolio/components/collections"
	"github.com/goliatone/go-portfolio/pkg/api"
	"github.com/goliatone/go-portfolio/pkg/editor"
)

// Login prompts for credentials and exchanges them for a token.
func (s *Session) Login(ctx context.Context, client *api.Client) error {
	email, err := s.driver.Input(ctx, InputConfig{
		Message: "Email",
		Validator: func(raw string) error {
			if !strings.Contains(raw, "@") {
				return fmt.Errorf("enter an email address")
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	password, err := s.driver.Password(ctx, InputConfig{Message: "Password"})
	if err != nil {
		return err
	}
	if err := client.Login(ctx, email, password); err != nil {
		if detail := api.Detail(err); detail != "" {
			return fmt.Errorf("tui: login: %s", detail)
		}
		return fmt.Errorf("tui: login: %w", err)
	}
	return s.driver.Info(ctx, "Logged in.")
}

// Inbox runs the contact-message loop.
func (s *Session) Inbox(ctx context.Context, in *editor.Inbox) error {
	in.Load(ctx)
	for {
		if err := s.showBanner(ctx, in.Banner()); err != nil {
			return err
		}
		messages := in.Messages()
		options := make([]string, 0, len(messages)+3)
		for _, m := range messages {
			marker := " "
			if !m.Read {
				marker = "*"
			}
			options = append(options, fmt.Sprintf("%s %s — %s", marker, m.Name, m.Subject))
		}
		filterLabel := fmt.Sprintf("Filter: %s", in.Filter())
		options = append(options, filterLabel, "Reload", "Back")

		choice, err := s.driver.Select(ctx, SelectConfig{
			Message:  fmt.Sprintf("Inbox (%d unread)", in.Unread()),
			Options:  options,
			PageSize: 12,
		})
		if err != nil {
			return err
		}
		switch {
		case choice >= 0 && choice < len(messages):
			if err := s.readMessage(ctx, in, messages[choice].ID); err != nil {
				return err
			}
		case options[choice] == filterLabel:
			if err := s.cycleFilter(ctx, in); err != nil {
				return err
			}
		case options[choice] == "Reload":
			in.Load(ctx)
		default:
			return nil
		}
	}
}

func (s *Session) cycleFilter(ctx context.Context, in *editor.Inbox) error {
	filters := []editor.MessageFilter{editor.FilterAll, editor.FilterUnread, editor.FilterRead}
	labels := []string{"All", "Unread", "Read"}
	defaultIdx := 0
	for i, f := range filters {
		if f == in.Filter() {
			defaultIdx = i
		}
	}
	choice, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Show",
		Options:      labels,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	if choice >= 0 && choice < len(filters) {
		in.SetFilter(filters[choice])
	}
	return nil
}

func (s *Session) readMessage(ctx context.Context, in *editor.Inbox, id int) error {
	msg, ok := in.Select(ctx, id)
	if !ok {
		return nil
	}
	lines := []string{
		"From: " + msg.Name + " <" + msg.Email + ">",
		"Date: " + msg.CreatedAt.Format(time.RFC1123),
	}
	if msg.Subject != "" {
		lines = append(lines, "Subject: "+msg.Subject)
	}
	lines = append(lines, "", msg.Body)
	if err := s.driver.Info(ctx, strings.Join(lines, "\n")); err != nil {
		return err
	}

	choice, err := s.driver.Select(ctx, SelectConfig{
		Message: "Message",
		Options: []string{"Back", "Delete"},
	})
	if err != nil {
		return err
	}
	in.Deselect()
	if choice != 1 {
		return nil
	}
	in.Delete(ctx, id)
	confirmed, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Really delete this message?"})
	if err != nil {
		return err
	}
	if confirmed {
		in.Delete(ctx, id)
	}
	return s.showBanner(ctx, in.Banner())
}

// Visibility runs the section-toggle loop.
func (s *Session) Visibility(ctx context.Context, v *editor.Visibility) error {
	v.Load(ctx)
	for {
		if err := s.showBanner(ctx, v.Banner()); err != nil {
			return err
		}
		sections := v.Sections()
		options := make([]string, 0, len(sections))
		defaults := []int{}
		for i, sec := range sections {
			options = append(options, sec.Label)
			if sec.Visible {
				defaults = append(defaults, i)
			}
		}
		picked, err := s.driver.MultiSelect(ctx, SelectConfig{
			Message:  "Visible sections",
			Options:  options,
			Defaults: defaults,
		})
		if err != nil {
			return err
		}

		want := make(map[string]bool, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(sections) {
				want[sections[idx].Key] = true
			}
		}
		for _, sec := range sections {
			if sec.Visible != want[sec.Key] {
				v.Toggle(sec.Key)
			}
		}

		save, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Save?", Default: true})
		if err != nil {
			return err
		}
		if !save {
			return nil
		}
		if v.Save(ctx) {
			return s.driver.Info(ctx, "Saved.")
		}
		if err := s.showBanner(ctx, v.Banner()); err != nil {
			return err
		}
	}
}

// Hero runs the hero-content form.
func (s *Session) Hero(ctx context.Context, h *editor.HeroForm) error {
	h.Load(ctx)
	if err := s.showBanner(ctx, h.Banner()); err != nil {
		return err
	}

	c := &h.Content
	prompts := []struct {
		label string
		value *string
		multi bool
	}{
		{"Name", &c.Name, false},
		{"Eyebrow", &c.Eyebrow, false},
		{"Title", &c.Title, false},
		{"Subtitle", &c.Subtitle, false},
		{"Description", &c.Description, true},
		{"Bio", &c.Bio, true},
		{"Status text", &c.StatusText, false},
		{"Role text", &c.RoleText, false},
		{"Primary CTA label", &c.CTAPrimaryLabel, false},
		{"Primary CTA section", &c.CTAPrimarySection, false},
		{"Secondary CTA label", &c.CTASecondaryLabel, false},
		{"Secondary CTA section", &c.CTASecondarySection, false},
	}
	for _, p := range prompts {
		var value string
		var err error
		if p.multi {
			value, err = s.driver.TextArea(ctx, TextAreaConfig{Message: p.label, Default: *p.value})
		} else {
			value, err = s.driver.Input(ctx, InputConfig{Message: p.label, Default: *p.value})
		}
		if err != nil {
			return err
		}
		*p.value = value
	}

	highlights, err := s.editRows(ctx, "Highlight", c.Highlights)
	if err != nil {
		return err
	}
	c.Highlights = highlights

	if err := s.editHeroMetrics(ctx, c); err != nil {
		return err
	}
	if err := s.editHeroLinks(ctx, c); err != nil {
		return err
	}
	if err := s.promptHeroImage(ctx, h); err != nil {
		return err
	}

	save, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Save hero content?", Default: true})
	if err != nil {
		return err
	}
	if !save {
		return nil
	}
	if h.Save(ctx) {
		return s.driver.Info(ctx, "Saved.")
	}
	return s.showBanner(ctx, h.Banner())
}

func (s *Session) editHeroMetrics(ctx context.Context, c *api.HeroContent) error {
	kept := []api.HeroMetric{}
	for _, m := range c.Metrics {
		value, err := s.driver.Input(ctx, InputConfig{
			Message: "Metric value",
			Default: m.Value,
			Help:    "clear to remove this metric",
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		label, err := s.driver.Input(ctx, InputConfig{Message: "Metric label", Default: m.Label})
		if err != nil {
			return err
		}
		kept = append(kept, api.HeroMetric{Value: value, Label: label})
	}
	for {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Add a metric?"})
		if err != nil {
			return err
		}
		if !more {
			break
		}
		value, err := s.driver.Input(ctx, InputConfig{Message: "Metric value"})
		if err != nil {
			return err
		}
		label, err := s.driver.Input(ctx, InputConfig{Message: "Metric label"})
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			break
		}
		kept = append(kept, api.HeroMetric{Value: value, Label: label})
	}
	c.Metrics = kept
	return nil
}

func (s *Session) editHeroLinks(ctx context.Context, c *api.HeroContent) error {
	kept := []api.HeroLink{}
	for _, l := range c.Links {
		label, err := s.driver.Input(ctx, InputConfig{
			Message: "Link label",
			Default: l.Label,
			Help:    "clear to remove this link",
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(label) == "" {
			continue
		}
		href, err := s.driver.Input(ctx, InputConfig{Message: "Link URL", Default: l.Href})
		if err != nil {
			return err
		}
		icon, err := s.driver.Input(ctx, InputConfig{Message: "Link icon id", Default: l.Icon})
		if err != nil {
			return err
		}
		kept = append(kept, api.HeroLink{Label: label, Href: href, Icon: icon})
	}
	for {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Add a link?"})
		if err != nil {
			return err
		}
		if !more {
			break
		}
		label, err := s.driver.Input(ctx, InputConfig{Message: "Link label"})
		if err != nil {
			return err
		}
		if strings.TrimSpace(label) == "" {
			break
		}
		href, err := s.driver.Input(ctx, InputConfig{Message: "Link URL"})
		if err != nil {
			return err
		}
		icon, err := s.driver.Input(ctx, InputConfig{Message: "Link icon id"})
		if err != nil {
			return err
		}
		kept = append(kept, api.HeroLink{Label: label, Href: href, Icon: icon})
	}
	c.Links = kept
	return nil
}

func (s *Session) promptHeroImage(ctx context.Context, h *editor.HeroForm) error {
	message := "Portrait image"
	if h.Content.ProfileImage != "" {
		message = fmt.Sprintf("Portrait image (current: %s)", h.Content.ProfileImage)
	}
	path, err := s.driver.Input(ctx, InputConfig{
		Message: message,
		Help:    "path to a local image; leave blank to keep as is",
	})
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		return s.driver.Info(ctx, "! open "+path+": "+err.Error())
	}
	defer file.Close()
	if !h.UploadImage(ctx, filepath.Base(path), file) {
		return s.showBanner(ctx, h.Banner())
	}
	return nil
}

// Stats prints the page-view dashboard. When a registry is given it also
// reports how many entries each collection currently holds.
func (s *Session) Stats(ctx context.Context, client *api.Client, registry *collections.Registry) error {
	stats, err := client.PageViewStats(ctx)
	if err != nil {
		if detail := api.Detail(err); detail != "" {
			return fmt.Errorf("tui: stats: %s", detail)
		}
		return fmt.Errorf("tui: stats: %w", err)
	}

	lines := []string{
		fmt.Sprintf("Total views:     %d", stats.TotalViews),
		fmt.Sprintf("Unique visitors: %d", stats.UniqueVisitors),
	}
	if registry != nil {
		lines = append(lines, "", "Entries:")
		for _, endpoint := range registry.Endpoints() {
			items, err := client.Collection(endpoint).List(ctx)
			if err != nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %-15s %d", endpoint, len(items)))
		}
	}
	lines = append(lines, "",
		fmt.Sprintf("Mobile:  %d", stats.Devices.Mobile),
		fmt.Sprintf("Desktop: %d", stats.Devices.Desktop),
	)
	if len(stats.PeakHours) > 0 {
		lines = append(lines, "", "Peak hours:")
		for _, p := range stats.PeakHours {
			lines = append(lines, fmt.Sprintf("  %02d:00  %d", p.Hour, p.Count))
		}
	}
	if len(stats.RecentViews) > 0 {
		lines = append(lines, "", "Recent views:")
		for _, v := range stats.RecentViews {
			lines = append(lines, fmt.Sprintf("  %-20s %s", v.Page, v.ViewedAt))
		}
	}
	return s.driver.Info(ctx, strings.Join(lines, "\n"))
}
