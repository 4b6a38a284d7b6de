package tui

import (
	"context"
	"testing"
)

// stubDriver replays scripted answers in call order. Exhausting a script
// fails the test with the prompt that went unanswered.
type stubDriver struct {
	t *testing.T

	inputs    []string
	confirms  []bool
	selects   []int
	multis    [][]int
	textareas []string
	passwords []string

	inputPos    int
	confirmPos  int
	selectPos   int
	multiPos    int
	textareaPos int
	passwordPos int

	infos []string
}

func (d *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if d.inputPos >= len(d.inputs) {
		d.t.Fatalf("unexpected Input prompt %q", cfg.Message)
	}
	out := d.inputs[d.inputPos]
	d.inputPos++
	if cfg.Validator != nil && out != "" {
		if err := cfg.Validator(out); err != nil {
			d.t.Fatalf("scripted input %q rejected by validator: %v", out, err)
		}
	}
	return out, nil
}

func (d *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	if d.passwordPos >= len(d.passwords) {
		d.t.Fatalf("unexpected Password prompt %q", cfg.Message)
	}
	out := d.passwords[d.passwordPos]
	d.passwordPos++
	return out, nil
}

func (d *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if d.confirmPos >= len(d.confirms) {
		d.t.Fatalf("unexpected Confirm prompt %q", cfg.Message)
	}
	out := d.confirms[d.confirmPos]
	d.confirmPos++
	return out, nil
}

func (d *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if d.selectPos >= len(d.selects) {
		d.t.Fatalf("unexpected Select prompt %q (options %v)", cfg.Message, cfg.Options)
	}
	out := d.selects[d.selectPos]
	d.selectPos++
	if out >= len(cfg.Options) {
		d.t.Fatalf("scripted choice %d out of range for %q (options %v)", out, cfg.Message, cfg.Options)
	}
	return out, nil
}

func (d *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	if d.multiPos >= len(d.multis) {
		d.t.Fatalf("unexpected MultiSelect prompt %q", cfg.Message)
	}
	out := d.multis[d.multiPos]
	d.multiPos++
	return out, nil
}

func (d *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if d.textareaPos >= len(d.textareas) {
		d.t.Fatalf("unexpected TextArea prompt %q", cfg.Message)
	}
	out := d.textareas[d.textareaPos]
	d.textareaPos++
	return out, nil
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}
