// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// replyRenderer renders assistant replies as markdown, caching the output
// per message since replies never change once received.
type replyRenderer struct {
	enabled bool
	dark    bool
	width   int
	tr      *glamour.TermRenderer
	cache   map[string]string
}

func newReplyRenderer(enabled, dark bool) *replyRenderer {
	return &replyRenderer{enabled: enabled, dark: dark, cache: make(map[string]string)}
}

// SetEnabled switches markdown rendering on or off.
func (r *replyRenderer) SetEnabled(on bool) {
	if r.enabled != on {
		r.enabled = on
		r.cache = make(map[string]string)
	}
}

// Render returns text laid out for width columns.
func (r *replyRenderer) Render(id, text string, width int) string {
	if !r.enabled || width < 10 {
		return wrap(text, width)
	}
	if r.tr == nil || r.width != width {
		// No auto style: Bubble Tea owns the terminal while running.
		style := "light"
		if r.dark {
			style = "dark"
		}
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Printf("dashboard: markdown renderer: %v", err)
			return wrap(text, width)
		}
		r.tr = tr
		r.width = width
		r.cache = make(map[string]string)
	}

	if out, ok := r.cache[id]; ok {
		return out
	}
	out, err := r.tr.Render(text)
	if err != nil {
		return wrap(text, width)
	}
	out = strings.Trim(out, "\n")
	r.cache[id] = out
	return out
}

// wrap soft-wraps s to width columns.
func wrap(s string, width int) string {
	if width < 1 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
