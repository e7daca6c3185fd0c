// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTheme_ForcedModes(t *testing.T) {
	assert.True(t, NewTheme("dark").IsDark)
	assert.False(t, NewTheme("light").IsDark)
}

func TestTheme_RendersText(t *testing.T) {
	theme := NewTheme("dark")
	for _, s := range []string{
		theme.TabActive.Render("Mon"),
		theme.LoggedBadge.Render("Logged"),
		theme.AlertBox.Render("Please enter reps and weight."),
		theme.RoleStyle("error").Render("Error: boom"),
	} {
		assert.NotEmpty(t, strings.TrimSpace(s))
	}
}

func TestDefaultTheme(t *testing.T) {
	custom := NewTheme("light")
	SetDefaultTheme(custom)
	assert.Same(t, custom, DefaultTheme())
}
