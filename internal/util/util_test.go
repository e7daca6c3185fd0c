// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, AtomicWriteFile(fs, "/out/deep/log.json", []byte("hello"), 0600))

	data, err := afero.ReadFile(fs, "/out/deep/log.json")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, AtomicWriteFile(fs, "/a.txt", []byte("initial"), 0644))
	require.NoError(t, AtomicWriteFile(fs, "/a.txt", []byte("updated"), 0644))

	data, err := afero.ReadFile(fs, "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "updated", string(data))

	entries, err := afero.ReadDir(fs, "/")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

// =============================================================================
// NUMBER PARSING TESTS
// =============================================================================

func TestParseIntPrefix(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"12", 12, true},
		{"  8 reps", 8, true},
		{"-3", -3, true},
		{"+4", 4, true},
		{"7.9", 7, true},
		{"0x1A", 26, true},
		{"abc", 0, false},
		{"", 0, false},
		{"0x", 0, false},
		{"-", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseIntPrefix(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFloatPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"62.5", 62.5},
		{" 40kg", 40},
		{"20g", 20},
		{".5", 0.5},
		{"5.", 5},
		{"-1.25e2", -125},
		{"3e", 3},
		{"1.2.3", 1.2},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseFloatPrefix(tc.in))
		})
	}
}

func TestParseFloatPrefix_NaNAndInfinity(t *testing.T) {
	assert.True(t, math.IsNaN(ParseFloatPrefix("heavy")))
	assert.True(t, math.IsNaN(ParseFloatPrefix("")))
	assert.True(t, math.IsNaN(ParseFloatPrefix(".")))
	assert.True(t, math.IsInf(ParseFloatPrefix("Infinity"), 1))
	assert.True(t, math.IsInf(ParseFloatPrefix("-Infinity"), -1))
}

func TestFloatOrZero(t *testing.T) {
	assert.Equal(t, 0.0, FloatOrZero(""))
	assert.Equal(t, 3.6, FloatOrZero("3.6"))
}

// =============================================================================
// FORMATTING TESTS
// =============================================================================

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "200", FormatNumber(200))
	assert.Equal(t, "194.5", FormatNumber(194.5))
	assert.Equal(t, "0.3", FormatNumber(0.1+0.2))
	assert.Equal(t, "0", FormatNumber(-0.01))
	assert.Equal(t, "12.3", FormatNumber(12.34))
}

func TestFormatGrams(t *testing.T) {
	assert.Equal(t, "150g", FormatGrams(149.6))
	assert.Equal(t, "0g", FormatGrams(0))
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	assert.Equal(t, "hello", TruncateWidth("hello", 10))
	assert.Equal(t, "hel...", TruncateWidth("hello world", 6))
	assert.Equal(t, "", TruncateWidth("hello", 0))
	assert.Equal(t, "日本...", TruncateWidth("日本語テキスト", 7))
}

func TestPadWidth(t *testing.T) {
	assert.Equal(t, "ab   ", PadWidth("ab", 5))
	assert.Equal(t, "   ab", PadLeftWidth("ab", 5))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank("  \t\n"))
	assert.False(t, IsBlank(" x "))
}
