// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the forgefit client.
package util

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseIntPrefix parses the leading integer of s the way a browser's
// parseInt does: leading whitespace is skipped, an optional sign and an
// optional 0x prefix are accepted, and parsing stops at the first invalid
// character. ok is false when no digits were read.
func ParseIntPrefix(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		// Out of range: saturate rather than fail, there were digits.
		v = math.MaxInt64
	}
	if neg {
		v = -v
	}
	return int(v), true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 99
}

// ParseFloatPrefix parses the longest leading decimal literal of s, like a
// browser's parseFloat. It returns NaN when s has no numeric prefix.
func ParseFloatPrefix(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}

	// Range errors still yield ±Inf or 0, which is what parseFloat gives.
	v, _ := strconv.ParseFloat(s[:i], 64)
	return v
}

// FloatOrZero parses s with ParseFloatPrefix and maps NaN to 0.
func FloatOrZero(s string) float64 {
	v := ParseFloatPrefix(s)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// FormatNumber renders v rounded to one decimal without trailing zeros:
// 200 -> "200", 194.5 -> "194.5".
func FormatNumber(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// FormatGrams renders v rounded to whole grams, "150g".
func FormatGrams(v float64) string {
	r := math.Round(v)
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 0, 64) + "g"
}
