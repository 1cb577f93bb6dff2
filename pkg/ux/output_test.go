// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"testing"
)

func TestSetPlainMode_Override(t *testing.T) {
	plain := true
	SetPlainMode(&plain)
	defer SetPlainMode(nil)

	if !PlainMode() {
		t.Error("Expected plain mode when forced on")
	}

	plain = false
	if PlainMode() {
		t.Error("Expected styled mode when forced off")
	}
}

func TestPlainMode_NoColorEnv(t *testing.T) {
	SetPlainMode(nil)
	t.Setenv("NO_COLOR", "1")

	if !PlainMode() {
		t.Error("Expected NO_COLOR to force plain mode")
	}
}

func TestIcon_Render_PlainMode(t *testing.T) {
	plain := true
	SetPlainMode(&plain)
	defer SetPlainMode(nil)

	tests := []struct {
		icon Icon
		want string
	}{
		{IconSuccess, "✓"},
		{IconWarning, "⚠"},
		{IconError, "✗"},
		{IconPending, "○"},
		{IconArrow, "→"},
		{IconBullet, "•"},
	}

	for _, tt := range tests {
		if got := tt.icon.Render(); got != tt.want {
			t.Errorf("Icon %q rendered as %q in plain mode", tt.want, got)
		}
	}
}

func TestIcon_Render_StyledModeKeepsGlyph(t *testing.T) {
	plain := false
	SetPlainMode(&plain)
	defer SetPlainMode(nil)

	rendered := IconSuccess.Render()
	if rendered == "" {
		t.Fatal("Expected non-empty render")
	}
	// Styling may wrap the glyph in escape codes but never replace it.
	if !containsRune(rendered, '✓') {
		t.Errorf("Expected glyph in styled render, got %q", rendered)
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
