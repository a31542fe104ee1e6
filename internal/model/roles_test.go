package model

import "testing"

func TestDisplayRole(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AXButton", "Button"},
		{"AXStaticText", "StaticText"},
		{"Button", "Button"},
		{"AX", "AX"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DisplayRole(tt.input); got != tt.want {
			t.Errorf("DisplayRole(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAXRole(t *testing.T) {
	if got := AXRole("Button"); got != "AXButton" {
		t.Errorf("AXRole(Button) = %q", got)
	}
	if got := AXRole("AXButton"); got != "AXButton" {
		t.Errorf("AXRole(AXButton) = %q", got)
	}
	if got := AXRole(""); got != "" {
		t.Errorf("AXRole(\"\") = %q", got)
	}
}

func TestExpandRoles_MetaRole(t *testing.T) {
	got := ExpandRoles([]string{"interactive"})
	if len(got) != len(MetaRoles["interactive"]) {
		t.Fatalf("expected %d roles, got %d: %v", len(MetaRoles["interactive"]), len(got), got)
	}
}

func TestExpandRoles_NormalisesAndDedupes(t *testing.T) {
	got := ExpandRoles([]string{"Button", "AXButton", "text", "StaticText"})
	seen := map[string]int{}
	for _, r := range got {
		seen[r]++
	}
	if seen["AXButton"] != 1 {
		t.Errorf("AXButton should appear once, got %d in %v", seen["AXButton"], got)
	}
	if seen["AXStaticText"] != 1 {
		t.Errorf("AXStaticText should appear once, got %d in %v", seen["AXStaticText"], got)
	}
	if got[0] != "AXButton" {
		t.Errorf("order should be preserved, got %v", got)
	}
}

func TestIsWindowRole(t *testing.T) {
	if !IsWindowRole("AXWindow") || !IsWindowRole("Window") {
		t.Error("expected window roles to match")
	}
	if IsWindowRole("AXSheet") {
		t.Error("AXSheet is not a window role")
	}
}
