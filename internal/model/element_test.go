package model

import (
	"encoding/json"
	"testing"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"gopkg.in/yaml.v3"
)

func TestElementDescriptor_OmitEmpty(t *testing.T) {
	d := ElementDescriptor{Role: "AXButton", Frame: geom.R(10, 10, 80, 30)}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"role", "frame"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in JSON output", key)
		}
	}
	for _, key := range []string{"title", "identifier", "enabled", "focused", "path", "siblings", "attributes", "window_frame"} {
		if _, ok := m[key]; ok {
			t.Errorf("unexpected empty key %q in JSON output", key)
		}
	}
}

func TestElementDescriptor_GenerationNotSerialized(t *testing.T) {
	d := ElementDescriptor{Role: "AXButton", Generation: 7}
	data, err := yaml.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var back ElementDescriptor
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Generation != 0 {
		t.Errorf("generation should not round-trip, got %d", back.Generation)
	}
}

func TestElementDescriptor_Label(t *testing.T) {
	tests := []struct {
		d    ElementDescriptor
		want string
	}{
		{ElementDescriptor{Role: "AXButton", Title: "Save", Identifier: "save"}, "Save"},
		{ElementDescriptor{Role: "AXButton", Identifier: "save"}, "save"},
		{ElementDescriptor{Role: "AXImage", Description: "logo"}, "logo"},
		{ElementDescriptor{Role: "AXGroup"}, ""},
	}
	for _, tt := range tests {
		if got := tt.d.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestElementDescriptor_Node(t *testing.T) {
	d := ElementDescriptor{Role: "AXButton", Subrole: "AXCloseButton", Identifier: "close", Title: "Close", Value: "x"}
	n := d.Node()
	if n.Role != "AXButton" || n.Subrole != "AXCloseButton" || n.Identifier != "close" || n.Title != "Close" {
		t.Errorf("Node() = %+v", n)
	}
}

func TestNewAnnotation_WindowTitleFallback(t *testing.T) {
	d := ElementDescriptor{Role: "AXButton", WindowTitle: "Untitled"}
	a := NewAnnotation(d, "fix", "", "TextEdit", "com.apple.TextEdit")
	if a.WindowTitle != "Untitled" {
		t.Errorf("window title: got %q, want %q", a.WindowTitle, "Untitled")
	}
	if a.ID == "" {
		t.Error("expected an ID")
	}
	if a.Badge != 0 {
		t.Errorf("badge should be unassigned before Add, got %d", a.Badge)
	}
	if a.CreatedAt.IsZero() {
		t.Error("expected creation timestamp")
	}

	b := NewAnnotation(d, "fix", "Explicit", "TextEdit", "")
	if b.WindowTitle != "Explicit" {
		t.Errorf("window title: got %q, want %q", b.WindowTitle, "Explicit")
	}
	if a.ID == b.ID {
		t.Error("IDs must be unique")
	}
}

func TestWindowInfo_ToWindow(t *testing.T) {
	w := WindowInfo{ID: 42, OwnerPID: 7, OwnerName: "Notes", Title: "Inbox", Bounds: geom.R(1, 2, 300.6, 400)}
	got := w.ToWindow()
	want := Window{App: "Notes", PID: 7, Title: "Inbox", ID: 42, Bounds: [4]int{1, 2, 300, 400}}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestElementDescriptor_CloneIsDeep(t *testing.T) {
	enabled := true
	d := ElementDescriptor{
		Role:          "AXButton",
		Enabled:       &enabled,
		HierarchyPath: []HierarchyNode{{Role: "AXWindow"}},
		AllAttributes: map[string]string{"AXTitle": "Save"},
	}
	c := d.Clone()
	c.AllAttributes["AXTitle"] = "x"
	c.HierarchyPath[0].Role = "AXGroup"
	*c.Enabled = false

	if d.AllAttributes["AXTitle"] != "Save" || d.HierarchyPath[0].Role != "AXWindow" || !*d.Enabled {
		t.Errorf("clone shares state with the original: %+v", d)
	}
}
