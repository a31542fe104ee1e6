package model

import "github.com/mj1618/desktop-annotator/internal/geom"

// Window represents an application window.
type Window struct {
	App     string `yaml:"app"               json:"app"`
	PID     int    `yaml:"pid"               json:"pid"`
	Title   string `yaml:"title"             json:"title"`
	ID      int    `yaml:"id"                json:"id"`
	Bounds  [4]int `yaml:"bounds"            json:"bounds"`
	Focused bool   `yaml:"focused,omitempty" json:"focused,omitempty"`
}

// WindowInfo is one entry of the window server's on-screen list. Bounds use
// the top-left-anchored convention shared with accessibility space.
type WindowInfo struct {
	ID        int       `yaml:"id"                json:"id"`
	OwnerPID  int       `yaml:"pid"               json:"pid"`
	OwnerName string    `yaml:"owner"             json:"owner"`
	Title     string    `yaml:"title,omitempty"   json:"title,omitempty"`
	Bounds    geom.Rect `yaml:"bounds"            json:"bounds"`
	Layer     int       `yaml:"layer"             json:"layer"`
	Alpha     float64   `yaml:"alpha,omitempty"   json:"alpha,omitempty"`
	OnScreen  bool      `yaml:"onscreen"          json:"onscreen"`
}

// ToWindow converts a window-server entry to the listing form.
func (w WindowInfo) ToWindow() Window {
	return Window{
		App:    w.OwnerName,
		PID:    w.OwnerPID,
		Title:  w.Title,
		ID:     w.ID,
		Bounds: w.Bounds.Ints(),
	}
}
