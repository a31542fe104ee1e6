package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Annotation is a change request attached to one element. It carries a full
// snapshot of the element's descriptor so the export stays meaningful after
// the target application changes.
type Annotation struct {
	ID          string            `yaml:"id"                     json:"id"`
	Badge       int               `yaml:"badge"                  json:"badge"`
	Text        string            `yaml:"text"                   json:"text"`
	Element     ElementDescriptor `yaml:"element"                json:"element"`
	AppName     string            `yaml:"app,omitempty"          json:"app,omitempty"`
	BundleID    string            `yaml:"bundle_id,omitempty"    json:"bundle_id,omitempty"`
	WindowTitle string            `yaml:"window_title,omitempty" json:"window_title,omitempty"`
	RegionID    string            `yaml:"region_id,omitempty"    json:"region_id,omitempty"`
	CreatedAt   time.Time         `yaml:"created_at"             json:"created_at"`
}

// NewAnnotation builds an annotation for desc. The badge number is assigned
// when the annotation is added to a store. An empty windowTitle falls back
// to the window the element was found in.
func NewAnnotation(desc ElementDescriptor, text, windowTitle, appName, bundleID string) Annotation {
	if windowTitle == "" {
		windowTitle = desc.WindowTitle
	}
	return Annotation{
		ID:          NewID(),
		Text:        text,
		Element:     desc,
		AppName:     appName,
		BundleID:    bundleID,
		WindowTitle: windowTitle,
		CreatedAt:   time.Now(),
	}
}

// NewID returns a new time-ordered unique identifier.
func NewID() string {
	return ulid.Make().String()
}
