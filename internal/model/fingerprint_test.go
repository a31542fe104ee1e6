package model

import (
	"testing"

	"github.com/mj1618/desktop-annotator/internal/geom"
)

func TestFingerprint_StableAndDistinct(t *testing.T) {
	a := ElementDescriptor{Role: "AXButton", Title: "Save", Frame: geom.R(10, 10, 80, 30)}
	b := a
	b.Value = "changed"
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("value changes should not affect the fingerprint")
	}
	if len(Fingerprint(a)) != 16 {
		t.Errorf("expected 16 hex chars, got %q", Fingerprint(a))
	}
	c := a
	c.Frame = geom.R(10, 50, 80, 30)
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("different frames should produce different fingerprints")
	}
}

func TestSameElement(t *testing.T) {
	a := ElementDescriptor{Role: "AXButton", Title: "Save", Frame: geom.R(10, 10, 80, 30)}
	b := a
	b.HelpText = "Saves the document"
	if !SameElement(a, b) {
		t.Error("expected same element")
	}
	b.Identifier = "save"
	if SameElement(a, b) {
		t.Error("identifier difference should break equality")
	}
}
