package model

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("desktop-annotator/element-finger")

// Fingerprint is a value-equality identity for an element: role, identifier,
// title and frame. Accessibility handles have no stable identity across
// queries, so two visually overlapping elements with the same attributes
// share a fingerprint.
func Fingerprint(d ElementDescriptor) string {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		// Only fails for a key that is not 32 bytes.
		panic(err)
	}
	fmt.Fprintf(h, "%s|%s|%s|%s", d.Role, d.Identifier, d.Title, d.Frame.Key())
	return fmt.Sprintf("%016x", h.Sum64())
}

// SameElement reports whether two descriptors most likely describe the same
// element.
func SameElement(a, b ElementDescriptor) bool {
	return a.Role == b.Role && a.Identifier == b.Identifier && a.Title == b.Title && a.Frame == b.Frame
}
