// Package darwin provides macOS platform support using the Accessibility,
// CoreGraphics and AppKit APIs. All functionality requires cgo; elsewhere
// the package is empty and platform.NewProvider reports ErrUnsupported.
package darwin
