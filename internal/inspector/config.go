// Package inspector resolves accessibility elements under a screen point for
// one target process and builds the descriptors that annotations snapshot.
//
// Every query against the target collapses failure into "nothing here": a
// bad handle, a revoked permission or a stale reference all look like an
// empty point. Callers never see a partially built descriptor.
package inspector

import (
	"log/slog"
	"os"
	"time"

	"github.com/mj1618/desktop-annotator/internal/model"
)

// Config tunes resolution and scanning.
type Config struct {
	// DepthCap bounds ancestor walks in traversal steps.
	DepthCap int
	// SiblingCount is the maximum number of siblings per descriptor.
	SiblingCount int
	// SpatialTolerance is how far (in points) a sibling must sit above or
	// below the element before child order is overridden by layout.
	SpatialTolerance float64
	// ScanStep is the grid spacing for region scans.
	ScanStep float64
	// ScanMaxPoints caps the number of hit tests in one region scan.
	ScanMaxPoints int

	// SelfPID is this process; its windows block the target unless they
	// are pass-through.
	SelfPID int
	// PassThrough reports whether one of our own windows ignores mouse
	// events (overlays, floating labels). Nil means none do.
	PassThrough func(windowID int) bool
	// ExcludedOwners are window owners skipped regardless of geometry.
	ExcludedOwners []string

	// Forensic adds the full attribute dump and window level to descriptors.
	Forensic bool
	// CacheTTL keeps point queries for this long. Zero disables caching.
	CacheTTL time.Duration

	Logger *slog.Logger
}

// DefaultExcludedOwners are the system capture utilities whose full-screen
// transparent windows would otherwise block every point.
var DefaultExcludedOwners = []string{"screencaptureui", "Screenshot"}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		DepthCap:         model.HierarchyDepthCap,
		SiblingCount:     model.DefaultSiblingCount,
		SpatialTolerance: 10,
		ScanStep:         40,
		ScanMaxPoints:    400,
		SelfPID:          os.Getpid(),
		ExcludedOwners:   DefaultExcludedOwners,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DepthCap <= 0 {
		c.DepthCap = d.DepthCap
	}
	if c.SiblingCount < 0 {
		c.SiblingCount = 0
	}
	if c.SpatialTolerance < 0 {
		c.SpatialTolerance = d.SpatialTolerance
	}
	if c.ScanStep <= 0 {
		c.ScanStep = d.ScanStep
	}
	if c.ScanMaxPoints <= 0 {
		c.ScanMaxPoints = d.ScanMaxPoints
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
