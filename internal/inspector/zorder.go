package inspector

import (
	"strings"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
)

// GateDecision explains a z-order gate result.
type GateDecision struct {
	Frontmost bool
	// Window is the window that decided the outcome, nil when no window
	// contains the point.
	Window *model.WindowInfo
	Reason string
}

// ZOrderGate decides whether the target's window is the topmost window at a
// point, so hovers over an unrelated window covering the target are ignored.
type ZOrderGate struct {
	SelfPID        int
	PassThrough    func(windowID int) bool
	ExcludedOwners []string
}

// NewZOrderGate builds a gate from the inspector config.
func NewZOrderGate(cfg Config) *ZOrderGate {
	return &ZOrderGate{SelfPID: cfg.SelfPID, PassThrough: cfg.PassThrough, ExcludedOwners: cfg.ExcludedOwners}
}

// Decide walks windows front to back. p must already be in the window
// list's top-left-anchored convention.
//
// Our own pass-through windows are transparent; any other window of ours
// that contains p blocks. Excluded capture utilities are skipped outright.
// Otherwise the first window containing p decides: frontmost only when it
// belongs to targetPID.
func (g *ZOrderGate) Decide(windows []model.WindowInfo, p geom.Point, targetPID int) GateDecision {
	for i := range windows {
		w := &windows[i]
		if g.SelfPID != 0 && w.OwnerPID == g.SelfPID {
			if g.PassThrough != nil && g.PassThrough(w.ID) {
				continue
			}
			if w.Bounds.Contains(p) {
				return GateDecision{Window: w, Reason: "blocked by own window"}
			}
			continue
		}
		if g.excluded(w.OwnerName) {
			continue
		}
		if !w.Bounds.Contains(p) {
			continue
		}
		if w.OwnerPID == targetPID {
			return GateDecision{Frontmost: true, Window: w, Reason: "target window"}
		}
		return GateDecision{Window: w, Reason: "occluded by " + w.OwnerName}
	}
	return GateDecision{Reason: "no window at point"}
}

// IsTargetFrontmost is Decide reduced to its answer.
func (g *ZOrderGate) IsTargetFrontmost(windows []model.WindowInfo, p geom.Point, targetPID int) bool {
	return g.Decide(windows, p, targetPID).Frontmost
}

func (g *ZOrderGate) excluded(owner string) bool {
	for _, name := range g.ExcludedOwners {
		if strings.EqualFold(owner, name) {
			return true
		}
	}
	return false
}
