package inspector

import (
	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// Resolver hit-tests a target and builds descriptors.
type Resolver struct {
	cfg Config
}

// NewResolver returns a resolver using cfg.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg.withDefaults()}
}

// Resolve hit-tests p (accessibility space) in app and describes the
// deepest element there. A failed query, or an element without a readable
// role, is reported as false; it is a normal outcome, not an error.
func (r *Resolver) Resolve(app platform.Application, p geom.Point) (model.ElementDescriptor, bool) {
	if app == nil {
		return model.ElementDescriptor{}, false
	}
	node, ok := app.ElementAt(p)
	if !ok || node == nil {
		return model.ElementDescriptor{}, false
	}
	desc, ok := r.Describe(node)
	if !ok {
		return model.ElementDescriptor{}, false
	}
	desc.PID = app.PID()
	return desc, true
}

// Describe builds the full descriptor for node: attributes, hierarchy path,
// siblings and window context, plus the attribute dump in forensic mode.
func (r *Resolver) Describe(node platform.Node) (model.ElementDescriptor, bool) {
	desc, ok := ExtractStandard(node)
	if !ok {
		return model.ElementDescriptor{}, false
	}
	desc.HierarchyPath = WalkHierarchy(node, r.cfg.DepthCap)
	desc.Siblings = LocateSiblings(node, desc.Frame, r.cfg.SiblingCount, r.cfg.SpatialTolerance)
	if frame, title, ok := WindowContext(node, r.cfg.DepthCap); ok {
		desc.WindowFrame = frame
		desc.WindowTitle = title
	}
	if r.cfg.Forensic {
		desc.AllAttributes = ExtractAllAttributes(node)
	}
	return desc, true
}
