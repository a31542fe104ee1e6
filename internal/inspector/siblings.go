package inspector

import (
	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// LocateSiblings returns up to maxCount neighbours of node under its parent,
// in child order, excluding node itself.
//
// The element is found among its parent's children by exact frame match,
// since handles cannot be compared. When two children share the frame the
// first one is taken. When none match the result is empty rather than a
// guess. Up to maxCount/2 preceding siblings are taken nearest-first, then
// following siblings fill the rest of the budget. Role-less candidates are
// skipped and do not use budget.
func LocateSiblings(node platform.Node, ref geom.Rect, maxCount int, tolerance float64) []model.SiblingDescriptor {
	if node == nil || maxCount <= 0 {
		return nil
	}
	parent, ok := node.Parent()
	if !ok || parent == nil {
		return nil
	}
	children := parent.Children()
	idx := -1
	for i, c := range children {
		if f, ok := readFrame(c); ok && f == ref {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	var before []model.SiblingDescriptor
	for i := idx - 1; i >= 0 && len(before) < maxCount/2; i-- {
		if s, ok := describeSibling(children[i], ref, true, tolerance); ok {
			before = append([]model.SiblingDescriptor{s}, before...)
		}
	}
	out := before
	for i := idx + 1; i < len(children) && len(out) < maxCount; i++ {
		if s, ok := describeSibling(children[i], ref, false, tolerance); ok {
			out = append(out, s)
		}
	}
	return out
}

func describeSibling(node platform.Node, ref geom.Rect, earlier bool, tolerance float64) (model.SiblingDescriptor, bool) {
	role := readString(node, platform.AttrRole)
	if role == "" {
		return model.SiblingDescriptor{}, false
	}
	pos := model.PositionAfter
	if earlier {
		pos = model.PositionBefore
	}
	if f, ok := readFrame(node); ok {
		pos = ClassifyPosition(earlier, f, ref, tolerance)
	}
	return model.SiblingDescriptor{
		Role:       role,
		Identifier: readString(node, platform.AttrIdentifier),
		Title:      readString(node, platform.AttrTitle),
		Position:   pos,
	}, true
}

// ClassifyPosition places a sibling relative to ref. Child order decides
// before or after, except that a sibling whose frame clears ref vertically by
// more than tolerance is above or below it. Accessibility child order does
// not reliably follow visual layout.
func ClassifyPosition(earlier bool, sibling, ref geom.Rect, tolerance float64) model.RelativePosition {
	if earlier {
		if ref.Y-sibling.MaxY() > tolerance {
			return model.PositionAbove
		}
		return model.PositionBefore
	}
	if sibling.Y-ref.MaxY() > tolerance {
		return model.PositionBelow
	}
	return model.PositionAfter
}
