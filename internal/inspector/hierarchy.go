package inspector

import (
	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// WalkHierarchy returns the path from the root down to node, root first.
//
// The walk starts at node and follows Parent until there is none or depthCap
// steps have been taken, so a long chain keeps the depthCap elements nearest
// the leaf. Role-less ancestors are left out of the path but still use a
// step. Element handles have no stable identity, so the cap is the only
// protection against a parent chain that loops.
func WalkHierarchy(node platform.Node, depthCap int) []model.HierarchyNode {
	if node == nil || depthCap <= 0 {
		return nil
	}
	var path []model.HierarchyNode
	current := node
	for step := 0; step < depthCap; step++ {
		if n, ok := hierarchyNode(current); ok {
			path = append(path, n)
		}
		parent, ok := current.Parent()
		if !ok || parent == nil {
			break
		}
		current = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func hierarchyNode(node platform.Node) (model.HierarchyNode, bool) {
	role := readString(node, platform.AttrRole)
	if role == "" {
		return model.HierarchyNode{}, false
	}
	return model.HierarchyNode{
		Role:       role,
		Subrole:    readString(node, platform.AttrSubrole),
		Identifier: readString(node, platform.AttrIdentifier),
		Title:      readString(node, platform.AttrTitle),
	}, true
}

// WindowContext walks from node towards the root until it finds a window
// and returns that window's frame and title. The walk shares the hierarchy
// depth cap.
func WindowContext(node platform.Node, depthCap int) (*geom.Rect, string, bool) {
	current := node
	for step := 0; current != nil && step < depthCap; step++ {
		if model.IsWindowRole(readString(current, platform.AttrRole)) {
			title := readString(current, platform.AttrTitle)
			if f, ok := readFrame(current); ok {
				return &f, title, true
			}
			return nil, title, true
		}
		parent, ok := current.Parent()
		if !ok {
			break
		}
		current = parent
	}
	return nil, "", false
}
