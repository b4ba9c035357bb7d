// Package tree implements pure structural operations over ordered forests
// of sequence items. Operations never mutate their input: they return a new
// forest that shares every subtree the operation did not touch, which keeps
// history snapshots cheap to take and compare.
package tree

import (
	"errors"

	"github.com/astrokit/seqedit/internal/models"
)

// Structural operation errors.
var (
	// ErrNotFound means the referenced identity is absent from the forest.
	// Callers generally treat this as a no-op rather than a failure: the
	// UI may race slightly ahead of the document state.
	ErrNotFound = errors.New("node not found")

	// ErrIntoDescendant means a move would place a node inside its own
	// subtree, which would orphan it from every root.
	ErrIntoDescendant = errors.New("cannot move a node into its own descendants")
)

// FindByID returns the first item with the given identity, searching
// depth-first through nested children. Identities are unique within a
// document, so search order only affects performance.
func FindByID(forest []*models.Item, id string) *models.Item {
	for _, it := range forest {
		if it.ID == id {
			return it
		}
		if found := FindByID(it.Items, id); found != nil {
			return found
		}
	}
	return nil
}

// FindParent returns the container that directly holds the item, or nil if
// the item sits at forest root (or is absent). Root-level membership and
// "no parent" are intentionally the same observable state.
func FindParent(forest []*models.Item, id string) *models.Item {
	for _, it := range forest {
		for _, child := range it.Items {
			if child.ID == id {
				return it
			}
		}
		if found := FindParent(it.Items, id); found != nil {
			return found
		}
	}
	return nil
}

// Contains reports whether the identity occurs anywhere in the forest.
func Contains(forest []*models.Item, id string) bool {
	return FindByID(forest, id) != nil
}

// RemoveByID returns a forest without the identified item. Every ancestor
// list that transitively contained it is rebuilt; siblings and unrelated
// subtrees are shared with the input. The second result reports whether the
// item was found.
func RemoveByID(forest []*models.Item, id string) ([]*models.Item, bool) {
	for n, it := range forest {
		if it.ID == id {
			out := make([]*models.Item, 0, len(forest)-1)
			out = append(out, forest[:n]...)
			out = append(out, forest[n+1:]...)
			return out, true
		}
		if !Contains(it.Items, id) {
			continue
		}
		children, _ := RemoveByID(it.Items, id)
		out := make([]*models.Item, len(forest))
		copy(out, forest)
		out[n] = withChildren(it, children)
		return out, true
	}
	return forest, false
}

// InsertAt returns a forest with the node spliced in. An empty parentID
// targets the forest root; otherwise the identified container's child list.
// Indexes beyond the list length append; negative indexes prepend. The
// second result is false when the parent does not exist.
func InsertAt(forest []*models.Item, parentID string, index int, node *models.Item) ([]*models.Item, bool) {
	if parentID == "" {
		return splice(forest, index, node), true
	}
	for n, it := range forest {
		if it.ID == parentID {
			out := make([]*models.Item, len(forest))
			copy(out, forest)
			out[n] = withChildren(it, splice(it.Items, index, node))
			return out, true
		}
		if children, ok := InsertAt(it.Items, parentID, index, node); ok {
			out := make([]*models.Item, len(forest))
			copy(out, forest)
			out[n] = withChildren(it, children)
			return out, true
		}
	}
	return forest, false
}

// MoveByID relocates a node to a new parent and index. The node object and
// all descendant identities are preserved; only its position changes. Moving
// a node into its own subtree returns the forest unchanged with
// ErrIntoDescendant. Indexes are interpreted against the forest after the
// node has been removed.
func MoveByID(forest []*models.Item, id, targetParentID string, index int) ([]*models.Item, error) {
	node := FindByID(forest, id)
	if node == nil {
		return forest, ErrNotFound
	}
	if targetParentID != "" {
		if targetParentID == id || Contains(node.Items, targetParentID) {
			return forest, ErrIntoDescendant
		}
	}
	removed, _ := RemoveByID(forest, id)
	out, ok := InsertAt(removed, targetParentID, index, node)
	if !ok {
		return forest, ErrNotFound
	}
	return out, nil
}

// IndexOf returns the position of the item within the list that directly
// holds it, searching the whole forest. Returns -1 when absent.
func IndexOf(forest []*models.Item, id string) int {
	if parent := FindParent(forest, id); parent != nil {
		return indexIn(parent.Items, id)
	}
	return indexIn(forest, id)
}

// Walk visits every structurally attached item depth-first, children after
// their container. Items inside trigger runner lists are skipped: those
// lists are opaque payload, replaced wholesale through the trigger that
// owns them, and every structural operation in this package shares that
// scope.
func Walk(forest []*models.Item, visit func(*models.Item)) {
	for _, it := range forest {
		visit(it)
		Walk(it.Items, visit)
	}
}

// WalkAll visits every item reachable from the forest, including items
// nested inside trigger runner lists.
func WalkAll(forest []*models.Item, visit func(*models.Item)) {
	for _, it := range forest {
		visit(it)
		WalkAll(it.Items, visit)
		for _, trig := range it.Triggers {
			WalkAll(trig.Items, visit)
		}
	}
}

// Count returns the number of items reachable from the forest, runner items
// included.
func Count(forest []*models.Item) int {
	total := 0
	WalkAll(forest, func(*models.Item) { total++ })
	return total
}

func indexIn(list []*models.Item, id string) int {
	for n, it := range list {
		if it.ID == id {
			return n
		}
	}
	return -1
}

// withChildren shallow-copies an item with a replacement child list, leaving
// the original untouched for snapshot sharing.
func withChildren(it *models.Item, children []*models.Item) *models.Item {
	out := *it
	out.Items = children
	return &out
}

// splice inserts a node at the clamped index, copying the list.
func splice(list []*models.Item, index int, node *models.Item) []*models.Item {
	if index < 0 {
		index = 0
	}
	if index > len(list) {
		index = len(list)
	}
	out := make([]*models.Item, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, node)
	out = append(out, list[index:]...)
	return out
}
