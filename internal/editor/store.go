package editor

import (
	"errors"

	"github.com/astrokit/seqedit/internal/catalog"
	"github.com/astrokit/seqedit/internal/models"
	"github.com/astrokit/seqedit/internal/tree"
)

// ErrNotContainer is returned when a child entity targets a leaf item.
var ErrNotContainer = errors.New("item is not a container")

// Store owns one sequence document and is the only permitted mutation path.
// Every mutating method records a history snapshot after applying; calls
// referencing identities that no longer exist are silent no-ops so the UI
// may race slightly ahead of the document state.
type Store struct {
	doc        *models.Sequence
	history    *History
	selection  Selection
	clipboard  Clipboard
	activeArea models.Area
}

// NewStore creates a store around an empty document.
func NewStore(title string) *Store {
	return NewStoreWithLimit(title, DefaultHistoryLimit)
}

// NewStoreWithLimit creates a store with a custom history cap.
func NewStoreWithLimit(title string, historyLimit int) *Store {
	doc := models.NewSequence(title)
	return &Store{
		doc:        doc,
		history:    NewHistory(doc, historyLimit),
		activeArea: models.AreaTarget,
	}
}

// Document returns the live document. Callers must treat it as read-only.
func (s *Store) Document() *models.Sequence { return s.doc }

// ActiveArea returns the area paste and root inserts target by default.
func (s *Store) ActiveArea() models.Area { return s.activeArea }

// SetActiveArea switches the paste/insert target area.
func (s *Store) SetActiveArea(area models.Area) { s.activeArea = area }

// Selection exposes the selection state.
func (s *Store) Selection() *Selection { return &s.selection }

// commit records the state after a mutation.
func (s *Store) commit() { s.history.Push(s.doc) }

// NewSequence replaces the document wholesale with a fresh empty one.
func (s *Store) NewSequence(title string) {
	s.doc = models.NewSequence(title)
	s.selection.Clear()
	s.commit()
}

// Load replaces the document wholesale, typically after an import.
func (s *Store) Load(doc *models.Sequence) {
	s.doc = doc
	s.selection.Clear()
	s.commit()
}

// SetTitle renames the document.
func (s *Store) SetTitle(title string) {
	s.doc.Title = title
	s.commit()
}

// AddItem creates an instruction from the catalog and splices it in. An
// empty parentID inserts at the root of the given area; otherwise the
// parent container is located in whatever area holds it.
func (s *Store) AddItem(area models.Area, parentID string, index int, typeTag string, ov catalog.Overrides) (*models.Item, error) {
	it := catalog.NewItem(typeTag, ov)
	if parentID != "" {
		parentArea, ok := s.areaOf(parentID)
		if !ok {
			return nil, tree.ErrNotFound
		}
		parent := tree.FindByID(s.doc.Forest(parentArea), parentID)
		if !parent.IsContainer() {
			return nil, ErrNotContainer
		}
		area = parentArea
	}
	forest, ok := tree.InsertAt(s.doc.Forest(area), parentID, index, it)
	if !ok {
		return nil, tree.ErrNotFound
	}
	s.doc.SetForest(area, forest)
	s.commit()
	return it, nil
}

// RemoveItem deletes an item from whichever area holds it. Missing ids are
// a no-op.
func (s *Store) RemoveItem(id string) {
	area, ok := s.areaOf(id)
	if !ok {
		return
	}
	forest, _ := tree.RemoveByID(s.doc.Forest(area), id)
	s.doc.SetForest(area, forest)
	s.selection.Drop(id)
	s.commit()
}

// MoveItem relocates an item within its area. The index is interpreted
// against the forest after the item has been removed. Moves into the item's
// own subtree or into a leaf leave the document unchanged and report the
// error.
func (s *Store) MoveItem(id, targetParentID string, index int) error {
	area, ok := s.areaOf(id)
	if !ok {
		return tree.ErrNotFound
	}
	if targetParentID != "" {
		parent := tree.FindByID(s.doc.Forest(area), targetParentID)
		if parent == nil {
			return tree.ErrNotFound
		}
		if !parent.IsContainer() {
			return ErrNotContainer
		}
	}
	forest, err := tree.MoveByID(s.doc.Forest(area), id, targetParentID, index)
	if err != nil {
		return err
	}
	s.doc.SetForest(area, forest)
	s.commit()
	return nil
}

// MoveItemUp swaps the item with its preceding sibling. First position is a
// no-op.
func (s *Store) MoveItemUp(id string) error {
	return s.moveBy(id, -1)
}

// MoveItemDown swaps the item with its following sibling. Last position is
// a no-op. The post-removal index shift is owned here, not by callers.
func (s *Store) MoveItemDown(id string) error {
	return s.moveBy(id, +1)
}

func (s *Store) moveBy(id string, delta int) error {
	area, ok := s.areaOf(id)
	if !ok {
		return tree.ErrNotFound
	}
	forest := s.doc.Forest(area)
	parent := tree.FindParent(forest, id)
	idx := tree.IndexOf(forest, id)
	siblings := forest
	parentID := ""
	if parent != nil {
		siblings = parent.Items
		parentID = parent.ID
	}
	target := idx + delta
	if target < 0 || target >= len(siblings) {
		return nil
	}
	return s.MoveItem(id, parentID, target)
}

// DuplicateItem inserts an identity-regenerated clone right after the
// original. Missing ids are a no-op.
func (s *Store) DuplicateItem(id string) *models.Item {
	area, ok := s.areaOf(id)
	if !ok {
		return nil
	}
	forest := s.doc.Forest(area)
	original := tree.FindByID(forest, id)
	clone := tree.CloneWithNewIDs(original)
	parentID := ""
	if parent := tree.FindParent(forest, id); parent != nil {
		parentID = parent.ID
	}
	forest, _ = tree.InsertAt(forest, parentID, tree.IndexOf(forest, id)+1, clone)
	s.doc.SetForest(area, forest)
	s.commit()
	return clone
}

// UpdateItemData merges the given entries into the item's data map.
func (s *Store) UpdateItemData(id string, data map[string]any) {
	it := s.findItem(id)
	if it == nil {
		return
	}
	for k, v := range data {
		it.Data[k] = v
	}
	s.commit()
}

// SetItemName renames an item.
func (s *Store) SetItemName(id, name string) {
	if it := s.findItem(id); it != nil {
		it.Name = name
		s.commit()
	}
}

// SetItemStatus updates an item's lifecycle status.
func (s *Store) SetItemStatus(id string, status models.Status) {
	if it := s.findItem(id); it != nil {
		it.Status = status
		s.commit()
	}
}

// ToggleExpanded flips the item's expanded flag, defaulting to open.
func (s *Store) ToggleExpanded(id string) {
	it := s.findItem(id)
	if it == nil {
		return
	}
	expanded := true
	if it.Expanded != nil {
		expanded = !*it.Expanded
	} else {
		expanded = false
	}
	it.Expanded = &expanded
	s.commit()
}

// SetTarget embeds a celestial target into a container's data map.
func (s *Store) SetTarget(containerID string, target models.Target) error {
	it := s.findItem(containerID)
	if it == nil {
		return tree.ErrNotFound
	}
	if !it.IsContainer() {
		return ErrNotContainer
	}
	it.Data["Target"] = target.ToData()
	s.commit()
	return nil
}

// Target reads the embedded target of a container, if any.
func (s *Store) Target(containerID string) (models.Target, bool) {
	it := s.findItem(containerID)
	if it == nil {
		return models.Target{}, false
	}
	return models.TargetFromData(it.Data)
}

// AddCondition attaches a new condition to a container.
func (s *Store) AddCondition(containerID, typeTag string, ov catalog.Overrides) (*models.Condition, error) {
	it := s.findItem(containerID)
	if it == nil {
		return nil, tree.ErrNotFound
	}
	if !it.IsContainer() {
		return nil, ErrNotContainer
	}
	c := catalog.NewCondition(typeTag, ov)
	it.Conditions = append(it.Conditions, c)
	s.commit()
	return c, nil
}

// RemoveCondition detaches a condition from whichever container holds it.
func (s *Store) RemoveCondition(id string) {
	for _, area := range models.Areas() {
		removed := false
		tree.Walk(s.doc.Forest(area), func(it *models.Item) {
			for n, c := range it.Conditions {
				if c.ID == id {
					it.Conditions = append(it.Conditions[:n], it.Conditions[n+1:]...)
					removed = true
					return
				}
			}
		})
		if removed {
			s.commit()
			return
		}
	}
}

// UpdateConditionData merges entries into a condition's data map.
func (s *Store) UpdateConditionData(id string, data map[string]any) {
	if c := s.findCondition(id); c != nil {
		for k, v := range data {
			c.Data[k] = v
		}
		s.commit()
	}
}

// AddTrigger attaches a new trigger to a container, or to the sequence-wide
// global list when containerID is empty.
func (s *Store) AddTrigger(containerID, typeTag string, ov catalog.Overrides) (*models.Trigger, error) {
	t := catalog.NewTrigger(typeTag, ov)
	if containerID == "" {
		s.doc.GlobalTriggers = append(s.doc.GlobalTriggers, t)
		s.commit()
		return t, nil
	}
	it := s.findItem(containerID)
	if it == nil {
		return nil, tree.ErrNotFound
	}
	if !it.IsContainer() {
		return nil, ErrNotContainer
	}
	it.Triggers = append(it.Triggers, t)
	s.commit()
	return t, nil
}

// RemoveTrigger detaches a trigger from its container or the global list.
func (s *Store) RemoveTrigger(id string) {
	for n, t := range s.doc.GlobalTriggers {
		if t.ID == id {
			s.doc.GlobalTriggers = append(s.doc.GlobalTriggers[:n], s.doc.GlobalTriggers[n+1:]...)
			s.commit()
			return
		}
	}
	for _, area := range models.Areas() {
		removed := false
		tree.Walk(s.doc.Forest(area), func(it *models.Item) {
			for n, t := range it.Triggers {
				if t.ID == id {
					it.Triggers = append(it.Triggers[:n], it.Triggers[n+1:]...)
					removed = true
					return
				}
			}
		})
		if removed {
			s.commit()
			return
		}
	}
}

// UpdateTriggerData merges entries into a trigger's data map.
func (s *Store) UpdateTriggerData(id string, data map[string]any) {
	if t := s.findTrigger(id); t != nil {
		for k, v := range data {
			t.Data[k] = v
		}
		s.commit()
	}
}

// SetTriggerItems replaces a trigger's runner sub-sequence. Runner items are
// managed wholesale: they are not addressable by the per-item operations and
// only change by replacing the whole list here.
func (s *Store) SetTriggerItems(id string, items []*models.Item) {
	if t := s.findTrigger(id); t != nil {
		t.Items = items
		s.commit()
	}
}

// Undo steps the document back one snapshot. Boundary calls are no-ops.
func (s *Store) Undo() bool {
	doc, ok := s.history.Undo()
	if ok {
		s.doc = doc
	}
	return ok
}

// Redo steps the document forward one snapshot. Boundary calls are no-ops.
func (s *Store) Redo() bool {
	doc, ok := s.history.Redo()
	if ok {
		s.doc = doc
	}
	return ok
}

// CanUndo reports whether Undo would change the document.
func (s *Store) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change the document.
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

// Copy snapshots the multi-selection (falling back to the primary) into the
// clipboard without touching the document.
func (s *Store) Copy() {
	items := s.selectedItems()
	if len(items) == 0 {
		return
	}
	s.clipboard.Set(ClipboardCopy, items)
}

// Cut snapshots the selection and removes the originals immediately.
func (s *Store) Cut() {
	items := s.selectedItems()
	if len(items) == 0 {
		return
	}
	s.clipboard.Set(ClipboardCut, items)
	for _, it := range items {
		s.RemoveItem(it.ID)
	}
}

// Paste inserts identity-regenerated clones of the clipboard into the
// active area. An empty parentID targets the area root; a parentID that is
// missing from the active area or names a leaf is a no-op. The clipboard
// keeps its contents, so repeated pastes produce repeated fresh copies.
func (s *Store) Paste(parentID string, index int) []*models.Item {
	if s.clipboard.Empty() {
		return nil
	}
	forest := s.doc.Forest(s.activeArea)
	if parentID != "" {
		parent := tree.FindByID(forest, parentID)
		if parent == nil || !parent.IsContainer() {
			return nil
		}
	}
	clones := s.clipboard.Items()
	inserted := make([]*models.Item, 0, len(clones))
	for _, clone := range clones {
		next, ok := tree.InsertAt(forest, parentID, index, clone)
		if !ok {
			continue
		}
		forest = next
		inserted = append(inserted, clone)
		index++
	}
	if len(inserted) == 0 {
		return nil
	}
	s.doc.SetForest(s.activeArea, forest)
	s.commit()
	return inserted
}

// CanPaste reports whether the clipboard holds items.
func (s *Store) CanPaste() bool { return !s.clipboard.Empty() }

// RemoveSelected deletes every multi-selected item. Members that already
// vanished are skipped silently.
func (s *Store) RemoveSelected() {
	for _, id := range s.selection.IDs() {
		s.RemoveItem(id)
	}
}

// DuplicateSelected duplicates every multi-selected item, skipping ids that
// no longer resolve.
func (s *Store) DuplicateSelected() {
	for _, id := range s.selection.IDs() {
		s.DuplicateItem(id)
	}
}

// ToggleDisabledSelected flips each selected item between DISABLED and
// CREATED. Nothing is recorded when no selected item resolves.
func (s *Store) ToggleDisabledSelected() {
	flipped := 0
	for _, id := range s.selection.IDs() {
		it := s.findItem(id)
		if it == nil {
			continue
		}
		if it.Status == models.StatusDisabled {
			it.Status = models.StatusCreated
		} else {
			it.Status = models.StatusDisabled
		}
		flipped++
	}
	if flipped > 0 {
		s.commit()
	}
}

// FindItem resolves an id anywhere in the three area forests.
func (s *Store) FindItem(id string) *models.Item { return s.findItem(id) }

// ParentOf returns the container directly holding the item, or nil for
// root-level items.
func (s *Store) ParentOf(id string) *models.Item {
	area, ok := s.areaOf(id)
	if !ok {
		return nil
	}
	return tree.FindParent(s.doc.Forest(area), id)
}

func (s *Store) areaOf(id string) (models.Area, bool) {
	for _, area := range models.Areas() {
		if tree.Contains(s.doc.Forest(area), id) {
			return area, true
		}
	}
	return "", false
}

func (s *Store) findItem(id string) *models.Item {
	for _, area := range models.Areas() {
		if it := tree.FindByID(s.doc.Forest(area), id); it != nil {
			return it
		}
	}
	return nil
}

func (s *Store) findCondition(id string) *models.Condition {
	var found *models.Condition
	for _, area := range models.Areas() {
		tree.Walk(s.doc.Forest(area), func(it *models.Item) {
			for _, c := range it.Conditions {
				if c.ID == id {
					found = c
					return
				}
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func (s *Store) findTrigger(id string) *models.Trigger {
	for _, t := range s.doc.GlobalTriggers {
		if t.ID == id {
			return t
		}
	}
	var found *models.Trigger
	for _, area := range models.Areas() {
		tree.Walk(s.doc.Forest(area), func(it *models.Item) {
			for _, t := range it.Triggers {
				if t.ID == id {
					found = t
					return
				}
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func (s *Store) selectedItems() []*models.Item {
	ids := s.selection.IDs()
	if len(ids) == 0 && s.selection.Primary() != "" {
		ids = []string{s.selection.Primary()}
	}
	items := make([]*models.Item, 0, len(ids))
	for _, id := range ids {
		if it := s.findItem(id); it != nil {
			items = append(items, it)
		}
	}
	return items
}
