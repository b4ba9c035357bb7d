package tree

import (
	"github.com/google/uuid"

	"github.com/astrokit/seqedit/internal/models"
)

// CloneWithNewIDs deep-clones an item and regenerates the identity of the
// clone and every descendant item, condition and trigger, including items
// nested inside trigger runner lists. Duplicate and paste build on this so
// two logically identical subtrees never share an identity.
func CloneWithNewIDs(it *models.Item) *models.Item {
	out := it.Clone()
	reidentifyItem(out)
	return out
}

// CloneItemsWithNewIDs clones a whole list, regenerating every identity.
func CloneItemsWithNewIDs(items []*models.Item) []*models.Item {
	out := make([]*models.Item, len(items))
	for n, it := range items {
		out[n] = CloneWithNewIDs(it)
	}
	return out
}

// CloneTriggerWithNewIDs clones a trigger and its runner items with fresh
// identities.
func CloneTriggerWithNewIDs(t *models.Trigger) *models.Trigger {
	out := t.Clone()
	reidentifyTrigger(out)
	return out
}

// CloneConditionWithNewIDs clones a condition with a fresh identity.
func CloneConditionWithNewIDs(c *models.Condition) *models.Condition {
	out := c.Clone()
	out.ID = uuid.New().String()
	return out
}

func reidentifyItem(it *models.Item) {
	it.ID = uuid.New().String()
	for _, child := range it.Items {
		reidentifyItem(child)
	}
	for _, c := range it.Conditions {
		c.ID = uuid.New().String()
	}
	for _, t := range it.Triggers {
		reidentifyTrigger(t)
	}
}

func reidentifyTrigger(t *models.Trigger) {
	t.ID = uuid.New().String()
	for _, child := range t.Items {
		reidentifyItem(child)
	}
}
