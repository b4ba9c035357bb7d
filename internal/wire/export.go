package wire

import (
	"encoding/json"
	"fmt"

	"github.com/astrokit/seqedit/internal/catalog"
	"github.com/astrokit/seqedit/internal/models"
)

// Export serializes a document to the wire format. The three internal area
// forests are wrapped in synthetic area containers under a single root; item
// data maps are flattened into sibling fields of the node object.
func Export(doc *models.Sequence) ([]byte, error) {
	e := &idAlloc{}
	rootID := e.id()

	start := exportAreaContainer(e, doc.StartItems, "Start Area", startContainerType, rootID)
	target := exportAreaContainer(e, doc.TargetItems, "Target Area", targetContainerType, rootID)
	end := exportAreaContainer(e, doc.EndItems, "End Area", endContainerType, rootID)

	globalTriggers := make([]any, 0, len(doc.GlobalTriggers))
	for _, t := range doc.GlobalTriggers {
		globalTriggers = append(globalTriggers, exportTrigger(e, t, rootID))
	}

	root := map[string]any{
		"$id":           rootID,
		"$type":         rootContainerType,
		"Name":          doc.Title,
		"SequenceTitle": doc.Title,
		"Strategy":      map[string]any{"$type": sequentialStrategy},
		"IsExpanded":    true,
		"Items":         collection(e, itemCollectionType, []any{start, target, end}),
		"Conditions":    collection(e, conditionCollectionType, []any{}),
		"Triggers":      collection(e, triggerCollectionType, globalTriggers),
		"Parent":        nil,
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize sequence: %w", err)
	}
	return out, nil
}

func exportAreaContainer(e *idAlloc, items []*models.Item, name, typeTag, parentID string) map[string]any {
	containerID := e.id()
	values := make([]any, 0, len(items))
	for _, it := range items {
		values = append(values, exportItem(e, it, containerID))
	}
	return map[string]any{
		"$id":        containerID,
		"$type":      typeTag,
		"Name":       name,
		"Strategy":   map[string]any{"$type": sequentialStrategy},
		"IsExpanded": true,
		"Items":      collection(e, itemCollectionType, values),
		"Conditions": collection(e, conditionCollectionType, []any{}),
		"Triggers":   collection(e, triggerCollectionType, []any{}),
		"Parent":     map[string]any{"$ref": parentID},
	}
}

func exportItem(e *idAlloc, it *models.Item, parentID string) map[string]any {
	itemID := e.id()
	node := map[string]any{
		"$id":    itemID,
		"$type":  it.Type,
		"Name":   it.Name,
		"Parent": map[string]any{"$ref": parentID},
	}
	for k, v := range it.Data {
		node[k] = exportDataValue(e, k, v)
	}
	if !catalog.IsContainer(it.Type) {
		return node
	}

	node["Strategy"] = map[string]any{"$type": sequentialStrategy}
	expanded := true
	if it.Expanded != nil {
		expanded = *it.Expanded
	}
	node["IsExpanded"] = expanded

	children := make([]any, 0, len(it.Items))
	for _, child := range it.Items {
		children = append(children, exportItem(e, child, itemID))
	}
	node["Items"] = collection(e, itemCollectionType, children)

	conditions := make([]any, 0, len(it.Conditions))
	for _, c := range it.Conditions {
		conditions = append(conditions, exportCondition(e, c, itemID))
	}
	node["Conditions"] = collection(e, conditionCollectionType, conditions)

	triggers := make([]any, 0, len(it.Triggers))
	for _, t := range it.Triggers {
		triggers = append(triggers, exportTrigger(e, t, itemID))
	}
	node["Triggers"] = collection(e, triggerCollectionType, triggers)

	return node
}

func exportCondition(e *idAlloc, c *models.Condition, parentID string) map[string]any {
	node := map[string]any{
		"$id":    e.id(),
		"$type":  c.Type,
		"Name":   c.Name,
		"Parent": map[string]any{"$ref": parentID},
	}
	for k, v := range c.Data {
		node[k] = exportDataValue(e, k, v)
	}
	return node
}

func exportTrigger(e *idAlloc, t *models.Trigger, parentID string) map[string]any {
	triggerID := e.id()
	node := map[string]any{
		"$id":    triggerID,
		"$type":  t.Type,
		"Name":   t.Name,
		"Parent": map[string]any{"$ref": parentID},
	}
	for k, v := range t.Data {
		node[k] = exportDataValue(e, k, v)
	}
	if t.Items != nil {
		runner := make([]any, 0, len(t.Items))
		for _, it := range t.Items {
			runner = append(runner, exportItem(e, it, triggerID))
		}
		node["TriggerItems"] = collection(e, itemCollectionType, runner)
	}
	return node
}

func collection(e *idAlloc, typeTag string, values []any) map[string]any {
	return map[string]any{
		"$id":     e.id(),
		"$type":   typeTag,
		"$values": values,
	}
}

// exportDataValue deep-copies a data value into its wire shape. Nested
// objects get a wire identity of their own, and the keys in embeddedTypeTags
// additionally get the type discriminator the reading application expects.
func exportDataValue(e *idAlloc, key string, v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val)+2)
		out["$id"] = e.id()
		if tag, ok := embeddedTypeTags[key]; ok {
			out["$type"] = tag
		}
		for k, nested := range val {
			out[k] = exportDataValue(e, k, nested)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for n, nested := range val {
			out[n] = exportDataValue(e, key, nested)
		}
		return out
	default:
		return val
	}
}
