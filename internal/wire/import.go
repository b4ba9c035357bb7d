package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/astrokit/seqedit/internal/catalog"
	"github.com/astrokit/seqedit/internal/models"
)

// ErrUnknownFormat is returned when the root node is neither a sequence
// root container nor a template container.
var ErrUnknownFormat = errors.New("unknown wire format")

// Import parses a wire document into a sequence. Root containers become a
// full three-area document; any other container is treated as a template
// whose items land in the target area. Wire identities are discarded and
// every entity receives a fresh internal id.
func Import(raw []byte) (*models.Sequence, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse wire JSON: %w", err)
	}
	typeTag, ok := data["$type"].(string)
	if !ok {
		return nil, errors.New("missing $type field")
	}
	switch {
	case strings.Contains(typeTag, "SequenceRootContainer"):
		return importRoot(data)
	case strings.Contains(typeTag, "Container"):
		return importTemplateDoc(data), nil
	default:
		return nil, ErrUnknownFormat
	}
}

func importRoot(data map[string]any) (*models.Sequence, error) {
	title := stringOr(data["SequenceTitle"], "")
	if title == "" {
		title = stringOr(data["Name"], "Imported Sequence")
	}

	areaNodes, ok := collectionValues(data["Items"])
	if !ok {
		return nil, errors.New("missing Items array")
	}

	doc := models.NewSequence(title)
	for _, raw := range areaNodes {
		node, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		typeTag, _ := node["$type"].(string)
		items := importContainerItems(node)
		switch {
		case strings.Contains(typeTag, "StartAreaContainer"):
			doc.StartItems = items
		case strings.Contains(typeTag, "TargetAreaContainer"):
			doc.TargetItems = items
		case strings.Contains(typeTag, "EndAreaContainer"):
			doc.EndItems = items
		}
	}

	if triggers, ok := collectionValues(data["Triggers"]); ok {
		for _, raw := range triggers {
			if node, ok := raw.(map[string]any); ok {
				if t := importTrigger(node); t != nil {
					doc.GlobalTriggers = append(doc.GlobalTriggers, t)
				}
			}
		}
	}
	return doc, nil
}

func importTemplateDoc(data map[string]any) *models.Sequence {
	doc := models.NewSequence(stringOr(data["Name"], "Imported Template"))
	doc.TargetItems = importContainerItems(data)
	return doc
}

func importContainerItems(container map[string]any) []*models.Item {
	values, ok := collectionValues(container["Items"])
	if !ok {
		return []*models.Item{}
	}
	items := make([]*models.Item, 0, len(values))
	for _, raw := range values {
		if node, ok := raw.(map[string]any); ok {
			if it := importItem(node); it != nil {
				items = append(items, it)
			}
		}
	}
	return items
}

// itemReservedKeys are the wire metadata fields of an item node. Everything
// else is copied verbatim into the data map, which keeps the importer
// forward-compatible with instruction fields it has never seen.
var itemReservedKeys = map[string]bool{
	"Parent":     true,
	"Items":      true,
	"Conditions": true,
	"Triggers":   true,
	"Strategy":   true,
	"Name":       true,
	"IsExpanded": true,
}

func importItem(data map[string]any) *models.Item {
	typeTag, ok := data["$type"].(string)
	if !ok {
		return nil
	}
	it := &models.Item{
		ID:       uuid.New().String(),
		Type:     typeTag,
		Name:     stringOr(data["Name"], "Unknown"),
		Category: catalog.Category(typeTag),
		Status:   models.StatusCreated,
		Data:     map[string]any{},
	}
	if expanded, ok := data["IsExpanded"].(bool); ok {
		it.Expanded = &expanded
	}

	for k, v := range data {
		if strings.HasPrefix(k, "$") || itemReservedKeys[k] {
			continue
		}
		it.Data[k] = stripMetaValue(v)
	}

	// Container-ness comes from the type tag, never from wire structure.
	if catalog.IsContainer(typeTag) {
		it.Items = importContainerItems(data)
		it.Conditions = []*models.Condition{}
		it.Triggers = []*models.Trigger{}
		if values, ok := collectionValues(data["Conditions"]); ok {
			for _, raw := range values {
				if node, ok := raw.(map[string]any); ok {
					if c := importCondition(node); c != nil {
						it.Conditions = append(it.Conditions, c)
					}
				}
			}
		}
		if values, ok := collectionValues(data["Triggers"]); ok {
			for _, raw := range values {
				if node, ok := raw.(map[string]any); ok {
					if t := importTrigger(node); t != nil {
						it.Triggers = append(it.Triggers, t)
					}
				}
			}
		}
	}
	return it
}

func importCondition(data map[string]any) *models.Condition {
	typeTag, ok := data["$type"].(string)
	if !ok {
		return nil
	}
	c := &models.Condition{
		ID:       uuid.New().String(),
		Type:     typeTag,
		Name:     stringOr(data["Name"], "Unknown"),
		Category: catalog.Category(typeTag),
		Data:     map[string]any{},
	}
	for k, v := range data {
		if strings.HasPrefix(k, "$") || k == "Parent" || k == "Name" || k == "Strategy" {
			continue
		}
		c.Data[k] = stripMetaValue(v)
	}
	return c
}

func importTrigger(data map[string]any) *models.Trigger {
	typeTag, ok := data["$type"].(string)
	if !ok {
		return nil
	}
	t := &models.Trigger{
		ID:       uuid.New().String(),
		Type:     typeTag,
		Name:     stringOr(data["Name"], "Unknown"),
		Category: catalog.Category(typeTag),
		Data:     map[string]any{},
	}
	for k, v := range data {
		if strings.HasPrefix(k, "$") || k == "Parent" || k == "Name" || k == "Strategy" || k == "TriggerItems" {
			continue
		}
		t.Data[k] = stripMetaValue(v)
	}
	if values, ok := collectionValues(data["TriggerItems"]); ok {
		t.Items = []*models.Item{}
		for _, raw := range values {
			if node, ok := raw.(map[string]any); ok {
				if it := importItem(node); it != nil {
					t.Items = append(t.Items, it)
				}
			}
		}
	}
	return t
}

// collectionValues unwraps a wire collection object down to its $values
// array.
func collectionValues(v any) ([]any, bool) {
	coll, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	values, ok := coll["$values"].([]any)
	return values, ok
}

// stripMetaValue removes $-prefixed object-identity keys from nested data
// values so an export/import round trip does not accumulate stale wire ids.
func stripMetaValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, nested := range val {
			if strings.HasPrefix(k, "$") {
				continue
			}
			out[k] = stripMetaValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for n, nested := range val {
			out[n] = stripMetaValue(nested)
		}
		return out
	default:
		return val
	}
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
