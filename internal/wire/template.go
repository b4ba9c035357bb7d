package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/astrokit/seqedit/internal/models"
)

// ExportTemplate serializes a reusable fragment as a single sequential
// container. The reading application accepts such documents anywhere a
// nested instruction set fits.
func ExportTemplate(name string, items []*models.Item) ([]byte, error) {
	e := &idAlloc{}
	containerID := e.id()

	values := make([]any, 0, len(items))
	for _, it := range items {
		values = append(values, exportItem(e, it, containerID))
	}

	root := map[string]any{
		"$id":        containerID,
		"$type":      sequentialContainer,
		"Name":       name,
		"Strategy":   map[string]any{"$type": sequentialStrategy},
		"IsExpanded": true,
		"Items":      collection(e, itemCollectionType, values),
		"Conditions": collection(e, conditionCollectionType, []any{}),
		"Triggers":   collection(e, triggerCollectionType, []any{}),
		"Parent":     nil,
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize template: %w", err)
	}
	return out, nil
}

// ImportTemplate parses a single-container document and returns its name
// and freshly re-identified items. Full root documents are rejected; use
// Import for those.
func ImportTemplate(raw []byte) (string, []*models.Item, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", nil, fmt.Errorf("parse wire JSON: %w", err)
	}
	typeTag, ok := data["$type"].(string)
	if !ok {
		return "", nil, errors.New("missing $type field")
	}
	if strings.Contains(typeTag, "SequenceRootContainer") || !strings.Contains(typeTag, "Container") {
		return "", nil, ErrUnknownFormat
	}
	name := stringOr(data["Name"], "Imported Template")
	return name, importContainerItems(data), nil
}
