package wire

import (
	"encoding/json"
	"strings"

	"github.com/astrokit/seqedit/internal/models"
)

// Validate checks a wire document without importing it. It never returns an
// error: findings land in the result and the caller decides whether to
// proceed.
func Validate(raw []byte) models.ValidationResult {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.ErrorResult("Invalid JSON: " + err.Error())
	}

	result := models.OKResult()

	typeTag, hasType := data["$type"].(string)
	if !hasType {
		result.AddError("Missing $type field")
	} else if !strings.Contains(typeTag, "Container") {
		result.AddError("Root element must be a container type")
	}

	if items, present := data["Items"]; present {
		coll, ok := items.(map[string]any)
		if !ok {
			result.AddError("Items collection missing $values array")
		} else if _, ok := coll["$values"]; !ok {
			result.AddError("Items collection missing $values array")
		}
	}

	if _, hasName := data["Name"]; !hasName {
		if _, hasTitle := data["SequenceTitle"]; !hasTitle {
			result.AddWarning("Sequence has no name or title")
		}
	}

	return result
}
