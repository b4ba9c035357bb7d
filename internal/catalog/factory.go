package catalog

import (
	"github.com/google/uuid"

	"github.com/astrokit/seqedit/internal/models"
)

// Overrides tweaks a freshly created entity. Data entries are merged
// key-wise over the catalog defaults instead of replacing them wholesale.
type Overrides struct {
	Name     string
	Status   models.Status
	Expanded *bool
	Data     map[string]any
}

// NewItem builds a well-formed instruction for the given type tag. Unknown
// tags still produce an item (name falls back to the short class name) so
// imported documents with newer instructions stay editable.
func NewItem(typeTag string, ov Overrides) *models.Item {
	def, known := LookupItem(typeTag)
	it := &models.Item{
		ID:       uuid.New().String(),
		Type:     typeTag,
		Name:     ShortName(typeTag),
		Category: Category(typeTag),
		Status:   models.StatusCreated,
		Data:     map[string]any{},
	}
	if known {
		it.Name = def.Name
		it.Category = def.Category
		mergeData(it.Data, def.DefaultData)
	}
	if IsContainer(typeTag) {
		it.Items = []*models.Item{}
		it.Conditions = []*models.Condition{}
		it.Triggers = []*models.Trigger{}
	}
	applyItemOverrides(it, ov)
	return it
}

// NewCondition builds a well-formed condition for the given type tag.
func NewCondition(typeTag string, ov Overrides) *models.Condition {
	def, known := LookupCondition(typeTag)
	c := &models.Condition{
		ID:       uuid.New().String(),
		Type:     typeTag,
		Name:     ShortName(typeTag),
		Category: Category(typeTag),
		Data:     map[string]any{},
	}
	if known {
		c.Name = def.Name
		c.Category = def.Category
		mergeData(c.Data, def.DefaultData)
	}
	if ov.Name != "" {
		c.Name = ov.Name
	}
	mergeData(c.Data, ov.Data)
	return c
}

// NewTrigger builds a well-formed trigger for the given type tag.
func NewTrigger(typeTag string, ov Overrides) *models.Trigger {
	def, known := LookupTrigger(typeTag)
	t := &models.Trigger{
		ID:       uuid.New().String(),
		Type:     typeTag,
		Name:     ShortName(typeTag),
		Category: Category(typeTag),
		Data:     map[string]any{},
	}
	if known {
		t.Name = def.Name
		t.Category = def.Category
		mergeData(t.Data, def.DefaultData)
	}
	if ov.Name != "" {
		t.Name = ov.Name
	}
	mergeData(t.Data, ov.Data)
	return t
}

func applyItemOverrides(it *models.Item, ov Overrides) {
	if ov.Name != "" {
		it.Name = ov.Name
	}
	if ov.Status != "" {
		it.Status = ov.Status
	}
	if ov.Expanded != nil {
		v := *ov.Expanded
		it.Expanded = &v
	}
	mergeData(it.Data, ov.Data)
}

// mergeData copies src entries into dst, deep-copying nested values so the
// catalog defaults never alias live instances.
func mergeData(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = cloneDataValue(v)
	}
}

func cloneDataValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = cloneDataValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for n, e := range val {
			out[n] = cloneDataValue(e)
		}
		return out
	default:
		return val
	}
}
