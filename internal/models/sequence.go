// Package models defines the sequence document types shared across seqedit.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a sequence entity.
type Status string

const (
	StatusCreated  Status = "CREATED"
	StatusRunning  Status = "RUNNING"
	StatusFinished Status = "FINISHED"
	StatusFailed   Status = "FAILED"
	StatusSkipped  Status = "SKIPPED"
	StatusDisabled Status = "DISABLED"
)

// Area identifies one of the three top-level forests of a sequence.
type Area string

const (
	AreaStart  Area = "start"
	AreaTarget Area = "target"
	AreaEnd    Area = "end"
)

// Item is a single instruction node. Containers carry non-nil Items,
// Conditions and Triggers lists; leaf items carry none of the three.
type Item struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Status     Status         `json:"status"`
	Expanded   *bool          `json:"isExpanded,omitempty"`
	Data       map[string]any `json:"data"`
	Items      []*Item        `json:"items,omitempty"`
	Conditions []*Condition   `json:"conditions,omitempty"`
	Triggers   []*Trigger     `json:"triggers,omitempty"`
}

// Condition guards or repeats execution of the container that holds it.
type Condition struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Data     map[string]any `json:"data"`
}

// Trigger fires on an event while its owning container (or the whole
// sequence) runs. Items is the optional runner sub-sequence.
type Trigger struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Data     map[string]any `json:"data"`
	Items    []*Item        `json:"items,omitempty"`
}

// Sequence is the document root: three independent area forests plus the
// sequence-wide triggers. There is no root node above the areas.
type Sequence struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	StartItems     []*Item    `json:"startItems"`
	TargetItems    []*Item    `json:"targetItems"`
	EndItems       []*Item    `json:"endItems"`
	GlobalTriggers []*Trigger `json:"globalTriggers"`
}

// NewSequence creates an empty sequence document.
func NewSequence(title string) *Sequence {
	return &Sequence{
		ID:             uuid.New().String(),
		Title:          title,
		StartItems:     []*Item{},
		TargetItems:    []*Item{},
		EndItems:       []*Item{},
		GlobalTriggers: []*Trigger{},
	}
}

// IsContainer reports whether the item carries child collections.
func (i *Item) IsContainer() bool {
	return i.Items != nil
}

// Clone returns a deep copy of the item preserving all identities.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	out := *i
	out.Data = cloneData(i.Data)
	if i.Expanded != nil {
		v := *i.Expanded
		out.Expanded = &v
	}
	if i.Items != nil {
		out.Items = CloneItems(i.Items)
	}
	if i.Conditions != nil {
		out.Conditions = make([]*Condition, len(i.Conditions))
		for n, c := range i.Conditions {
			out.Conditions[n] = c.Clone()
		}
	}
	if i.Triggers != nil {
		out.Triggers = make([]*Trigger, len(i.Triggers))
		for n, t := range i.Triggers {
			out.Triggers[n] = t.Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of the condition preserving its identity.
func (c *Condition) Clone() *Condition {
	if c == nil {
		return nil
	}
	out := *c
	out.Data = cloneData(c.Data)
	return &out
}

// Clone returns a deep copy of the trigger preserving all identities.
func (t *Trigger) Clone() *Trigger {
	if t == nil {
		return nil
	}
	out := *t
	out.Data = cloneData(t.Data)
	if t.Items != nil {
		out.Items = CloneItems(t.Items)
	}
	return &out
}

// Clone returns a deep copy of the whole document preserving identities.
// History snapshots rely on this.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	out := &Sequence{
		ID:             s.ID,
		Title:          s.Title,
		StartItems:     CloneItems(s.StartItems),
		TargetItems:    CloneItems(s.TargetItems),
		EndItems:       CloneItems(s.EndItems),
		GlobalTriggers: make([]*Trigger, len(s.GlobalTriggers)),
	}
	for n, t := range s.GlobalTriggers {
		out.GlobalTriggers[n] = t.Clone()
	}
	return out
}

// CloneItems deep-copies a forest preserving identities.
func CloneItems(items []*Item) []*Item {
	out := make([]*Item, len(items))
	for n, it := range items {
		out[n] = it.Clone()
	}
	return out
}

// Forest returns the items of the given area.
func (s *Sequence) Forest(area Area) []*Item {
	switch area {
	case AreaStart:
		return s.StartItems
	case AreaTarget:
		return s.TargetItems
	default:
		return s.EndItems
	}
}

// SetForest replaces the items of the given area.
func (s *Sequence) SetForest(area Area, items []*Item) {
	switch area {
	case AreaStart:
		s.StartItems = items
	case AreaTarget:
		s.TargetItems = items
	default:
		s.EndItems = items
	}
}

// Areas lists the three areas in document order.
func Areas() []Area {
	return []Area{AreaStart, AreaTarget, AreaEnd}
}

// Validate returns human-readable findings for the document. An empty
// slice means the document is well formed.
func (s *Sequence) Validate() []string {
	var findings []string
	if strings.TrimSpace(s.Title) == "" {
		findings = append(findings, "Sequence title is empty")
	}
	for _, area := range Areas() {
		for _, it := range s.Forest(area) {
			findings = append(findings, it.Validate()...)
		}
	}
	return findings
}

// Validate returns findings for the item and its descendants.
func (i *Item) Validate() []string {
	var findings []string
	if i.Name == "" {
		findings = append(findings, "Item "+i.ID+" has no name")
	}
	if i.Type == "" {
		findings = append(findings, "Item "+i.ID+" has no type")
	}
	for _, child := range i.Items {
		findings = append(findings, child.Validate()...)
	}
	return findings
}

func cloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies the JSON-shaped values a data map may hold.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneData(val)
	case []any:
		out := make([]any, len(val))
		for n, e := range val {
			out[n] = cloneValue(e)
		}
		return out
	default:
		return val
	}
}
