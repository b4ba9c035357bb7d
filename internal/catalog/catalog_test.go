package catalog

import "testing"

const (
	coolCameraType = "NINA.Sequencer.SequenceItem.Camera.CoolCamera, NINA.Sequencer"
	sequentialType = "NINA.Sequencer.Container.SequentialContainer, NINA.Sequencer"
)

func TestLookupItem(t *testing.T) {
	def, ok := LookupItem(coolCameraType)
	if !ok {
		t.Fatal("CoolCamera not in catalog")
	}
	if def.Name != "Cool Camera" || def.Category != "Camera" || def.Kind != KindLeaf {
		t.Errorf("unexpected definition: %+v", def)
	}
	if def.DefaultData["Temperature"] != -10.0 {
		t.Errorf("default temperature: %v", def.DefaultData["Temperature"])
	}
}

func TestIsContainer(t *testing.T) {
	cases := []struct {
		typeTag string
		want    bool
	}{
		{sequentialType, true},
		{"NINA.Sequencer.SequenceItem.Imaging.SmartExposure, NINA.Sequencer", true},
		{coolCameraType, false},
		// Unknown tags fall back to the naming convention.
		{"Some.Plugin.FancyContainer, Some.Plugin", true},
		{"Some.Plugin.CustomInstructionSet, Some.Plugin", true},
		{"Some.Plugin.TakeDarks, Some.Plugin", false},
	}
	for _, c := range cases {
		if got := IsContainer(c.typeTag); got != c.want {
			t.Errorf("IsContainer(%q) = %v, want %v", c.typeTag, got, c.want)
		}
	}
}

func TestShortNameAndCategory(t *testing.T) {
	if got := ShortName(coolCameraType); got != "CoolCamera" {
		t.Errorf("ShortName: %q", got)
	}
	if got := Category(coolCameraType); got != "Camera" {
		t.Errorf("Category: %q", got)
	}
	if got := Category("Bare"); got != "Unknown" {
		t.Errorf("Category of bare tag: %q", got)
	}
}

func TestNewItemDefaults(t *testing.T) {
	it := NewItem(coolCameraType, Overrides{})
	if it.ID == "" {
		t.Error("expected generated id")
	}
	if it.Name != "Cool Camera" || it.Category != "Camera" {
		t.Errorf("name/category: %s/%s", it.Name, it.Category)
	}
	if it.Data["Temperature"] != -10.0 || it.Data["Duration"] != 0.0 {
		t.Errorf("defaults not applied: %v", it.Data)
	}
	if it.IsContainer() {
		t.Error("CoolCamera must be a leaf")
	}
}

func TestNewItemContainerCollections(t *testing.T) {
	it := NewItem(sequentialType, Overrides{})
	if it.Items == nil || it.Conditions == nil || it.Triggers == nil {
		t.Fatal("container collections must be initialized")
	}
	if len(it.Items) != 0 {
		t.Error("new container should start empty")
	}
}

func TestNewItemUnknownType(t *testing.T) {
	it := NewItem("Some.Plugin.TakeDarks, Some.Plugin", Overrides{})
	if it.Name != "TakeDarks" {
		t.Errorf("fallback name: %q", it.Name)
	}
	if it.Category != "Plugin" {
		t.Errorf("fallback category: %q", it.Category)
	}
}

func TestNewItemOverrides(t *testing.T) {
	expanded := false
	it := NewItem(sequentialType, Overrides{
		Name:     "My Set",
		Expanded: &expanded,
		Data:     map[string]any{"Note": "x"},
	})
	if it.Name != "My Set" {
		t.Errorf("name override: %q", it.Name)
	}
	if it.Expanded == nil || *it.Expanded {
		t.Error("expanded override not applied")
	}
	if it.Data["Note"] != "x" {
		t.Error("data override not merged")
	}
}

func TestNewItemDoesNotAliasDefaults(t *testing.T) {
	first := NewItem("NINA.Sequencer.SequenceItem.Imaging.TakeExposure, NINA.Sequencer", Overrides{})
	second := NewItem("NINA.Sequencer.SequenceItem.Imaging.TakeExposure, NINA.Sequencer", Overrides{})

	first.Data["Binning"].(map[string]any)["X"] = 4
	if second.Data["Binning"].(map[string]any)["X"] != 1 {
		t.Error("catalog default data is shared between instances")
	}
}

func TestNewConditionDefaults(t *testing.T) {
	c := NewCondition("NINA.Sequencer.Conditions.LoopCondition, NINA.Sequencer", Overrides{})
	if c.Name != "Loop For Iterations" {
		t.Errorf("name: %q", c.Name)
	}
	if c.Data["Iterations"] != 1 || c.Data["CompletedIterations"] != 0 {
		t.Errorf("defaults: %v", c.Data)
	}
}

func TestNewTriggerDefaults(t *testing.T) {
	tr := NewTrigger("NINA.Sequencer.Trigger.Guider.DitherAfterExposures, NINA.Sequencer", Overrides{})
	if tr.Name != "Dither After # Exposures" {
		t.Errorf("name: %q", tr.Name)
	}
	if tr.Data["AfterExposures"] != 1 {
		t.Errorf("defaults: %v", tr.Data)
	}
}
