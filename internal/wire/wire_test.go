package wire

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/astrokit/seqedit/internal/catalog"
	"github.com/astrokit/seqedit/internal/models"
	"github.com/astrokit/seqedit/internal/tree"
)

const (
	coolCameraType = "NINA.Sequencer.SequenceItem.Camera.CoolCamera, NINA.Sequencer"
	exposureType   = "NINA.Sequencer.SequenceItem.Imaging.TakeExposure, NINA.Sequencer"
	sequentialType = "NINA.Sequencer.Container.SequentialContainer, NINA.Sequencer"
	ditherType     = "NINA.Sequencer.Trigger.Guider.DitherAfterExposures, NINA.Sequencer"
	loopCondType   = "NINA.Sequencer.Conditions.LoopCondition, NINA.Sequencer"
)

func testSequence() *models.Sequence {
	doc := models.NewSequence("Test Sequence")
	cool := catalog.NewItem(coolCameraType, catalog.Overrides{})
	exposure := catalog.NewItem(exposureType, catalog.Overrides{})
	set := catalog.NewItem(sequentialType, catalog.Overrides{})
	set.Items = []*models.Item{exposure}
	set.Conditions = []*models.Condition{catalog.NewCondition(loopCondType, catalog.Overrides{})}
	set.Triggers = []*models.Trigger{catalog.NewTrigger(ditherType, catalog.Overrides{})}

	doc.StartItems = []*models.Item{cool}
	doc.TargetItems = []*models.Item{set}
	doc.GlobalTriggers = []*models.Trigger{catalog.NewTrigger(ditherType, catalog.Overrides{})}
	return doc
}

func exportToMap(t *testing.T, doc *models.Sequence) map[string]any {
	t.Helper()
	raw, err := Export(doc)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	return out
}

func TestExportRootShape(t *testing.T) {
	root := exportToMap(t, testSequence())

	if root["$type"] != "NINA.Sequencer.Container.SequenceRootContainer, NINA.Sequencer" {
		t.Errorf("root $type: %v", root["$type"])
	}
	if root["Name"] != "Test Sequence" || root["SequenceTitle"] != "Test Sequence" {
		t.Error("root name fields missing")
	}
	if root["Parent"] != nil {
		t.Error("root Parent must be null")
	}

	strategy := root["Strategy"].(map[string]any)
	if !strings.Contains(strategy["$type"].(string), "SequentialStrategy") {
		t.Errorf("strategy: %v", strategy)
	}

	areas := root["Items"].(map[string]any)["$values"].([]any)
	if len(areas) != 3 {
		t.Fatalf("expected 3 area containers, got %d", len(areas))
	}
	wantAreas := []string{"StartAreaContainer", "TargetAreaContainer", "EndAreaContainer"}
	for n, raw := range areas {
		area := raw.(map[string]any)
		if !strings.Contains(area["$type"].(string), wantAreas[n]) {
			t.Errorf("area %d type: %v", n, area["$type"])
		}
		parent := area["Parent"].(map[string]any)
		if parent["$ref"] != root["$id"] {
			t.Errorf("area %d Parent $ref: %v", n, parent)
		}
	}
}

func TestExportWireIDsAreUnique(t *testing.T) {
	raw, err := Export(testSequence())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case map[string]any:
			if id, ok := val["$id"].(string); ok {
				if seen[id] {
					t.Errorf("duplicate wire id %s", id)
				}
				seen[id] = true
			}
			for _, nested := range val {
				walk(nested)
			}
		case []any:
			for _, nested := range val {
				walk(nested)
			}
		}
	}
	walk(doc)
	if len(seen) == 0 {
		t.Fatal("no wire ids found")
	}
}

func TestExportFlattensData(t *testing.T) {
	root := exportToMap(t, testSequence())
	start := root["Items"].(map[string]any)["$values"].([]any)[0].(map[string]any)
	cool := start["Items"].(map[string]any)["$values"].([]any)[0].(map[string]any)

	if cool["$type"] != coolCameraType {
		t.Fatalf("cool camera type: %v", cool["$type"])
	}
	if cool["Temperature"] != -10.0 {
		t.Errorf("Temperature must be a sibling field: %v", cool["Temperature"])
	}
	if _, hasData := cool["data"]; hasData {
		t.Error("data map must be flattened, not nested")
	}
	// Leaves carry no collections.
	if _, ok := cool["Items"]; ok {
		t.Error("leaf item must not carry an Items collection")
	}
}

func TestExportNestedSubObjectDiscriminators(t *testing.T) {
	root := exportToMap(t, testSequence())
	target := root["Items"].(map[string]any)["$values"].([]any)[1].(map[string]any)
	set := target["Items"].(map[string]any)["$values"].([]any)[0].(map[string]any)
	exposure := set["Items"].(map[string]any)["$values"].([]any)[0].(map[string]any)

	binning := exposure["Binning"].(map[string]any)
	if binning["$type"] != "NINA.Core.Model.Equipment.BinningMode, NINA.Core" {
		t.Errorf("binning $type: %v", binning["$type"])
	}
	if _, ok := binning["$id"]; !ok {
		t.Error("binning sub-object needs its own wire id")
	}
}

func TestImportCoolCameraScenario(t *testing.T) {
	raw, err := Export(testSequence())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc, err := Import(raw)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if len(doc.StartItems) != 1 {
		t.Fatalf("start items: %d", len(doc.StartItems))
	}
	cool := doc.StartItems[0]
	if cool.Type != coolCameraType {
		t.Errorf("type: %s", cool.Type)
	}
	if cool.Data["Temperature"] != -10.0 {
		t.Errorf("Temperature = %v, want -10", cool.Data["Temperature"])
	}
	if cool.Category != "Camera" {
		t.Errorf("category: %s", cool.Category)
	}
}

func TestRoundTripPreservesStructureAndData(t *testing.T) {
	original := testSequence()
	raw, err := Export(original)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	imported, err := Import(raw)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if imported.Title != original.Title {
		t.Errorf("title: %s", imported.Title)
	}
	if tree.Count(imported.TargetItems) != tree.Count(original.TargetItems) {
		t.Error("target item count changed")
	}
	if len(imported.GlobalTriggers) != 1 {
		t.Errorf("global triggers: %d", len(imported.GlobalTriggers))
	}

	set := imported.TargetItems[0]
	if !set.IsContainer() {
		t.Fatal("container-ness lost on import")
	}
	if len(set.Conditions) != 1 || set.Conditions[0].Data["Iterations"] != 1.0 {
		t.Errorf("conditions: %+v", set.Conditions)
	}
	if len(set.Triggers) != 1 || set.Triggers[0].Data["AfterExposures"] != 1.0 {
		t.Errorf("triggers: %+v", set.Triggers)
	}

	exposure := set.Items[0]
	binning, ok := exposure.Data["Binning"].(map[string]any)
	if !ok {
		t.Fatal("binning missing after round trip")
	}
	if _, leaked := binning["$id"]; leaked {
		t.Error("wire metadata leaked into the data map")
	}
	if _, leaked := binning["$type"]; leaked {
		t.Error("wire discriminator leaked into the data map")
	}
	if binning["X"] != 1.0 {
		t.Errorf("binning X: %v", binning["X"])
	}
}

func TestImportRegeneratesInternalIDs(t *testing.T) {
	raw, err := Export(testSequence())
	if err != nil {
		t.Fatal(err)
	}
	first, err := Import(raw)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Import(raw)
	if err != nil {
		t.Fatal(err)
	}
	if first.StartItems[0].ID == second.StartItems[0].ID {
		t.Error("two imports of the same document must not share internal ids")
	}
	if first.StartItems[0].ID == "0" || first.StartItems[0].ID == "1" {
		t.Error("wire ids must not be reused as internal ids")
	}
}

func TestImportUnknownTypeStillSucceeds(t *testing.T) {
	doc := `{
		"$id": "0",
		"$type": "NINA.Sequencer.Container.SequenceRootContainer, NINA.Sequencer",
		"Name": "X",
		"Items": {"$values": [
			{"$type": "NINA.Sequencer.Container.TargetAreaContainer, NINA.Sequencer",
			 "Items": {"$values": [
				{"$type": "Some.Plugin.ExoticInstruction, Some.Plugin", "Weird": 42}
			 ]}}
		]}
	}`
	imported, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	it := imported.TargetItems[0]
	if it.Name != "Unknown" {
		t.Errorf("fallback name: %q", it.Name)
	}
	if it.Data["Weird"] != 42.0 {
		t.Errorf("unknown field not kept: %v", it.Data)
	}
}

func TestImportTriggerRunnerItems(t *testing.T) {
	original := models.NewSequence("s")
	trig := catalog.NewTrigger(ditherType, catalog.Overrides{})
	trig.Items = []*models.Item{catalog.NewItem(coolCameraType, catalog.Overrides{})}
	original.GlobalTriggers = []*models.Trigger{trig}

	raw, err := Export(original)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "TriggerItems") {
		t.Fatal("trigger runner items not exported")
	}

	imported, err := Import(raw)
	if err != nil {
		t.Fatal(err)
	}
	got := imported.GlobalTriggers[0]
	if len(got.Items) != 1 || got.Items[0].Type != coolCameraType {
		t.Errorf("runner items: %+v", got.Items)
	}
	if _, leaked := got.Data["TriggerItems"]; leaked {
		t.Error("TriggerItems leaked into trigger data")
	}
}

func TestImportMissingType(t *testing.T) {
	if _, err := Import([]byte(`{"Name": "test"}`)); err == nil {
		t.Error("expected error for missing $type")
	}
}

func TestImportRejectsNonContainer(t *testing.T) {
	doc := `{"$type": "NINA.Sequencer.SequenceItem.Camera.CoolCamera, NINA.Sequencer"}`
	if _, err := Import([]byte(doc)); err == nil {
		t.Error("expected error for non-container root")
	}
}
