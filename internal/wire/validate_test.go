package wire

import "testing"

func TestValidateMissingType(t *testing.T) {
	result := Validate([]byte(`{"Name": "test"}`))
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Missing $type field" {
		t.Errorf("errors: %v", result.Errors)
	}
}

func TestValidateNonContainerRoot(t *testing.T) {
	result := Validate([]byte(`{"$type": "NINA.Sequencer.SequenceItem.Camera.CoolCamera, NINA.Sequencer", "Name": "x"}`))
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if result.Errors[0] != "Root element must be a container type" {
		t.Errorf("errors: %v", result.Errors)
	}
}

func TestValidateItemsWithoutValues(t *testing.T) {
	result := Validate([]byte(`{"$type": "NINA.Sequencer.Container.SequenceRootContainer, NINA.Sequencer", "Name": "x", "Items": []}`))
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if result.Errors[0] != "Items collection missing $values array" {
		t.Errorf("errors: %v", result.Errors)
	}
}

func TestValidateMissingNameWarns(t *testing.T) {
	result := Validate([]byte(`{"$type": "NINA.Sequencer.Container.SequenceRootContainer, NINA.Sequencer", "Items": {"$values": []}}`))
	if !result.Valid {
		t.Fatalf("expected valid, errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != "Sequence has no name or title" {
		t.Errorf("warnings: %v", result.Warnings)
	}
}

func TestValidateInvalidJSON(t *testing.T) {
	result := Validate([]byte(`{not json`))
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0][:13] != "Invalid JSON:" {
		t.Errorf("errors: %v", result.Errors)
	}
}

func TestValidateWellFormed(t *testing.T) {
	raw, err := Export(testSequence())
	if err != nil {
		t.Fatal(err)
	}
	result := Validate(raw)
	if !result.Valid || len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Errorf("result: %+v", result)
	}
}
