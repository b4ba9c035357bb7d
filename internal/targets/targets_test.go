package targets

import (
	"strings"
	"testing"
)

func TestImportGenericCSV(t *testing.T) {
	csv := "name,ra,dec\nM31,00:42:44,+41:16:09\nM42,05:35:16,-05:23:28"
	result := ImportCSV(csv)

	if result.SourceFormat != FormatGeneric {
		t.Errorf("format: %s", result.SourceFormat)
	}
	if len(result.Targets) != 2 {
		t.Fatalf("targets: %d, warnings: %v", len(result.Targets), result.Warnings)
	}
	if result.Targets[0].Name != "M31" {
		t.Errorf("name: %s", result.Targets[0].Name)
	}
	if result.Targets[1].Dec.Negative != true {
		t.Error("M42 declination must be negative")
	}
	if result.ImportedCount != 2 || result.SkippedCount != 0 {
		t.Errorf("counts: %d/%d", result.ImportedCount, result.SkippedCount)
	}
}

func TestImportTelescopiusCSV(t *testing.T) {
	csv := "Catalogue Entry,Familiar Name,RA,Dec,Position Angle\n" +
		"NGC 224,Andromeda Galaxy,00h 42m 44s,+41° 16' 09\",35.0"
	result := ImportCSV(csv)

	if result.SourceFormat != FormatTelescopius {
		t.Fatalf("format: %s", result.SourceFormat)
	}
	if len(result.Targets) != 1 {
		t.Fatalf("targets: %d, warnings: %v", len(result.Targets), result.Warnings)
	}
	got := result.Targets[0]
	if got.Name != "Andromeda Galaxy" {
		t.Errorf("familiar name preferred: %q", got.Name)
	}
	if got.RA.Hours != 0 || got.RA.Minutes != 42 {
		t.Errorf("RA: %+v", got.RA)
	}
	if got.Rotation != 35.0 {
		t.Errorf("position angle: %f", got.Rotation)
	}
}

func TestImportCSVSkipsBadRows(t *testing.T) {
	csv := "name,ra,dec\nGood,12:00:00,45:00:00\nBad,not-a-coord,45:00:00"
	result := ImportCSV(csv)

	if len(result.Targets) != 1 {
		t.Fatalf("targets: %d", len(result.Targets))
	}
	if result.SkippedCount != 1 || len(result.Warnings) != 1 {
		t.Errorf("skips: %d, warnings: %v", result.SkippedCount, result.Warnings)
	}
	if !strings.HasPrefix(result.Warnings[0], "Row 3:") {
		t.Errorf("warning should carry the row number: %s", result.Warnings[0])
	}
}

func TestImportEmptyCSV(t *testing.T) {
	result := ImportCSV("")
	if len(result.Errors) == 0 {
		t.Error("expected error for empty content")
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		headers []string
		want    Format
	}{
		{[]string{"Catalogue Entry", "RA"}, FormatTelescopius},
		{[]string{"Object", "Type", "RA", "Dec"}, FormatAstroPlanner},
		{[]string{"Designation", "RA", "Dec"}, FormatStellarium},
		{[]string{"name", "ra", "dec"}, FormatGeneric},
		{[]string{"foo", "bar"}, FormatUnknown},
	}
	for _, c := range cases {
		if got := DetectFormat(c.headers); got != c.want {
			t.Errorf("DetectFormat(%v) = %s, want %s", c.headers, got, c.want)
		}
	}
}

func TestImportStellariumPlainLines(t *testing.T) {
	content := "# comment\n\nM31 00:42:44 +41:16:09\nM42 05:35:16 -05:23:28\n"
	result := ImportStellarium(content)

	if len(result.Targets) != 2 {
		t.Fatalf("targets: %d, warnings: %v", len(result.Targets), result.Warnings)
	}
	if result.Targets[0].Name != "M31" || !result.Targets[1].Dec.Negative {
		t.Errorf("targets: %+v", result.Targets)
	}
}

func TestImportStellariumJSONLines(t *testing.T) {
	content := `{"name": "M31", "ra": 10.684, "dec": 41.269}`
	result := ImportStellarium(content)

	if len(result.Targets) != 1 {
		t.Fatalf("targets: %d, warnings: %v", len(result.Targets), result.Warnings)
	}
	got := result.Targets[0]
	if got.Name != "M31" {
		t.Errorf("name: %q", got.Name)
	}
	// 10.684 degrees is a little over 0h 42m.
	if got.RA.Hours != 0 || got.RA.Minutes != 42 {
		t.Errorf("RA: %+v", got.RA)
	}
	if got.Dec.Degrees != 41 {
		t.Errorf("Dec: %+v", got.Dec)
	}
}

func TestImportStellariumWarnsOnBadLine(t *testing.T) {
	content := "M31 garbage garbage\n{broken json}"
	result := ImportStellarium(content)
	if len(result.Targets) != 0 {
		t.Errorf("targets: %+v", result.Targets)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("warnings: %v", result.Warnings)
	}
}
