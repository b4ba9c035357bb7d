// Package targets imports celestial target lists from planning tools:
// Telescopius/AstroPlanner/generic CSV exports and Stellarium skylists.
package targets

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/astrokit/seqedit/internal/models"
)

// Format is the detected source dialect of a target list.
type Format string

const (
	FormatTelescopius  Format = "Telescopius"
	FormatAstroPlanner Format = "AstroPlanner"
	FormatStellarium   Format = "Stellarium"
	FormatGeneric      Format = "Generic"
	FormatUnknown      Format = "Unknown"
)

// ImportResult collects targets plus per-row findings. Rows that fail to
// parse become warnings, not errors: a partially usable list still imports.
type ImportResult struct {
	Targets       []models.Target `json:"targets"`
	Errors        []string        `json:"errors"`
	Warnings      []string        `json:"warnings"`
	SourceFormat  Format          `json:"sourceFormat"`
	TotalRows     int             `json:"totalRows"`
	ImportedCount int             `json:"importedCount"`
	SkippedCount  int             `json:"skippedCount"`
}

// DetectFormat classifies a CSV header row.
func DetectFormat(headers []string) Format {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[strings.ToLower(strings.TrimSpace(h))] = true
	}
	switch {
	case set["catalogue entry"] || set["familiar name"]:
		return FormatTelescopius
	case set["object"] && set["type"]:
		return FormatAstroPlanner
	case set["designation"]:
		return FormatStellarium
	case (set["ra"] || set["right ascension"]) && (set["dec"] || set["declination"]):
		return FormatGeneric
	default:
		return FormatUnknown
	}
}

// ImportCSV parses a target list CSV, auto-detecting the source dialect
// from the header row.
func ImportCSV(content string) ImportResult {
	result := ImportResult{Targets: []models.Target{}, Errors: []string{}, Warnings: []string{}, SourceFormat: FormatUnknown}

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	// Dec strings like +41° 16' 09" carry a bare quote.
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, "Invalid CSV: "+err.Error())
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Empty CSV content")
		return result
	}

	headers := make([]string, len(rows[0]))
	for n, h := range rows[0] {
		headers[n] = strings.ToLower(strings.TrimSpace(h))
	}
	result.SourceFormat = DetectFormat(headers)
	result.TotalRows = len(rows) - 1

	for n, row := range rows[1:] {
		target, err := parseRow(headers, row, result.SourceFormat)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d: %s", n+2, err))
			result.SkippedCount++
			continue
		}
		result.Targets = append(result.Targets, target)
	}
	result.ImportedCount = result.TotalRows - result.SkippedCount
	return result
}

func parseRow(headers, fields []string, format Format) (models.Target, error) {
	field := func(name string) string {
		for n, h := range headers {
			if strings.Contains(h, name) && n < len(fields) {
				if v := strings.TrimSpace(fields[n]); v != "" {
					return v
				}
			}
		}
		return ""
	}

	var name string
	switch format {
	case FormatTelescopius:
		name = field("familiar name")
		if name == "" {
			name = field("catalogue entry")
		}
	case FormatAstroPlanner:
		name = field("object")
	case FormatStellarium:
		name = field("designation")
	default:
		for _, col := range []string{"name", "target", "object"} {
			if name = field(col); name != "" {
				break
			}
		}
	}
	if name == "" {
		name = "Unknown"
	}

	raStr := field("ra")
	if raStr == "" {
		raStr = field("right ascension")
	}
	if raStr == "" {
		return models.Target{}, fmt.Errorf("missing RA column")
	}
	decStr := field("dec")
	if decStr == "" {
		decStr = field("declination")
	}
	if decStr == "" {
		return models.Target{}, fmt.Errorf("missing Dec column")
	}

	ra, err := parseRA(raStr)
	if err != nil {
		return models.Target{}, err
	}
	dec, err := models.ParseDec(decStr)
	if err != nil {
		return models.Target{}, err
	}

	rotation := 0.0
	for _, col := range []string{"position angle", "pa"} {
		if v := field(col); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rotation = f
				break
			}
		}
	}

	return models.Target{Name: name, RA: ra, Dec: dec, Rotation: rotation}, nil
}

// parseRA extends the model parser with a decimal-degrees fallback, which
// some planning tools emit instead of hours.
func parseRA(s string) (models.RACoord, error) {
	if ra, err := models.ParseRA(s); err == nil {
		return ra, nil
	}
	if deg, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && deg >= 0 && deg < 360 {
		return models.RAFromDecimal(deg / 15), nil
	}
	return models.RACoord{}, fmt.Errorf("cannot parse RA %q", s)
}

// ImportStellarium parses a Stellarium skylist: whitespace-separated
// "Name RA Dec" lines, optionally interleaved with single-line JSON objects
// carrying decimal-degree coordinates.
func ImportStellarium(content string) ImportResult {
	result := ImportResult{Targets: []models.Target{}, Errors: []string{}, Warnings: []string{}, SourceFormat: FormatStellarium}

	lines := strings.Split(content, "\n")
	result.TotalRows = len(lines)
	for n, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "{") {
			target, err := parseStellariumJSON(line)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: %s", n+1, err))
				continue
			}
			result.Targets = append(result.Targets, target)
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		ra, err := parseRA(parts[1])
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: %s", n+1, err))
			continue
		}
		dec, err := models.ParseDec(parts[2])
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: %s", n+1, err))
			continue
		}
		result.Targets = append(result.Targets, models.Target{Name: parts[0], RA: ra, Dec: dec})
	}
	result.ImportedCount = len(result.Targets)
	result.SkippedCount = result.TotalRows - result.ImportedCount
	return result
}

func parseStellariumJSON(line string) (models.Target, error) {
	var obj struct {
		Name string  `json:"name"`
		RA   float64 `json:"ra"`
		Dec  float64 `json:"dec"`
	}
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		return models.Target{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if obj.Name == "" {
		return models.Target{}, fmt.Errorf("object has no name")
	}
	return models.Target{
		Name: obj.Name,
		RA:   models.RAFromDecimal(obj.RA / 15),
		Dec:  models.DecFromDecimal(obj.Dec),
	}, nil
}
