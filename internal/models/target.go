package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// RACoord is a right ascension in hours/minutes/seconds.
type RACoord struct {
	Hours   int     `json:"hours"`
	Minutes int     `json:"minutes"`
	Seconds float64 `json:"seconds"`
}

// DecCoord is a declination in degrees/minutes/seconds with an explicit
// sign flag so -00° 30' stays distinguishable from +00° 30'.
type DecCoord struct {
	Degrees  int     `json:"degrees"`
	Minutes  int     `json:"minutes"`
	Seconds  float64 `json:"seconds"`
	Negative bool    `json:"negative"`
}

// Target is the celestial object a container points at. It is a value
// embedded in the container's data map, not a tree node.
type Target struct {
	Name     string   `json:"name"`
	RA       RACoord  `json:"ra"`
	Dec      DecCoord `json:"dec"`
	Rotation float64  `json:"rotation"`
}

var (
	raPattern  = regexp.MustCompile(`(\d+)[h:\s]+(\d+)[m:\s]+(\d+\.?\d*)`)
	decPattern = regexp.MustCompile(`([+-]?)(\d+)[°d:\s]+(\d+)['m:\s]+(\d+\.?\d*)["s]?`)
)

// DecimalHours converts the RA to decimal hours.
func (r RACoord) DecimalHours() float64 {
	return float64(r.Hours) + float64(r.Minutes)/60 + r.Seconds/3600
}

// Degrees converts the RA to decimal degrees.
func (r RACoord) Degrees() float64 {
	return r.DecimalHours() * 15
}

// Decimal converts the declination to signed decimal degrees.
func (d DecCoord) Decimal() float64 {
	v := float64(d.Degrees) + float64(d.Minutes)/60 + d.Seconds/3600
	if d.Negative {
		return -v
	}
	return v
}

// RAFromDecimal splits decimal hours into an RA triple.
func RAFromDecimal(hours float64) RACoord {
	h := math.Floor(hours)
	mDec := (hours - h) * 60
	m := math.Floor(mDec)
	s := (mDec - m) * 60
	return RACoord{
		Hours:   int(h),
		Minutes: int(m),
		Seconds: math.Round(s*100) / 100,
	}
}

// DecFromDecimal splits signed decimal degrees into a declination quadruple.
func DecFromDecimal(degrees float64) DecCoord {
	negative := degrees < 0
	abs := math.Abs(degrees)
	d := math.Floor(abs)
	mDec := (abs - d) * 60
	m := math.Floor(mDec)
	s := (mDec - m) * 60
	return DecCoord{
		Degrees:  int(d),
		Minutes:  int(m),
		Seconds:  math.Round(s*100) / 100,
		Negative: negative,
	}
}

// String formats the RA as "00h 42m 44.3s".
func (r RACoord) String() string {
	return fmt.Sprintf("%02dh %02dm %.1fs", r.Hours, r.Minutes, r.Seconds)
}

// String formats the declination as "+41° 16' 9.0\"".
func (d DecCoord) String() string {
	sign := "+"
	if d.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d° %02d' %.1f\"", sign, d.Degrees, d.Minutes, d.Seconds)
}

// ParseRA parses "00h 42m 44.3s", "00:42:44.3" or decimal hours.
func ParseRA(s string) (RACoord, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 && v < 24 {
		return RAFromDecimal(v), nil
	}
	m := raPattern.FindStringSubmatch(s)
	if m == nil {
		return RACoord{}, fmt.Errorf("cannot parse RA %q", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.ParseFloat(m[3], 64)
	ra := RACoord{Hours: hours, Minutes: minutes, Seconds: seconds}
	if errs := ra.Validate(); len(errs) > 0 {
		return RACoord{}, fmt.Errorf("cannot parse RA %q: %s", s, errs[0])
	}
	return ra, nil
}

// ParseDec parses "+41° 16' 9.0\"", "41:16:09.0", "+41d 16m 9.0s" or
// signed decimal degrees.
func ParseDec(s string) (DecCoord, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= -90 && v <= 90 {
		return DecFromDecimal(v), nil
	}
	m := decPattern.FindStringSubmatch(s)
	if m == nil {
		return DecCoord{}, fmt.Errorf("cannot parse Dec %q", s)
	}
	degrees, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds, _ := strconv.ParseFloat(m[4], 64)
	dec := DecCoord{Degrees: degrees, Minutes: minutes, Seconds: seconds, Negative: m[1] == "-"}
	if errs := dec.Validate(); len(errs) > 0 {
		return DecCoord{}, fmt.Errorf("cannot parse Dec %q: %s", s, errs[0])
	}
	return dec, nil
}

// Validate returns range findings for the RA triple.
func (r RACoord) Validate() []string {
	var findings []string
	if r.Hours < 0 || r.Hours >= 24 {
		findings = append(findings, "RA hours must be between 0 and 23")
	}
	if r.Minutes < 0 || r.Minutes >= 60 {
		findings = append(findings, "RA minutes must be between 0 and 59")
	}
	if r.Seconds < 0 || r.Seconds >= 60 {
		findings = append(findings, "RA seconds must be between 0 and 59.99")
	}
	return findings
}

// Validate returns range findings for the declination quadruple.
func (d DecCoord) Validate() []string {
	var findings []string
	if d.Degrees < 0 || d.Degrees > 90 {
		findings = append(findings, "Dec degrees must be between 0 and 90")
	}
	if d.Minutes < 0 || d.Minutes >= 60 {
		findings = append(findings, "Dec minutes must be between 0 and 59")
	}
	if d.Seconds < 0 || d.Seconds >= 60 {
		findings = append(findings, "Dec seconds must be between 0 and 59.99")
	}
	return findings
}

// Validate returns findings for the target's coordinates.
func (t Target) Validate() []string {
	return append(t.RA.Validate(), t.Dec.Validate()...)
}

// ToData renders the target in the shape the wire format expects inside a
// deep-sky-object container's data map.
func (t Target) ToData() map[string]any {
	return map[string]any{
		"TargetName": t.Name,
		"InputCoordinates": map[string]any{
			"RAHours":     t.RA.Hours,
			"RAMinutes":   t.RA.Minutes,
			"RASeconds":   t.RA.Seconds,
			"DecDegrees":  t.Dec.Degrees,
			"DecMinutes":  t.Dec.Minutes,
			"DecSeconds":  t.Dec.Seconds,
			"NegativeDec": t.Dec.Negative,
		},
		"PositionAngle": t.Rotation,
	}
}

// TargetFromData reads a target back out of a container's data map. The
// second result is false when no target is embedded.
func TargetFromData(data map[string]any) (Target, bool) {
	raw, ok := data["Target"].(map[string]any)
	if !ok {
		return Target{}, false
	}
	t := Target{}
	t.Name, _ = raw["TargetName"].(string)
	t.Rotation = numberOr(raw["PositionAngle"], 0)
	coords, ok := raw["InputCoordinates"].(map[string]any)
	if !ok {
		return t, true
	}
	t.RA = RACoord{
		Hours:   int(numberOr(coords["RAHours"], 0)),
		Minutes: int(numberOr(coords["RAMinutes"], 0)),
		Seconds: numberOr(coords["RASeconds"], 0),
	}
	t.Dec = DecCoord{
		Degrees: int(numberOr(coords["DecDegrees"], 0)),
		Minutes: int(numberOr(coords["DecMinutes"], 0)),
		Seconds: numberOr(coords["DecSeconds"], 0),
	}
	t.Dec.Negative, _ = coords["NegativeDec"].(bool)
	return t, true
}

// numberOr tolerates the numeric types JSON decoding may produce.
func numberOr(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return fallback
	}
}
