// Package catalog is the closed registry of instruction, condition and
// trigger kinds keyed by their fully-qualified type tag.
package catalog

import "strings"

// Kind classifies what a type tag may hold in the tree.
type Kind string

const (
	KindContainer Kind = "container"
	KindLeaf      Kind = "leaf"
)

// Definition describes one entry of the catalog. DefaultData is copied into
// fresh instances; callers must not mutate it.
type Definition struct {
	Type        string
	Name        string
	Category    string
	Kind        Kind
	DefaultData map[string]any
}

const ninaSequencer = ", NINA.Sequencer"

func item(path, name string, kind Kind, data map[string]any) Definition {
	typeTag := "NINA.Sequencer." + path + ninaSequencer
	return Definition{
		Type:        typeTag,
		Name:        name,
		Category:    Category(typeTag),
		Kind:        kind,
		DefaultData: data,
	}
}

var itemDefs = []Definition{
	// Containers
	item("Container.SequentialContainer", "Sequential Instruction Set", KindContainer, nil),
	item("Container.ParallelContainer", "Parallel Instruction Set", KindContainer, nil),
	item("Container.DeepSkyObjectContainer", "Deep Sky Object Sequence", KindContainer, nil),

	// Camera
	item("SequenceItem.Camera.CoolCamera", "Cool Camera", KindLeaf, map[string]any{"Temperature": -10.0, "Duration": 0.0}),
	item("SequenceItem.Camera.WarmCamera", "Warm Camera", KindLeaf, map[string]any{"Duration": 0.0}),
	item("SequenceItem.Camera.SetReadoutMode", "Set Readout Mode", KindLeaf, map[string]any{"Mode": 0}),
	item("SequenceItem.Camera.DewHeater", "Dew Heater", KindLeaf, map[string]any{"OnOff": true}),

	// Imaging
	item("SequenceItem.Imaging.TakeExposure", "Take Exposure", KindLeaf, map[string]any{
		"ExposureTime":  60.0,
		"Gain":          -1,
		"Offset":        -1,
		"Binning":       map[string]any{"X": 1, "Y": 1},
		"ImageType":     "LIGHT",
		"ExposureCount": 1,
	}),
	item("SequenceItem.Imaging.TakeManyExposures", "Take Many Exposures", KindLeaf, map[string]any{
		"ExposureTime":  60.0,
		"Gain":          -1,
		"Offset":        -1,
		"Binning":       map[string]any{"X": 1, "Y": 1},
		"ImageType":     "LIGHT",
		"ExposureCount": 10,
	}),
	item("SequenceItem.Imaging.TakeSubframeExposure", "Take Subframe Exposure", KindLeaf, map[string]any{
		"ExposureTime": 60.0,
		"ROI":          100.0,
	}),
	item("SequenceItem.Imaging.SmartExposure", "Smart Exposure", KindContainer, map[string]any{
		"ErrorBehavior": 0,
		"Attempts":      1,
	}),

	// Filter wheel
	item("SequenceItem.FilterWheel.SwitchFilter", "Switch Filter", KindLeaf, map[string]any{"Filter": nil}),

	// Focuser
	item("SequenceItem.Focuser.MoveFocuserAbsolute", "Move Focuser", KindLeaf, map[string]any{"Position": 0}),
	item("SequenceItem.Focuser.MoveFocuserRelative", "Move Focuser Relative", KindLeaf, map[string]any{"RelativePosition": 0}),
	item("SequenceItem.Focuser.MoveFocuserByTemperature", "Move Focuser By Temp.", KindLeaf, map[string]any{"Slope": 1.0, "Absolute": true, "Intercept": 0.0}),

	// Autofocus
	item("SequenceItem.Autofocus.RunAutofocus", "Run Autofocus", KindLeaf, nil),

	// Telescope
	item("SequenceItem.Telescope.SlewScopeToRaDec", "Slew To RA/Dec", KindLeaf, map[string]any{
		"Coordinates": map[string]any{
			"RAHours": 0, "RAMinutes": 0, "RASeconds": 0.0,
			"DecDegrees": 0, "DecMinutes": 0, "DecSeconds": 0.0, "NegativeDec": false,
		},
	}),
	item("SequenceItem.Telescope.SlewScopeToAltAz", "Slew To Alt/Az", KindLeaf, nil),
	item("SequenceItem.Telescope.SetTracking", "Set Tracking", KindLeaf, map[string]any{"TrackingMode": 0}),
	item("SequenceItem.Telescope.ParkScope", "Park Scope", KindLeaf, nil),
	item("SequenceItem.Telescope.UnparkScope", "Unpark Scope", KindLeaf, nil),
	item("SequenceItem.Telescope.FindHome", "Find Home", KindLeaf, nil),

	// Platesolving
	item("SequenceItem.Platesolving.Center", "Center", KindLeaf, map[string]any{"Inherited": true}),
	item("SequenceItem.Platesolving.CenterAndRotate", "Center And Rotate", KindLeaf, map[string]any{"Inherited": true, "PositionAngle": 0.0}),
	item("SequenceItem.Platesolving.SolveAndSync", "Solve And Sync", KindLeaf, nil),

	// Guider
	item("SequenceItem.Guider.StartGuiding", "Start Guiding", KindLeaf, map[string]any{"ForceCalibration": false}),
	item("SequenceItem.Guider.StopGuiding", "Stop Guiding", KindLeaf, nil),
	item("SequenceItem.Guider.Dither", "Dither", KindLeaf, nil),

	// Dome
	item("SequenceItem.Dome.OpenDomeShutter", "Open Dome Shutter", KindLeaf, nil),
	item("SequenceItem.Dome.CloseDomeShutter", "Close Dome Shutter", KindLeaf, nil),
	item("SequenceItem.Dome.ParkDome", "Park Dome", KindLeaf, nil),
	item("SequenceItem.Dome.SlewDomeAzimuth", "Slew Dome Azimuth", KindLeaf, map[string]any{"AzimuthDegrees": 0.0}),
	item("SequenceItem.Dome.SynchronizeDomeToTelescope", "Synchronize Dome", KindLeaf, nil),

	// Flat device
	item("SequenceItem.FlatDevice.OpenCover", "Open Flat Panel Cover", KindLeaf, nil),
	item("SequenceItem.FlatDevice.CloseCover", "Close Flat Panel Cover", KindLeaf, nil),
	item("SequenceItem.FlatDevice.ToggleLight", "Toggle Flat Panel Light", KindLeaf, map[string]any{"OnOff": false}),
	item("SequenceItem.FlatDevice.SetBrightness", "Set Flat Panel Brightness", KindLeaf, map[string]any{"Brightness": 0}),
	item("SequenceItem.FlatDevice.TrainedFlatExposure", "Trained Flat Exposure", KindLeaf, map[string]any{"ExposureCount": 10}),
	item("SequenceItem.FlatDevice.TrainedDarkFlatExposure", "Trained Dark Flat Exposure", KindLeaf, map[string]any{"ExposureCount": 10}),

	// Rotator
	item("SequenceItem.Rotator.MoveRotatorMechanical", "Move Rotator", KindLeaf, map[string]any{"MechanicalPosition": 0.0}),
	item("SequenceItem.Rotator.MoveRotatorRelative", "Move Rotator Relative", KindLeaf, map[string]any{"RelativePosition": 0.0}),

	// Switch
	item("SequenceItem.Switch.SetSwitchValue", "Set Switch Value", KindLeaf, map[string]any{"SwitchIndex": 0, "Value": 0.0}),

	// Safety monitor
	item("SequenceItem.SafetyMonitor.WaitUntilSafe", "Wait Until Safe", KindLeaf, nil),

	// Utility
	item("SequenceItem.Utility.WaitForTime", "Wait For Time", KindLeaf, map[string]any{"Hours": 0, "Minutes": 0, "Seconds": 0}),
	item("SequenceItem.Utility.WaitForTimeSpan", "Wait For Time Span", KindLeaf, map[string]any{"Time": 1.0}),
	item("SequenceItem.Utility.WaitForAltitude", "Wait For Altitude", KindLeaf, map[string]any{"Altitude": 30.0, "Comparator": ">="}),
	item("SequenceItem.Utility.WaitUntilAboveHorizon", "Wait Until Above Horizon", KindLeaf, nil),
	item("SequenceItem.Utility.WaitForMoonAltitude", "Wait For Moon Altitude", KindLeaf, map[string]any{"Altitude": 0.0, "Comparator": "<="}),
	item("SequenceItem.Utility.WaitForSunAltitude", "Wait For Sun Altitude", KindLeaf, map[string]any{"Altitude": -18.0, "Comparator": "<="}),
	item("SequenceItem.Utility.Annotation", "Annotation", KindLeaf, map[string]any{"Text": ""}),
	item("SequenceItem.Utility.MessageBox", "Message Box", KindLeaf, map[string]any{"Text": ""}),
	item("SequenceItem.Utility.ExternalScript", "External Script", KindLeaf, map[string]any{"Script": ""}),
}

var conditionDefs = []Definition{
	item("Conditions.LoopCondition", "Loop For Iterations", KindLeaf, map[string]any{"Iterations": 1, "CompletedIterations": 0}),
	item("Conditions.TimeCondition", "Loop Until Time", KindLeaf, map[string]any{"Hours": 0, "Minutes": 0, "Seconds": 0}),
	item("Conditions.TimeSpanCondition", "Loop For Time Span", KindLeaf, map[string]any{"Hours": 1, "Minutes": 0, "Seconds": 0}),
	item("Conditions.AltitudeCondition", "Loop Until Altitude", KindLeaf, map[string]any{"Altitude": 30.0, "Comparator": "<"}),
	item("Conditions.AboveHorizonCondition", "Loop While Above Horizon", KindLeaf, nil),
	item("Conditions.SunAltitudeCondition", "Loop Until Sun Altitude", KindLeaf, map[string]any{"Altitude": -18.0, "Comparator": ">"}),
	item("Conditions.MoonAltitudeCondition", "Loop Until Moon Altitude", KindLeaf, map[string]any{"Altitude": 0.0, "Comparator": ">"}),
	item("Conditions.MoonIlluminationCondition", "Loop Until Moon Illumination", KindLeaf, map[string]any{"Illumination": 50.0, "Comparator": ">"}),
	item("Conditions.SafetyMonitorCondition", "Loop While Safe", KindLeaf, nil),
}

var triggerDefs = []Definition{
	item("Trigger.Autofocus.AutofocusAfterExposures", "AF After # Exposures", KindLeaf, map[string]any{"AfterExposures": 10}),
	item("Trigger.Autofocus.AutofocusAfterFilterChange", "AF After Filter Change", KindLeaf, nil),
	item("Trigger.Autofocus.AutofocusAfterHFRIncreaseTrigger", "AF After HFR Increase", KindLeaf, map[string]any{"Amount": 15.0, "SampleSize": 10}),
	item("Trigger.Autofocus.AutofocusAfterTemperatureChangeTrigger", "AF After Temp. Change", KindLeaf, map[string]any{"Amount": 5.0}),
	item("Trigger.Autofocus.AutofocusAfterTimeTrigger", "AF After Time", KindLeaf, map[string]any{"Amount": 30.0}),
	item("Trigger.Guider.DitherAfterExposures", "Dither After # Exposures", KindLeaf, map[string]any{"AfterExposures": 1}),
	item("Trigger.Guider.RestoreGuiding", "Restore Guiding", KindLeaf, nil),
	item("Trigger.MeridianFlip.MeridianFlipTrigger", "Meridian Flip", KindLeaf, nil),
	item("Trigger.Platesolving.CenterAfterDriftTrigger", "Center After Drift", KindLeaf, map[string]any{"AfterExposures": 1, "DistanceArcMinutes": 1.0}),
}

var (
	items      = indexDefs(itemDefs)
	conditions = indexDefs(conditionDefs)
	triggers   = indexDefs(triggerDefs)
)

func indexDefs(defs []Definition) map[string]Definition {
	out := make(map[string]Definition, len(defs))
	for _, d := range defs {
		out[d.Type] = d
	}
	return out
}

// LookupItem returns the catalog entry for an instruction type tag.
func LookupItem(typeTag string) (Definition, bool) {
	d, ok := items[typeTag]
	return d, ok
}

// LookupCondition returns the catalog entry for a condition type tag.
func LookupCondition(typeTag string) (Definition, bool) {
	d, ok := conditions[typeTag]
	return d, ok
}

// LookupTrigger returns the catalog entry for a trigger type tag.
func LookupTrigger(typeTag string) (Definition, bool) {
	d, ok := triggers[typeTag]
	return d, ok
}

// Items lists all instruction definitions in catalog order.
func Items() []Definition { return itemDefs }

// Conditions lists all condition definitions in catalog order.
func Conditions() []Definition { return conditionDefs }

// Triggers lists all trigger definitions in catalog order.
func Triggers() []Definition { return triggerDefs }

// IsContainer reports whether a type tag denotes a container. Known tags
// answer from the catalog; unknown tags (forward compatibility with newer
// instruction sets) fall back to the naming convention of the wire format.
func IsContainer(typeTag string) bool {
	if d, ok := items[typeTag]; ok {
		return d.Kind == KindContainer
	}
	return strings.Contains(typeTag, "Container") ||
		strings.Contains(typeTag, "SmartExposure") ||
		strings.Contains(typeTag, "InstructionSet")
}

// ShortName extracts the bare class name from a fully-qualified type tag,
// e.g. "CoolCamera" out of
// "NINA.Sequencer.SequenceItem.Camera.CoolCamera, NINA.Sequencer".
func ShortName(typeTag string) string {
	path := typeTag
	if n := strings.Index(path, ","); n >= 0 {
		path = path[:n]
	}
	if n := strings.LastIndex(path, "."); n >= 0 {
		return path[n+1:]
	}
	return path
}

// Category extracts the penultimate path segment of a type tag, which the
// wire format uses as the instruction's category grouping.
func Category(typeTag string) string {
	path := typeTag
	if n := strings.Index(path, ","); n >= 0 {
		path = path[:n]
	}
	parts := strings.Split(path, ".")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return "Unknown"
}
