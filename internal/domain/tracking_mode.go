package domain

// TrackingMode determines how users record time and therefore which
// field a restart refusal is reported on.
type TrackingMode string

const (
	// TrackingModeDefault lets users edit begin and end freely.
	TrackingModeDefault TrackingMode = "default"
	// TrackingModeDurationOnly records begin plus a duration.
	TrackingModeDurationOnly TrackingMode = "duration_only"
	// TrackingModePunch only allows punch-in/punch-out, no manual times.
	TrackingModePunch TrackingMode = "punch"
)

// IsValid reports whether the mode is one of the known tracking modes.
func (m TrackingMode) IsValid() bool {
	switch m {
	case TrackingModeDefault, TrackingModeDurationOnly, TrackingModePunch:
		return true
	}
	return false
}
