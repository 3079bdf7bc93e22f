// Package alert implements the scripting-oriented alert decision: does any
// band currently meet the minimum rating. The caller maps the boolean to the
// process exit code, which is the entire external contract of alert mode.
package alert

import "dxwatch/internal/domain"

// Evaluate reports whether any selected band's current rating is at least
// min. Forecast ratings never count. Unknown requested bands come back as
// warnings and are excluded from the decision.
func Evaluate(snap *domain.Snapshot, bands []string, min domain.Rating) (bool, []domain.Warning) {
	readings, warnings := snap.Select(bands)
	for _, reading := range readings {
		if domain.Classify(reading.Index) >= min {
			return true, warnings
		}
	}
	return false, warnings
}
