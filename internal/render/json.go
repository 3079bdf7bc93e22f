package render

import (
	"encoding/json"
	"time"

	"dxwatch/internal/domain"
)

// The JSON field set below is consumed by third-party scripts
// (e.g. `dx --json | jq '.bands["10m"].rating'`). Field names and the
// omit-versus-null semantics are frozen: an absent value drops the key
// entirely, it never serializes as null or zero.

type bandDoc struct {
	Index          float64  `json:"index"`
	Rating         string   `json:"rating"`
	Forecast       *float64 `json:"forecast,omitempty"`
	ForecastRating string   `json:"forecast_rating,omitempty"`
	VsTypical      *int     `json:"vs_typical,omitempty"`
}

type solarDoc struct {
	SFI float64  `json:"sfi"`
	Kp  float64  `json:"kp"`
	Ap  *float64 `json:"ap,omitempty"`
}

type stormDoc struct {
	Probability float64 `json:"probability"`
	PredictedKp float64 `json:"predicted_kp"`
}

type snapshotDoc struct {
	Updated string             `json:"updated"`
	Bands   map[string]bandDoc `json:"bands"`
	Solar   *solarDoc          `json:"solar,omitempty"`
	Storm   *stormDoc          `json:"storm,omitempty"`
	Source  string             `json:"source,omitempty"`
}

// JSON renders the snapshot plus the derived rating fields as an indented
// document on the published contract.
func JSON(snap *domain.Snapshot, opts Options) (string, []domain.Warning) {
	readings, warnings := snap.Select(opts.Bands)

	doc := snapshotDoc{
		Bands:  make(map[string]bandDoc, len(readings)),
		Source: snap.Source,
	}
	if !snap.Updated.IsZero() {
		doc.Updated = snap.Updated.Format(time.RFC3339)
	}
	for _, reading := range readings {
		band := bandDoc{
			Index:    reading.Index,
			Rating:   domain.Classify(reading.Index).String(),
			Forecast: reading.Forecast,
		}
		if reading.Forecast != nil {
			band.ForecastRating = domain.Classify(*reading.Forecast).String()
		}
		if pct, ok := domain.DetectPeak(reading.Index, reading.Typical); ok {
			band.VsTypical = &pct
		}
		doc.Bands[reading.Band] = band
	}
	if snap.Solar != nil {
		doc.Solar = &solarDoc{SFI: snap.Solar.SFI, Kp: snap.Solar.Kp, Ap: snap.Solar.Ap}
	}
	if snap.Storm != nil {
		doc.Storm = &stormDoc{Probability: snap.Storm.Probability, PredictedKp: snap.Storm.PredictedKp}
	}

	// marshalling a plain struct of floats and strings cannot fail
	out, _ := json.MarshalIndent(doc, "", "  ")
	return string(out), warnings
}
