// Package feed turns the raw propagation-index payload into a validated
// domain.Snapshot. Only a structurally broken payload is fatal; individual
// missing fields degrade to warnings so the remaining bands still render.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dxwatch/internal/domain"
)

// ErrMalformedFeed marks a payload that cannot produce any snapshot at all.
// Callers distinguish it from "alert not met" when deciding exit codes.
var ErrMalformedFeed = errors.New("malformed feed")

type wireBand struct {
	Index    *float64 `json:"index"`
	Forecast *float64 `json:"forecast"`
	Typical  *float64 `json:"typical"`
}

type wireSolar struct {
	SFI *float64 `json:"sfi"`
	Kp  *float64 `json:"kp"`
	Ap  *float64 `json:"ap"`
}

type wireStorm struct {
	Probability *float64 `json:"probability"`
	PredictedKp *float64 `json:"predicted_kp"`
}

type wireSnapshot struct {
	Updated string              `json:"updated"`
	Source  string              `json:"source"`
	Bands   map[string]wireBand `json:"bands"`
	Solar   *wireSolar          `json:"solar"`
	Storm   *wireStorm          `json:"storm"`
}

// Parse validates one feed payload. A band entry without a current index is
// dropped with a missing_band_data warning; a band without a forecast keeps
// an absent forecast rather than a zeroed one. The error, when non-nil,
// always wraps ErrMalformedFeed and no snapshot is returned alongside it.
func Parse(raw []byte) (*domain.Snapshot, []domain.Warning, error) {
	var wire wireSnapshot
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}
	if wire.Bands == nil {
		return nil, nil, fmt.Errorf("%w: missing bands section", ErrMalformedFeed)
	}
	if len(wire.Bands) == 0 {
		return nil, nil, fmt.Errorf("%w: bands section is empty", ErrMalformedFeed)
	}

	snap := &domain.Snapshot{
		Source: wire.Source,
		Bands:  make(map[string]domain.BandReading, len(wire.Bands)),
	}

	// an unparseable timestamp only costs the header line, never the poll
	if wire.Updated != "" {
		if ts, err := time.Parse(time.RFC3339, wire.Updated); err == nil {
			snap.Updated = ts.UTC()
		}
	}

	var warnings []domain.Warning
	for name, band := range wire.Bands {
		if band.Index == nil {
			warnings = append(warnings, domain.Warning{Code: domain.WarnMissingBandData, Band: name})
			continue
		}
		snap.Bands[name] = domain.BandReading{
			Band:     name,
			Index:    *band.Index,
			Forecast: band.Forecast,
			Typical:  band.Typical,
		}
	}
	if len(snap.Bands) == 0 {
		return nil, nil, fmt.Errorf("%w: no band carries a current index", ErrMalformedFeed)
	}
	snap.Order = domain.NaturalOrder(snap.Bands)

	if wire.Solar != nil && wire.Solar.SFI != nil && wire.Solar.Kp != nil {
		snap.Solar = &domain.SolarContext{
			SFI: *wire.Solar.SFI,
			Kp:  *wire.Solar.Kp,
			Ap:  wire.Solar.Ap,
		}
	}
	if wire.Storm != nil && wire.Storm.Probability != nil {
		storm := &domain.StormContext{Probability: *wire.Storm.Probability}
		if wire.Storm.PredictedKp != nil {
			storm.PredictedKp = *wire.Storm.PredictedKp
		}
		snap.Storm = storm
	}

	return snap, warnings, nil
}
