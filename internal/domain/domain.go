package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Rating buckets a DX Index value. The zero value is the worst bucket, and
// the ordering of the constants is the severity ordering alert mode compares
// against.
type Rating int

const (
	RatingVeryPoor Rating = iota
	RatingPoor
	RatingFair
	RatingGood
	RatingExcellent
)

var ratingNames = [...]string{"VeryPoor", "Poor", "Fair", "Good", "Excellent"}

func (r Rating) String() string {
	if r < RatingVeryPoor || r > RatingExcellent {
		return "?"
	}
	return ratingNames[r]
}

// ParseRating resolves a rating name as given on the command line.
func ParseRating(name string) (Rating, bool) {
	name = strings.TrimSpace(name)
	for i, n := range ratingNames {
		if strings.EqualFold(n, name) {
			return Rating(i), true
		}
	}
	return RatingVeryPoor, false
}

// classification table, highest floor first; floors are inclusive so a value
// sitting exactly on a boundary belongs to the higher bucket.
var ratingFloors = []struct {
	Floor  float64
	Rating Rating
}{
	{70, RatingExcellent},
	{50, RatingGood},
	{35, RatingFair},
	{20, RatingPoor},
}

// Classify maps a DX Index value to its rating bucket. The table is open
// ended on both sides, so out-of-range telemetry still classifies instead of
// failing.
func Classify(index float64) Rating {
	for _, f := range ratingFloors {
		if index >= f.Floor {
			return f.Rating
		}
	}
	return RatingVeryPoor
}

var ratingGlyphs = map[Rating]string{
	RatingExcellent: "🔵",
	RatingGood:      "🟢",
	RatingFair:      "🟠",
	RatingPoor:      "🔴",
	RatingVeryPoor:  "⚫",
}

// ratingTokens are the deterministic ASCII stand-ins for terminals without
// emoji support.
var ratingTokens = map[Rating]string{
	RatingExcellent: "[++++]",
	RatingGood:      "[+++ ]",
	RatingFair:      "[++  ]",
	RatingPoor:      "[+   ]",
	RatingVeryPoor:  "[    ]",
}

// Glyph returns the terminal marker for the rating. ASCII mode swaps the
// emoji for a stable bracket token.
func (r Rating) Glyph(ascii bool) string {
	table := ratingGlyphs
	if ascii {
		table = ratingTokens
	}
	if g, ok := table[r]; ok {
		return g
	}
	return "?"
}

// PeakThresholdPct is the minimum rounded gain over the hourly baseline that
// counts as a peak. The comparison is strict.
const PeakThresholdPct = 20

// DetectPeak reports how far current sits above its typical hourly baseline,
// as a rounded whole percentage. The second return is false when there is no
// positive baseline to compare against or the gain does not clear
// PeakThresholdPct. Bands running below typical are never surfaced.
func DetectPeak(current float64, baseline *float64) (int, bool) {
	if baseline == nil || *baseline <= 0 {
		return 0, false
	}
	pct := int(math.Round((current - *baseline) / *baseline * 100))
	if pct <= PeakThresholdPct {
		return 0, false
	}
	return pct, true
}

// AllBands is the band catalog in display order.
var AllBands = []string{"10m", "15m", "20m", "40m"}

// BandReading is one band's slice of a Snapshot. Forecast and Typical are nil
// when the feed did not carry them; they are never defaulted to zero.
type BandReading struct {
	Band     string
	Index    float64
	Forecast *float64
	Typical  *float64
}

// SolarContext carries solar-weather numbers for display only.
type SolarContext struct {
	SFI float64
	Kp  float64
	Ap  *float64
}

// StormContext is an advisory geomagnetic storm prediction. Probability is a
// fraction in [0,1].
type StormContext struct {
	Probability float64
	PredictedKp float64
}

// Snapshot is one poll of the feed. It is immutable once constructed and
// owned by the poll cycle that built it.
type Snapshot struct {
	Updated time.Time
	Source  string
	Bands   map[string]BandReading
	Order   []string
	Solar   *SolarContext
	Storm   *StormContext
}

// NaturalOrder sorts the feed's band identifiers catalog-first: bands from
// AllBands keep their catalog position, anything else follows sorted.
func NaturalOrder(bands map[string]BandReading) []string {
	order := make([]string, 0, len(bands))
	for _, b := range AllBands {
		if _, ok := bands[b]; ok {
			order = append(order, b)
		}
	}
	known := make(map[string]bool, len(order))
	for _, b := range order {
		known[b] = true
	}
	extras := make([]string, 0)
	for b := range bands {
		if !known[b] {
			extras = append(extras, b)
		}
	}
	sort.Strings(extras)
	return append(order, extras...)
}

// Select resolves a caller-supplied band filter against the snapshot. With no
// filter it yields every band in the snapshot's natural order. Unknown names
// are skipped and reported as warnings, never a hard failure.
func (s *Snapshot) Select(requested []string) ([]BandReading, []Warning) {
	names := requested
	if len(names) == 0 {
		names = s.Order
	}
	readings := make([]BandReading, 0, len(names))
	var warnings []Warning
	for _, name := range names {
		reading, ok := s.Bands[name]
		if !ok {
			warnings = append(warnings, Warning{Code: WarnUnknownBandRequested, Band: name})
			continue
		}
		readings = append(readings, reading)
	}
	return readings, warnings
}

// WarningCode classifies the non-fatal degradations a poll can produce.
type WarningCode string

const (
	WarnMissingBandData      WarningCode = "missing_band_data"
	WarnUnknownBandRequested WarningCode = "unknown_band_requested"
)

// Warning is a non-fatal condition surfaced on the error stream while the
// rest of the output still renders.
type Warning struct {
	Code WarningCode
	Band string
}

func (w Warning) String() string {
	switch w.Code {
	case WarnMissingBandData:
		return fmt.Sprintf("band %s has no current index, skipping", w.Band)
	case WarnUnknownBandRequested:
		return fmt.Sprintf("unknown band %q requested, skipping", w.Band)
	default:
		return fmt.Sprintf("%s: %s", w.Code, w.Band)
	}
}
