package render

import (
	"encoding/json"
	"testing"

	"dxwatch/internal/domain"
	"dxwatch/internal/feed"
)

func TestJSONFieldPresence(t *testing.T) {
	out, warnings := JSON(exampleSnapshot(), Options{})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"updated", "bands", "solar", "storm"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("missing top-level key %q:\n%s", key, out)
		}
	}

	var bands map[string]map[string]json.RawMessage
	if err := json.Unmarshal(doc["bands"], &bands); err != nil {
		t.Fatalf("bands not an object: %v", err)
	}

	ten := bands["10m"]
	for _, key := range []string{"index", "rating", "forecast", "forecast_rating", "vs_typical"} {
		if _, ok := ten[key]; !ok {
			t.Fatalf("10m missing %q: %s", key, out)
		}
	}
	var rating string
	if err := json.Unmarshal(ten["rating"], &rating); err != nil || rating != "Excellent" {
		t.Fatalf("unexpected 10m rating: %s", ten["rating"])
	}
	var vsTypical int
	if err := json.Unmarshal(ten["vs_typical"], &vsTypical); err != nil || vsTypical != 76 {
		t.Fatalf("unexpected vs_typical: %s", ten["vs_typical"])
	}

	// no peak means no key, not null and not zero
	if _, ok := bands["15m"]["vs_typical"]; ok {
		t.Fatalf("15m must not carry vs_typical: %s", out)
	}
	if _, ok := bands["20m"]["vs_typical"]; ok {
		t.Fatalf("below-typical 20m must not carry vs_typical: %s", out)
	}
}

func TestJSONOmitsAbsentForecast(t *testing.T) {
	bands := map[string]domain.BandReading{"10m": {Band: "10m", Index: 55.5}}
	snap := &domain.Snapshot{Bands: bands, Order: domain.NaturalOrder(bands)}
	out, _ := JSON(snap, Options{})

	var doc struct {
		Bands map[string]map[string]json.RawMessage `json:"bands"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"forecast", "forecast_rating", "vs_typical"} {
		if _, ok := doc.Bands["10m"][key]; ok {
			t.Fatalf("absent %s must omit the key entirely:\n%s", key, out)
		}
	}
}

func TestJSONBandFilter(t *testing.T) {
	out, warnings := JSON(exampleSnapshot(), Options{Bands: []string{"10m", "80m"}})
	if len(warnings) != 1 || warnings[0].Band != "80m" {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	var doc struct {
		Bands map[string]json.RawMessage `json:"bands"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Bands) != 1 {
		t.Fatalf("expected only 10m in filtered output:\n%s", out)
	}
}

// The JSON document must survive a round trip through the feed parser with
// index and forecast intact; scripts replay dx output into other tooling.
func TestJSONRoundTrip(t *testing.T) {
	snap := exampleSnapshot()
	out, _ := JSON(snap, Options{})

	reparsed, warnings, err := feed.Parse([]byte(out))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	if len(reparsed.Bands) != len(snap.Bands) {
		t.Fatalf("band count changed: %d != %d", len(reparsed.Bands), len(snap.Bands))
	}
	for name, orig := range snap.Bands {
		got, ok := reparsed.Bands[name]
		if !ok {
			t.Fatalf("band %s lost in round trip", name)
		}
		if got.Index != orig.Index {
			t.Fatalf("band %s index changed: %v != %v", name, got.Index, orig.Index)
		}
		if (got.Forecast == nil) != (orig.Forecast == nil) {
			t.Fatalf("band %s forecast presence changed", name)
		}
		if got.Forecast != nil && *got.Forecast != *orig.Forecast {
			t.Fatalf("band %s forecast changed: %v != %v", name, *got.Forecast, *orig.Forecast)
		}
	}
	if !reparsed.Updated.Equal(snap.Updated) {
		t.Fatalf("timestamp changed: %v != %v", reparsed.Updated, snap.Updated)
	}
	if reparsed.Solar == nil || reparsed.Solar.SFI != snap.Solar.SFI || reparsed.Solar.Kp != snap.Solar.Kp {
		t.Fatalf("solar context changed: %+v", reparsed.Solar)
	}
	if reparsed.Storm == nil || reparsed.Storm.Probability != snap.Storm.Probability {
		t.Fatalf("storm context changed: %+v", reparsed.Storm)
	}
}
