package alert

import (
	"testing"

	"dxwatch/internal/domain"
)

func f(v float64) *float64 { return &v }

func exampleSnapshot() *domain.Snapshot {
	bands := map[string]domain.BandReading{
		"10m": {Band: "10m", Index: 78.7},
		"15m": {Band: "15m", Index: 43.6},
		"20m": {Band: "20m", Index: 38.6},
		"40m": {Band: "40m", Index: 52.0},
	}
	return &domain.Snapshot{Bands: bands, Order: domain.NaturalOrder(bands)}
}

func TestEvaluateAnyBandMeetsThreshold(t *testing.T) {
	met, warnings := Evaluate(exampleSnapshot(), nil, domain.RatingGood)
	if !met {
		t.Fatal("10m=Excellent and 40m=Good should satisfy a Good threshold")
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
}

func TestEvaluateThresholdNotMet(t *testing.T) {
	if met, _ := Evaluate(exampleSnapshot(), []string{"15m", "20m"}, domain.RatingGood); met {
		t.Fatal("Fair bands must not satisfy a Good threshold")
	}
}

func TestEvaluateExcellentThreshold(t *testing.T) {
	if met, _ := Evaluate(exampleSnapshot(), nil, domain.RatingExcellent); !met {
		t.Fatal("10m=Excellent should satisfy an Excellent threshold")
	}
	if met, _ := Evaluate(exampleSnapshot(), []string{"40m"}, domain.RatingExcellent); met {
		t.Fatal("Good must not satisfy an Excellent threshold")
	}
}

func TestEvaluateIgnoresForecast(t *testing.T) {
	bands := map[string]domain.BandReading{
		"10m": {Band: "10m", Index: 10, Forecast: f(95)},
	}
	snap := &domain.Snapshot{Bands: bands, Order: domain.NaturalOrder(bands)}
	if met, _ := Evaluate(snap, nil, domain.RatingGood); met {
		t.Fatal("forecast ratings must never satisfy the alert")
	}
}

func TestEvaluateUnknownBandWarns(t *testing.T) {
	met, warnings := Evaluate(exampleSnapshot(), []string{"80m", "10m"}, domain.RatingGood)
	if !met {
		t.Fatal("known band should still evaluate")
	}
	if len(warnings) != 1 || warnings[0].Code != domain.WarnUnknownBandRequested {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
}
