// Package render turns a Snapshot into one of the three output forms. Full
// and Compact are human-facing text; JSON is the published scripting
// contract and must keep its exact field set.
package render

import (
	"fmt"
	"strings"

	"dxwatch/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// Options selects bands and the output dialect shared by all three formats.
type Options struct {
	// Bands filters and orders the output. Empty means every band in the
	// snapshot's natural order.
	Bands []string
	// ASCII swaps emoji glyphs and arrows for their deterministic ASCII
	// tokens.
	ASCII bool
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	ruleStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Faint(true)

	ratingStyles = map[domain.Rating]lipgloss.Style{
		domain.RatingExcellent: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		domain.RatingGood:      lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		domain.RatingFair:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		domain.RatingPoor:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		domain.RatingVeryPoor:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
)

const boxRule = "═══════════════════════════════════════════════════════"

// Full renders the boxed conditions table.
func Full(snap *domain.Snapshot, opts Options) (string, []domain.Warning) {
	readings, warnings := snap.Select(opts.Bands)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render(boxRule) + "\n")
	b.WriteString("  " + titleStyle.Render("HF DX INDEX - Current Conditions") + "\n")
	b.WriteString(ruleStyle.Render(boxRule) + "\n")
	if !snap.Updated.IsZero() {
		b.WriteString(fmt.Sprintf("  Updated: %s UTC\n", snap.Updated.Format("2006-01-02 15:04")))
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-6s %-8s %-18s %-12s", "Band", "Now", "Rating", "Tomorrow")) + "\n")
	b.WriteString(headerStyle.Render("  "+strings.Repeat("─", 48)) + "\n")

	for _, reading := range readings {
		rating := domain.Classify(reading.Index)
		cell := rating.Glyph(opts.ASCII) + " " + rating.String()
		if pct, ok := domain.DetectPeak(reading.Index, reading.Typical); ok {
			if opts.ASCII {
				cell += fmt.Sprintf(" +%d%%", pct)
			} else {
				cell += fmt.Sprintf(" ⬆+%d%%", pct)
			}
		}
		styled := ratingStyles[rating].Render(fmt.Sprintf("%-18s", cell))

		forecast := "—"
		if opts.ASCII {
			forecast = "-"
		}
		if reading.Forecast != nil {
			forecast = fmt.Sprintf("%.1f (%s)", *reading.Forecast, domain.Classify(*reading.Forecast))
		}
		b.WriteString(fmt.Sprintf("  %-6s %-8.1f %s %s\n", reading.Band, reading.Index, styled, forecast))
	}
	b.WriteString("\n")

	if snap.Solar != nil {
		b.WriteString(fmt.Sprintf("  Solar: SFI %.0f | Kp %.1f\n", snap.Solar.SFI, snap.Solar.Kp))
	}
	if line, ok := stormLine(snap.Storm, opts.ASCII); ok {
		b.WriteString(line + "\n")
	}

	b.WriteString(ruleStyle.Render(boxRule) + "\n")
	b.WriteString("  Source: " + sourceLabel(snap.Source) + " | 73 de HB9VQQ\n")

	return b.String(), warnings
}

// stormLine formats the advisory line. Below 30% probability the prediction
// is noise and stays hidden; at 50% it gets the warning marker.
func stormLine(storm *domain.StormContext, ascii bool) (string, bool) {
	if storm == nil {
		return "", false
	}
	pct := storm.Probability * 100
	switch {
	case pct >= 50:
		if ascii {
			return fmt.Sprintf("  [!] Storm: %.0f%% probability -> Kp %.1f", pct, storm.PredictedKp), true
		}
		return fmt.Sprintf("  ⚠️  Storm: %.0f%% probability → Kp %.1f", pct, storm.PredictedKp), true
	case pct >= 30:
		if ascii {
			return fmt.Sprintf("  Storm: %.0f%% probability -> Kp %.1f", pct, storm.PredictedKp), true
		}
		return fmt.Sprintf("  Storm: %.0f%% probability → Kp %.1f", pct, storm.PredictedKp), true
	default:
		return "", false
	}
}

func sourceLabel(source string) string {
	if source == "" {
		source = "wspr.hb9vqq.ch"
	}
	source = strings.TrimPrefix(source, "https://")
	source = strings.TrimPrefix(source, "http://")
	return source
}

// Compact renders the one-line scripting summary:
//
//	10m:Excellent(79)⬆76% | 15m:Fair(44) | 20m:Fair(39) | 40m:Good(52)⬆52%
func Compact(snap *domain.Snapshot, opts Options) (string, []domain.Warning) {
	readings, warnings := snap.Select(opts.Bands)

	parts := make([]string, 0, len(readings))
	for _, reading := range readings {
		rating := domain.Classify(reading.Index)
		part := fmt.Sprintf("%s:%s(%.0f)", reading.Band, rating, reading.Index)
		if pct, ok := domain.DetectPeak(reading.Index, reading.Typical); ok {
			if opts.ASCII {
				part += fmt.Sprintf("+%d%%", pct)
			} else {
				part += fmt.Sprintf("⬆%d%%", pct)
			}
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " | "), warnings
}
