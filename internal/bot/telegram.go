package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dxwatch/internal/domain"
	"dxwatch/internal/render"

	"github.com/charmbracelet/log"
	tele "gopkg.in/telebot.v3"
)

// Fetcher matches the feed provider; the bot polls it once per command.
type Fetcher interface {
	Fetch(ctx context.Context) (*domain.Snapshot, []domain.Warning, error)
}

// NewTelegramBot wires the /dx, /solar and /ping commands. Returns nil when
// no token is configured so callers can skip startup cleanly.
func NewTelegramBot(token string, fetcher Fetcher) (*tele.Bot, error) {
	if token == "" {
		return nil, nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/dx", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		snap, warnings, err := fetcher.Fetch(ctx)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching conditions: %v", err))
		}
		for _, w := range warnings {
			log.Warn(w.String())
		}
		line, renderWarnings := render.Compact(snap, render.Options{Bands: c.Args()})
		if line == "" {
			return c.Send(fmt.Sprintf("No matching bands. Known: %s", strings.Join(snap.Order, ", ")))
		}
		for _, w := range renderWarnings {
			log.Warn(w.String())
		}
		return c.Send(line)
	})

	b.Handle("/solar", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		snap, _, err := fetcher.Fetch(ctx)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching conditions: %v", err))
		}
		if snap.Solar == nil {
			return c.Send("No solar context in the current feed.")
		}
		msg := fmt.Sprintf("SFI %.0f | Kp %.1f", snap.Solar.SFI, snap.Solar.Kp)
		if snap.Solar.Ap != nil {
			msg += fmt.Sprintf(" | Ap %.0f", *snap.Solar.Ap)
		}
		if snap.Storm != nil && snap.Storm.Probability >= 0.3 {
			msg += fmt.Sprintf("\nStorm: %.0f%% probability, predicted Kp %.1f",
				snap.Storm.Probability*100, snap.Storm.PredictedKp)
		}
		return c.Send(msg)
	})

	return b, nil
}
