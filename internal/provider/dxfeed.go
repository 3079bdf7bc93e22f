package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"dxwatch/internal/domain"
	"dxwatch/internal/feed"

	"go.opentelemetry.io/otel/trace"
)

const defaultFeedURL = "https://wspr.hb9vqq.ch/api/dx.json"

// DXFeedProvider fetches one propagation-index snapshot per call. Transient
// transport failures get a single retry; everything past the GET is delegated
// to feed.Parse.
type DXFeedProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewDXFeedProvider(tracer trace.Tracer, url string, timeout time.Duration) *DXFeedProvider {
	if url == "" {
		url = defaultFeedURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DXFeedProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: url,
		tracer:  tracer,
	}
}

// Fetch polls the feed and returns the parsed snapshot plus any non-fatal
// per-band warnings.
func (p *DXFeedProvider) Fetch(ctx context.Context) (*domain.Snapshot, []domain.Warning, error) {
	_, span := p.tracer.Start(ctx, "dxfeed.fetch")
	defer span.End()

	body, err := p.get(ctx)
	if err != nil {
		// one retry covers the flaky-wifi case without masking real outages
		time.Sleep(500 * time.Millisecond)
		if body, err = p.get(ctx); err != nil {
			return nil, nil, fmt.Errorf("fetch dx feed: %w", err)
		}
	}
	return feed.Parse(body)
}

func (p *DXFeedProvider) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("dx feed API error %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}
