package wearable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/swimstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// HTTPFeed pulls provider activities over plain HTTP. Each provider gets a
// base URL, typically an aggregator bridge rather than the vendor API itself.
type HTTPFeed struct {
	baseURLs   map[Provider]string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPFeed(baseURLs map[Provider]string, apiKey string, httpClient *http.Client) *HTTPFeed {
	return &HTTPFeed{
		baseURLs:   baseURLs,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (f *HTTPFeed) FetchActivities(
	ctx context.Context,
	userID int,
	provider Provider,
	since time.Time,
) (_ []FeedActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "wearable.feed.fetch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("provider", string(provider)))

	baseURL, ok := f.baseURLs[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	feedURL := fmt.Sprintf(
		"%s/activities?user=%d&since=%d&appid=%s",
		baseURL, userID, since.Unix(), f.apiKey,
	)
	log.Debugf("calling wearable feed: %s [%s]", baseURL, provider)

	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s responded with %d", provider, resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed response bytes: %w", err)
	}

	var feedActivities []FeedActivity
	if err := json.Unmarshal(respBytes, &feedActivities); err != nil {
		return nil, fmt.Errorf("unmarshal feed response: %w", err)
	}

	span.SetAttributes(attribute.Int("feed.activities", len(feedActivities)))
	return feedActivities, nil
}
