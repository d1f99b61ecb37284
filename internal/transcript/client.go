package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/types"
)

// Fetcher returns the ordered caption segments of a video.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) ([]types.TranscriptSegment, error)
}

type transcriptResponse struct {
	Segments []types.TranscriptSegment `json:"segments"`
	Error    string                    `json:"error,omitempty"`
	Reason   string                    `json:"reason,omitempty"`
}

// HTTPClient fetches transcripts from a caption service exposing
// GET {base}/transcripts/{videoID}?lang=xx.
type HTTPClient struct {
	BaseURL      string
	Language     string
	HTTP         *http.Client
	MaxRetryTime time.Duration
}

func NewHTTPClient(baseURL, language string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Language:     language,
		HTTP:         &http.Client{Timeout: timeout},
		MaxRetryTime: 12 * time.Second,
	}
}

func (c *HTTPClient) Fetch(ctx context.Context, videoID string) ([]types.TranscriptSegment, error) {
	log := logger.New().Component("transcript-client").WithField("video_id", videoID)
	if c.BaseURL == "" {
		return nil, &FetchError{Kind: KindOther, VideoID: videoID, Message: "TRANSCRIPT_API_URL not set"}
	}

	u, err := url.Parse(c.BaseURL + "/transcripts/" + url.PathEscape(videoID))
	if err != nil {
		return nil, &FetchError{Kind: KindOther, VideoID: videoID, Message: err.Error()}
	}
	if c.Language != "" {
		q := u.Query()
		q.Set("lang", c.Language)
		u.RawQuery = q.Encode()
	}

	var out transcriptResponse
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = &FetchError{Kind: KindOther, VideoID: videoID, Message: err.Error()}
			return lastErr
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode >= 500 {
			lastErr = &FetchError{Kind: KindOther, VideoID: videoID, Message: fmt.Sprintf("server error: %s", string(body))}
			return lastErr
		}
		out = transcriptResponse{}
		if err := json.Unmarshal(body, &out); err != nil {
			kind := KindOther
			if resp.StatusCode >= 400 {
				kind = kindForStatus(resp.StatusCode)
			}
			lastErr = &FetchError{Kind: kind, VideoID: videoID, Message: fmt.Sprintf("status %d, json decode error: %v", resp.StatusCode, err)}
			return backoff.Permanent(lastErr)
		}
		if resp.StatusCode >= 400 || out.Error != "" {
			kind := classify(out.Reason, out.Error)
			if kind == KindOther && resp.StatusCode >= 400 {
				kind = kindForStatus(resp.StatusCode)
			}
			lastErr = &FetchError{Kind: kind, VideoID: videoID, Message: out.Error}
			return backoff.Permanent(lastErr)
		}
		lastErr = nil
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.MaxRetryTime
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if lastErr == nil {
			lastErr = &FetchError{Kind: KindOther, VideoID: videoID, Message: err.Error()}
		}
		log.WithField("error", lastErr.Error()).Warn("transcript fetch failed")
		return nil, lastErr
	}
	if len(out.Segments) == 0 {
		return nil, &FetchError{Kind: KindNoTranscript, VideoID: videoID, Message: "transcript was found but empty"}
	}
	log.WithField("segments", len(out.Segments)).Debug("transcript fetched")
	return out.Segments, nil
}

// MockFetcher returns a fixed transcript for any video id.
type MockFetcher struct {
	Segments []types.TranscriptSegment
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{Segments: []types.TranscriptSegment{
		{Text: "Welcome back to the channel", Start: 0, Duration: 3.2},
		{Text: "today we discuss the ephemeral nature of startup culture", Start: 3.2, Duration: 4.1},
		{Text: "and how Steve Jobs built Apple into a ubiquitous brand", Start: 7.3, Duration: 4.4},
		{Text: "his obsession with minimalism was almost dogmatic", Start: 11.7, Duration: 3.9},
	}}
}

func (m *MockFetcher) Fetch(_ context.Context, _ string) ([]types.TranscriptSegment, error) {
	out := make([]types.TranscriptSegment, len(m.Segments))
	copy(out, m.Segments)
	return out, nil
}
