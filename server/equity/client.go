package equity

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ErrRetrieval marks every failure at the equity service boundary.
var ErrRetrieval = errors.New("equity retrieval failed")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	rangeHeatmapPath       = "/api/equity/range-heatmap"
	handVsRangeHeatmapPath = "/api/equity/hand-vs-range-heatmap"
	handVsRandomPath       = "/api/equity/hand-vs-random"
	handVsHandPath         = "/api/equity/hand-vs-hand"
	handVsRangePath        = "/api/equity/hand-vs-range"
)

// StatusError is a non-2xx answer from the service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("equity service http %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrRetrieval }

// HeatmapResponse is the wire shape of both heatmap endpoints.
type HeatmapResponse struct {
	Hands    []string  `json:"hands"`
	Equities []float64 `json:"equities"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// RangeHeatmap asks for every starting hand's equity against a random hand.
func (c *Client) RangeHeatmap(ctx context.Context) (HeatmapResponse, error) {
	return c.heatmap(ctx, rangeHeatmapPath, map[string]any{})
}

// HandVsRangeHeatmap asks for the equity of hand against every starting hand.
func (c *Client) HandVsRangeHeatmap(ctx context.Context, hand string) (HeatmapResponse, error) {
	return c.heatmap(ctx, handVsRangeHeatmapPath, map[string]any{"hand": hand})
}

func (c *Client) HandVsRandom(ctx context.Context, hand string) (float64, error) {
	return c.single(ctx, handVsRandomPath, map[string]any{"hand": hand})
}

func (c *Client) HandVsHand(ctx context.Context, hero, villain string) (float64, error) {
	return c.single(ctx, handVsHandPath, map[string]any{"hero_hand": hero, "villain_hand": villain})
}

func (c *Client) HandVsRange(ctx context.Context, hand, rng string) (float64, error) {
	return c.single(ctx, handVsRangePath, map[string]any{"hand": hand, "range": rng})
}

func (c *Client) heatmap(ctx context.Context, path string, payload map[string]any) (HeatmapResponse, error) {
	body, err := c.post(ctx, path, payload)
	if err != nil {
		return HeatmapResponse{}, err
	}
	var raw struct {
		Hands    *[]string  `json:"hands"`
		Equities *[]float64 `json:"equities"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return HeatmapResponse{}, errors.Wrapf(ErrRetrieval, "decode %s: %v", path, err)
	}
	if raw.Hands == nil || raw.Equities == nil {
		return HeatmapResponse{}, errors.Wrapf(ErrRetrieval, "%s: response lacks hands or equities", path)
	}
	return HeatmapResponse{Hands: *raw.Hands, Equities: *raw.Equities}, nil
}

func (c *Client) single(ctx context.Context, path string, payload map[string]any) (float64, error) {
	body, err := c.post(ctx, path, payload)
	if err != nil {
		return 0, err
	}
	var raw struct {
		Equity *float64 `json:"equity"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, errors.Wrapf(ErrRetrieval, "decode %s: %v", path, err)
	}
	if raw.Equity == nil {
		return 0, errors.Wrapf(ErrRetrieval, "%s: response lacks equity", path)
	}
	return *raw.Equity, nil
}

func (c *Client) post(ctx context.Context, path string, payload map[string]any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(ErrRetrieval, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpc := c.HTTP
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrRetrieval, "%s: %v", path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, errors.Wrapf(ErrRetrieval, "read %s: %v", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(buf.String(), 800)}
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
