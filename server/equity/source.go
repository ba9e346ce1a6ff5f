package equity

import "context"

// Source is the single request a Session issues.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (HeatmapResponse, error)
}

type sourceFunc struct {
	name  string
	fetch func(ctx context.Context) (HeatmapResponse, error)
}

func (s sourceFunc) Name() string { return s.name }

func (s sourceFunc) Fetch(ctx context.Context) (HeatmapResponse, error) { return s.fetch(ctx) }

// NewSource wraps a plain function, mostly for tests and alternative transports.
func NewSource(name string, fetch func(ctx context.Context) (HeatmapResponse, error)) Source {
	return sourceFunc{name: name, fetch: fetch}
}

func RangeHeatmap(c *Client) Source {
	return sourceFunc{name: "range-heatmap", fetch: c.RangeHeatmap}
}

func HandVsRangeHeatmap(c *Client, hand string) Source {
	return sourceFunc{
		name: "hand-vs-range-heatmap:" + hand,
		fetch: func(ctx context.Context) (HeatmapResponse, error) {
			return c.HandVsRangeHeatmap(ctx, hand)
		},
	}
}
