// Package report assembles the envelope returned for a calculation by the
// JSON CLI output and the HTTP API.
package report

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/carbonfocus/internal/footprint"
	"github.com/rshade/carbonfocus/internal/greenops"
)

// Report is a calculation result with its context. Result fields are
// flattened into the top-level object.
type Report struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Input       footprint.Input `json:"input"`

	footprint.Result

	Shares        []footprint.Share            `json:"shares"`
	Equivalencies *greenops.EquivalencyOutput  `json:"equivalencies,omitempty"`
	Averages      []greenops.AverageComparison `json:"averages"`

	// ClampedFields lists inputs that were pulled back into their allowed range.
	ClampedFields []string `json:"clamped_fields,omitempty"`
}

// Option customizes Build.
type Option func(*Report)

// WithClock sets the function used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Report) { r.GeneratedAt = now().UTC() }
}

// WithClamped records fields changed by footprint.Bounds.Clamp.
func WithClamped(fields []string) Option {
	return func(r *Report) {
		if len(fields) > 0 {
			r.ClampedFields = append([]string(nil), fields...)
		}
	}
}

// Build creates a Report for in and its result res. Equivalencies are
// omitted when the total is too small to express.
func Build(in footprint.Input, res footprint.Result, opts ...Option) Report {
	r := Report{
		ID:          ulid.Make().String(),
		GeneratedAt: time.Now().UTC(),
		Input:       in,
		Result:      res,
		Shares:      res.Breakdown(),
		Averages:    greenops.CompareToAverages(res.Total),
	}

	if eq, err := greenops.FromTonnes(res.Total); err == nil && !eq.IsEmpty {
		r.Equivalencies = &eq
	}

	for _, opt := range opts {
		opt(&r)
	}
	return r
}
