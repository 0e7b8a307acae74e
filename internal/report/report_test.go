package report_test

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonfocus/internal/footprint"
	"github.com/rshade/carbonfocus/internal/report"
)

func TestBuild(t *testing.T) {
	in := footprint.DefaultInput("United States")
	res, err := footprint.Calculate(in)
	require.NoError(t, err)

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := report.Build(in, res, report.WithClock(func() time.Time { return fixed }))

	_, err = ulid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, fixed, r.GeneratedAt)
	assert.Equal(t, in, r.Input)
	assert.InDelta(t, 4.56145, r.Total, 1e-9)
	assert.Len(t, r.Shares, 4)
	assert.Len(t, r.Averages, 3)
	require.NotNil(t, r.Equivalencies)
	assert.Nil(t, r.ClampedFields)
}

func TestBuild_UniqueIDs(t *testing.T) {
	in := footprint.DefaultInput("")
	res, err := footprint.Calculate(in)
	require.NoError(t, err)

	assert.NotEqual(t, report.Build(in, res).ID, report.Build(in, res).ID)
}

func TestBuild_ZeroFootprint(t *testing.T) {
	in := footprint.Input{Country: "India"}
	res, err := footprint.Calculate(in)
	require.NoError(t, err)

	r := report.Build(in, res, report.WithClamped(nil))
	assert.Nil(t, r.Equivalencies)
	assert.Nil(t, r.ClampedFields)
}

func TestReport_JSONFlattensResult(t *testing.T) {
	in := footprint.DefaultInput("India")
	res, err := footprint.Calculate(in)
	require.NoError(t, err)

	r := report.Build(in, res, report.WithClamped([]string{footprint.FieldDistance}))
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.InDelta(t, 3.87375, decoded["total_emissions"], 1e-9)
	assert.InDelta(t, 0.511, decoded["transportation_emissions"], 1e-9)
	assert.Equal(t, "India", decoded["country"])
	assert.Equal(t, r.ID, decoded["id"])
	assert.Contains(t, decoded, "input")
	assert.Contains(t, decoded, "shares")
	assert.Contains(t, decoded, "equivalencies")
	assert.Equal(t, []any{footprint.FieldDistance}, decoded["clamped_fields"])
}
