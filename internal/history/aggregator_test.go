package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderStore returns canned daily quantities
type fakeOrderStore struct {
	byDate map[string]int
	err    error
}

func (f *fakeOrderStore) DailyQuantities(ctx context.Context, productID int64, from, to time.Time) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate, nil
}

func TestAggregator_BuildSeries_ZeroFill(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	orders := &fakeOrderStore{byDate: map[string]int{
		"2026-08-29": 5,
		"2026-08-31": 3,
	}}
	aggregator := NewAggregator(orders, zerolog.Nop())

	series, err := aggregator.BuildSeries(context.Background(), 1, 7, now)
	require.NoError(t, err)

	// Window of 7 days is inclusive on both ends: 8 points
	require.Len(t, series, 8)

	// Dates are consecutive calendar days ending today (UTC midnight)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), series[7].Date)
	for i := 1; i < len(series); i++ {
		assert.Equal(t, series[i-1].Date.AddDate(0, 0, 1), series[i].Date)
	}

	// Days without orders are zero-filled
	assert.Equal(t, 5, series[5].Quantity) // 2026-08-29
	assert.Equal(t, 0, series[6].Quantity) // 2026-08-30
	assert.Equal(t, 3, series[7].Quantity) // 2026-08-31
	assert.Equal(t, 8, series.Total())
}

func TestAggregator_BuildSeries_NoOrders(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	aggregator := NewAggregator(&fakeOrderStore{byDate: map[string]int{}}, zerolog.Nop())

	series, err := aggregator.BuildSeries(context.Background(), 1, 60, now)
	require.NoError(t, err)

	assert.Len(t, series, 61)
	assert.Equal(t, 0, series.Total())
}

func TestAggregator_BuildSeries_StoreError(t *testing.T) {
	aggregator := NewAggregator(&fakeOrderStore{err: errors.New("db down")}, zerolog.Nop())

	_, err := aggregator.BuildSeries(context.Background(), 1, 60, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily quantities")
}

func TestAggregator_BuildSeries_MaxDaily(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	orders := &fakeOrderStore{byDate: map[string]int{
		"2026-08-30": 12,
		"2026-08-31": 4,
	}}
	aggregator := NewAggregator(orders, zerolog.Nop())

	series, err := aggregator.BuildSeries(context.Background(), 1, 3, now)
	require.NoError(t, err)

	assert.Equal(t, 12, series.MaxDaily())
}
