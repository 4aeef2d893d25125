package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/restock/internal/contracts"
	"github.com/wonny/restock/internal/features"
	"github.com/wonny/restock/internal/history"
	"github.com/wonny/restock/internal/mlmodel"
)

// perProductOrders serves a different constant daily quantity per product
type perProductOrders struct {
	perDay map[int64]int
}

func (f *perProductOrders) DailyQuantities(ctx context.Context, productID int64, from, to time.Time) (map[string]int, error) {
	out := make(map[string]int)
	qty := f.perDay[productID]
	if qty == 0 {
		return out, nil
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out[d.Format(contracts.DateFormat)] = qty
	}
	return out, nil
}

// countingAlerts records which products had their alerts refreshed
type countingAlerts struct {
	calls []int64
}

func (c *countingAlerts) Generate(ctx context.Context, productID int64) (*contracts.StockAlert, error) {
	c.calls = append(c.calls, productID)
	return nil, nil
}

func TestBatchTrainer_TrainAll(t *testing.T) {
	log := zerolog.Nop()

	products := &fakeProducts{products: map[int64]contracts.Product{
		1: {ID: 1, Name: "A"},
		2: {ID: 2, Name: "B"}, // no sales history
		3: {ID: 3, Name: "C"},
	}}
	orders := &perProductOrders{perDay: map[int64]int{1: 10, 3: 4}}
	store := &fakeForecasts{}

	pipeline := NewPipeline(
		history.NewAggregator(orders, log),
		features.NewEngineer(log),
		mlmodel.NewTrainer(log),
		NewProjector(log),
		products, store, nil, NewKeyLock(),
		20, 7,
		log,
	)

	alerts := &countingAlerts{}
	batch := NewBatchTrainer(pipeline, alerts, products, log)

	results, err := batch.TrainAll(context.Background())
	require.NoError(t, err)

	// Only products with actual history yield results
	require.Len(t, results, 2)
	got := map[int64]bool{}
	for _, r := range results {
		assert.Equal(t, contracts.OutcomeGenerated, r.Outcome)
		got[r.ProductID] = true
	}
	assert.True(t, got[1])
	assert.True(t, got[3])

	// Alerts are refreshed only after a successful forecast
	assert.ElementsMatch(t, []int64{1, 3}, alerts.calls)
}

func TestBatchTrainer_FailureDoesNotAbortBatch(t *testing.T) {
	log := zerolog.Nop()

	products := &fakeProducts{products: map[int64]contracts.Product{
		1: {ID: 1},
		2: {ID: 2},
	}}
	orders := &perProductOrders{perDay: map[int64]int{1: 10, 2: 10}}

	// Every forecast replace fails: batch must finish with zero results
	store := &fakeForecasts{replaceErr: assert.AnError}

	pipeline := NewPipeline(
		history.NewAggregator(orders, log),
		features.NewEngineer(log),
		mlmodel.NewTrainer(log),
		NewProjector(log),
		products, store, nil, NewKeyLock(),
		20, 7,
		log,
	)

	batch := NewBatchTrainer(pipeline, &countingAlerts{}, products, log)

	results, err := batch.TrainAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBatchTrainer_CancelledContext(t *testing.T) {
	log := zerolog.Nop()

	products := &fakeProducts{products: map[int64]contracts.Product{1: {ID: 1}}}
	orders := &perProductOrders{perDay: map[int64]int{1: 5}}

	pipeline := NewPipeline(
		history.NewAggregator(orders, log),
		features.NewEngineer(log),
		mlmodel.NewTrainer(log),
		NewProjector(log),
		products, &fakeForecasts{}, nil, NewKeyLock(),
		20, 7,
		log,
	)

	batch := NewBatchTrainer(pipeline, nil, products, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := batch.TrainAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
