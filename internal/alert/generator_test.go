package alert

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/restock/internal/contracts"
)

type fakeProducts struct {
	product *contracts.Product
}

func (f *fakeProducts) Get(ctx context.Context, id int64) (*contracts.Product, error) {
	if f.product == nil {
		return nil, contracts.ErrProductNotFound
	}
	return f.product, nil
}

func (f *fakeProducts) List(ctx context.Context) ([]contracts.Product, error) {
	if f.product == nil {
		return nil, nil
	}
	return []contracts.Product{*f.product}, nil
}

type fakeForecasts struct {
	points []contracts.ForecastPoint
}

func (f *fakeForecasts) ReplaceForProduct(ctx context.Context, productID int64, points []contracts.ForecastPoint) error {
	f.points = points
	return nil
}

func (f *fakeForecasts) ListForProduct(ctx context.Context, productID int64, limit int) ([]contracts.ForecastPoint, error) {
	points := f.points
	if limit > 0 && limit < len(points) {
		points = points[:limit]
	}
	return points, nil
}

type fakeAlerts struct {
	replaced *contracts.StockAlert
	retired  int
}

func (f *fakeAlerts) ReplaceActive(ctx context.Context, alert *contracts.StockAlert) error {
	f.replaced = alert
	return nil
}

func (f *fakeAlerts) RetireActive(ctx context.Context, productID int64) error {
	f.retired++
	return nil
}

func (f *fakeAlerts) ListActive(ctx context.Context) ([]contracts.StockAlert, error) {
	if f.replaced == nil {
		return nil, nil
	}
	return []contracts.StockAlert{*f.replaced}, nil
}

func (f *fakeAlerts) Dismiss(ctx context.Context, alertID int64) error {
	return contracts.ErrAlertNotFound
}

type fakeNotifier struct {
	notified []*contracts.StockAlert
}

func (f *fakeNotifier) Notify(ctx context.Context, alert *contracts.StockAlert) error {
	f.notified = append(f.notified, alert)
	return nil
}

// constantForecast builds 30 days of constant predicted demand
func constantForecast(perDay float64) []contracts.ForecastPoint {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	points := make([]contracts.ForecastPoint, 30)
	for i := range points {
		points[i] = contracts.ForecastPoint{
			ProductID:       1,
			ForecastDate:    start.AddDate(0, 0, i),
			PredictedDemand: perDay,
		}
	}
	return points
}

func newTestGenerator(stock int, points []contracts.ForecastPoint, notifier Notifier) (*Generator, *fakeAlerts) {
	alerts := &fakeAlerts{}
	gen := NewGenerator(
		&fakeProducts{product: &contracts.Product{ID: 1, Name: "Widget", StockQuantity: stock}},
		&fakeForecasts{points: points},
		alerts,
		notifier,
		zerolog.Nop(),
	)
	return gen, alerts
}

func TestGenerator_CriticalAlert(t *testing.T) {
	notifier := &fakeNotifier{}

	// 10/day demand, 50 in stock: 5 days until stockout
	gen, alerts := newTestGenerator(50, constantForecast(10), notifier)

	alert, err := gen.Generate(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, alert)

	assert.Equal(t, contracts.AlertCritical, alert.AlertType)
	assert.InDelta(t, 5.0, alert.DaysUntilStockout, 1e-9)
	assert.Equal(t, 300, alert.RecommendedOrderQty) // 30-day demand
	assert.Equal(t, contracts.AlertActive, alert.Status)
	assert.Contains(t, alert.Message, "🚨 CRITICAL")
	assert.Contains(t, alert.Message, "Widget")

	// Critical alerts go out through the notifier
	require.Len(t, notifier.notified, 1)
	assert.Same(t, alert, notifier.notified[0])
	assert.Same(t, alert, alerts.replaced)
}

func TestGenerator_StrictBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		stock int
		want  contracts.AlertType
	}{
		{"just under 7 days", 69, contracts.AlertCritical},
		{"exactly 7 days", 70, contracts.AlertWarning},
		{"just under 14 days", 139, contracts.AlertWarning},
		{"exactly 14 days", 140, contracts.AlertInfo},
		{"just under 30 days", 299, contracts.AlertInfo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen, _ := newTestGenerator(tc.stock, constantForecast(10), nil)

			alert, err := gen.Generate(context.Background(), 1)
			require.NoError(t, err)
			require.NotNil(t, alert)
			assert.Equal(t, tc.want, alert.AlertType)
		})
	}
}

func TestGenerator_SufficientStockRetiresAlert(t *testing.T) {
	// Exactly 30 days of stock: no alert, previous one retired
	gen, alerts := newTestGenerator(300, constantForecast(10), nil)

	alert, err := gen.Generate(context.Background(), 1)
	require.NoError(t, err)

	assert.Nil(t, alert)
	assert.Equal(t, 1, alerts.retired)
	assert.Nil(t, alerts.replaced)
}

func TestGenerator_ZeroDemandSentinel(t *testing.T) {
	// No predicted demand: stockout is effectively never (sentinel), no alert
	gen, alerts := newTestGenerator(0, constantForecast(0), nil)

	alert, err := gen.Generate(context.Background(), 1)
	require.NoError(t, err)

	assert.Nil(t, alert)
	assert.Equal(t, 1, alerts.retired)
}

func TestGenerator_NoForecastsDoesNothing(t *testing.T) {
	gen, alerts := newTestGenerator(10, nil, nil)

	alert, err := gen.Generate(context.Background(), 1)
	require.NoError(t, err)

	// No evidence to judge on: no alert written, none retired
	assert.Nil(t, alert)
	assert.Equal(t, 0, alerts.retired)
	assert.Nil(t, alerts.replaced)
}

func TestGenerator_ZeroStockIsCritical(t *testing.T) {
	gen, _ := newTestGenerator(0, constantForecast(10), nil)

	alert, err := gen.Generate(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, alert)

	assert.Equal(t, contracts.AlertCritical, alert.AlertType)
	assert.Equal(t, 0.0, alert.DaysUntilStockout)
}

func TestGenerator_WarningSkipsNotifier(t *testing.T) {
	notifier := &fakeNotifier{}
	gen, _ := newTestGenerator(100, constantForecast(10), notifier)

	alert, err := gen.Generate(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, alert)

	assert.Equal(t, contracts.AlertWarning, alert.AlertType)
	assert.Empty(t, notifier.notified)
}

func TestGenerator_UnknownProduct(t *testing.T) {
	gen := NewGenerator(&fakeProducts{}, &fakeForecasts{}, &fakeAlerts{}, nil, zerolog.Nop())

	_, err := gen.Generate(context.Background(), 99)
	assert.ErrorIs(t, err, contracts.ErrProductNotFound)
}

func TestGenerator_MessageFormats(t *testing.T) {
	// warning message
	gen, _ := newTestGenerator(100, constantForecast(10), nil)
	alert, err := gen.Generate(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, alert.Message, "⚠️ WARNING")

	// info message
	gen, _ = newTestGenerator(200, constantForecast(10), nil)
	alert, err = gen.Generate(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, alert.Message, "ℹ️ INFO")
	assert.Contains(t, alert.Message, "20 days")
}
