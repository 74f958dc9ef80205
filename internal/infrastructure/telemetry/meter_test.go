package telemetry

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Darkingtail/mall4r/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	for _, cfg := range []config.TelemetryConfig{
		{Enabled: false, MetricsEnabled: true},
		{Enabled: true, MetricsEnabled: false},
	} {
		mp, err := NewMeterProvider(context.Background(), cfg, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, mp.IsEnabled())
		assert.NotNil(t, mp.Meter("test"))
		assert.NoError(t, mp.Shutdown(context.Background()))
	}
}

func TestRegisterDBPoolMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	before := otel.GetMeterProvider()
	mp := newMeterProvider(zap.NewNop(), reader, nil)
	assert.True(t, before == otel.GetMeterProvider(), "a reader-backed provider stays local")
	defer func() { _ = mp.Shutdown(context.Background()) }()
	require.True(t, mp.IsEnabled())

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(7)

	require.NoError(t, RegisterDBPoolMetrics(mp.Meter("mall4r/db"), sqlDB))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != "mall4r/db" {
			continue
		}
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}
	require.Contains(t, byName, "db_pool_connections")
	require.Contains(t, byName, "db_pool_wait_total")

	maxOpen, ok := byName["db_pool_connections_max"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, maxOpen.DataPoints, 1)
	assert.Equal(t, int64(7), maxOpen.DataPoints[0].Value)

	conns, ok := byName["db_pool_connections"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Len(t, conns.DataPoints, 2, "idle and in_use")
}
