package app

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		PlatformBaseURL: "http://localhost:8080",
		ChannelKeys:     []string{"online-shop"},
		PageSize:        100,
		SkipLimit:       1,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewApp_MetricsDisabledByDefault(t *testing.T) {
	a := NewApp(testConfig(), testLogger())

	require.NotNil(t, a.seeder)
	assert.Nil(t, a.metricsServer)
}

func TestNewApp_MetricsListenerConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsPort = 9102

	a := NewApp(cfg, testLogger())

	require.NotNil(t, a.metricsServer)
	assert.Equal(t, ":9102", a.metricsServer.Addr)
}
