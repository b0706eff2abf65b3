package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/collector"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

func TestWritePrices(t *testing.T) {
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	s := &model.PriceSeries{Symbol: "TSLA", Bars: collector.GenerateMockBars(200, 3, end)}
	path := filepath.Join(t.TempDir(), "tesla_prices.csv")

	require.NoError(t, WritePrices(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,open,high,low,close,volume", lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "2024-06-28,"))
}

func TestWriteRevenue(t *testing.T) {
	s := &model.RevenueSeries{Symbol: "TSLA", Points: collector.GenerateMockRevenue(1000, 2, 2023)}
	path := filepath.Join(t.TempDir(), "tesla_revenue.csv")

	require.NoError(t, WriteRevenue(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,revenue,currency\n2022-12-31,1000,USD\n2023-12-31,1100,USD\n", string(data))
}
