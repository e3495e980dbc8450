package services

import (
	"context"
	"errors"
	"tabsleep/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryService_ReportConvertsToMB(t *testing.T) {
	info := &testutil.MockMemoryInfo{Capacity: 16 * bytesPerMB, Available: 3*bytesPerMB + bytesPerMB/2}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	svc := NewMemoryService(info, logger, metrics)

	got, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 16.0, got.CapacityMB)
	assert.Equal(t, 3.5, got.AvailableMB)
	assert.Equal(t, 16.0, metrics.CapacityMB)
	assert.Equal(t, 3.5, metrics.AvailableMB)

	require.Len(t, logger.Logs, 2)
	assert.Equal(t, "Total Memory: %.2f MB", logger.Logs[0].Format)
	assert.Equal(t, "Available Memory: %.2f MB", logger.Logs[1].Format)
}

func TestMemoryService_ProviderError(t *testing.T) {
	info := &testutil.MockMemoryInfo{Err: errors.New("no /proc")}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	svc := NewMemoryService(info, logger, metrics)

	_, err := svc.Report(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no /proc")
	assert.Empty(t, logger.Logs)
	assert.Zero(t, metrics.CapacityMB)
}
