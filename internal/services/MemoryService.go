package services

import (
	"context"
	"fmt"
	"tabsleep/internal/providers"
	"tabsleep/internal/structures"
)

const bytesPerMB = 1024 * 1024

type MemoryServiceInterface interface {
	Report(ctx context.Context) (structures.MemoryInfo, error)
}

type MemoryService struct {
	info    providers.MemoryInfoProviderInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewMemoryService(info providers.MemoryInfoProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) MemoryServiceInterface {
	return &MemoryService{
		info:    info,
		logger:  logger,
		metrics: metrics,
	}
}

// Report reads system memory and logs capacity and availability in MB.
func (ms *MemoryService) Report(ctx context.Context) (structures.MemoryInfo, error) {
	capacity, available, err := ms.info.GetInfo(ctx)
	if err != nil {
		return structures.MemoryInfo{}, fmt.Errorf("memory report: %w", err)
	}

	info := structures.MemoryInfo{
		CapacityMB:  float64(capacity) / bytesPerMB,
		AvailableMB: float64(available) / bytesPerMB,
	}
	ms.metrics.SetMemory(info.CapacityMB, info.AvailableMB)
	ms.logger.Infof(providers.TypeApp, "Total Memory: %.2f MB", info.CapacityMB)
	ms.logger.Infof(providers.TypeApp, "Available Memory: %.2f MB", info.AvailableMB)
	return info, nil
}
