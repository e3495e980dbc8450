package providers

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

type MemoryInfoProviderInterface interface {
	GetInfo(ctx context.Context) (capacity uint64, available uint64, err error)
}

type MemoryInfoProvider struct{}

func (p *MemoryInfoProvider) GetInfo(ctx context.Context) (uint64, uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to read virtual memory: %w", err)
	}
	return vm.Total, vm.Available, nil
}

func NewMemoryInfoProvider() MemoryInfoProviderInterface {
	return &MemoryInfoProvider{}
}
