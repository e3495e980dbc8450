package interfaces

import "context"

type SchedulerInterface interface {
	Init()
	Stop()
	Restore(ctx context.Context) error
	RunSweep(ctx context.Context)
	RunReport(ctx context.Context)
}
