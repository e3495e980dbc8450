package scheduler

import (
	"context"
	"sync"
	"tabsleep/internal/providers"
	"tabsleep/internal/scheduler/interfaces"
	"tabsleep/internal/services"
	"tabsleep/internal/structures"
	"time"

	"github.com/roylee0704/gron"
)

const (
	defaultSweepInterval  = time.Minute
	defaultReportInterval = 5 * time.Minute
)

// Scheduler owns the two periodic alarms of the daemon: the inactivity
// sweep and the memory report.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	sweeper  services.SweepServiceInterface
	memory   services.MemoryServiceInterface
	settings services.ConfigServiceInterface
	cron     *gron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	s.ctx, s.cancel = context.WithCancel(context.Background())

	sweepInterval := s.config.Sweeper.Interval
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}
	reportInterval := s.config.Memory.Interval
	if reportInterval <= 0 {
		reportInterval = defaultReportInterval
	}

	s.cron.AddFunc(gron.Every(sweepInterval), func() {
		s.RunSweep(s.ctx)
	})
	s.cron.AddFunc(gron.Every(reportInterval), func() {
		s.RunReport(s.ctx)
	})

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started: sweep every %s, memory report every %s", sweepInterval, reportInterval)
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads the persisted configuration before the first sweep.
func (s *Scheduler) Restore(ctx context.Context) error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	return s.settings.Load(ctx)
}

// RunSweep performs one sweep. A tick that fires while the previous sweep
// is still running waits for it.
func (s *Scheduler) RunSweep(ctx context.Context) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	report, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.logger.Errorf(providers.TypeSweep, "Sweep failed: %s", err)
		return
	}
	s.logger.Debugf(providers.TypeSweep, "Sweep done: examined %d, discarded %d, failed %d, skipped %v",
		report.Examined, report.Discarded, report.Failed, report.Skipped)
}

func (s *Scheduler) RunReport(ctx context.Context) {
	if _, err := s.memory.Report(ctx); err != nil {
		s.logger.Errorf(providers.TypeApp, "Cannot read system memory: %s", err)
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, sweeper services.SweepServiceInterface, memory services.MemoryServiceInterface, settings services.ConfigServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		sweeper:  sweeper,
		memory:   memory,
		settings: settings,
	}
}
