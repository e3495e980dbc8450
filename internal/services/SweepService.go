package services

import (
	"context"
	"fmt"
	"tabsleep/internal/browser"
	"tabsleep/internal/providers"
	"tabsleep/internal/structures"
	"time"
)

// Reasons a sweep leaves a tab alone.
const (
	SkipActive      = "active"
	SkipPinned      = "pinned"
	SkipInvalidURL  = "invalid_url"
	SkipRecent      = "recent"
	SkipWhitelisted = "whitelisted"
)

const NotificationTitle = "Tab Suspended"

type SweepReport struct {
	Examined  int
	Discarded int
	Failed    int
	Skipped   map[string]int
}

type SweepServiceInterface interface {
	Sweep(ctx context.Context) (SweepReport, error)
}

type SweepService struct {
	conf     *structures.Config
	tracker  ActivityTrackerInterface
	config   ConfigServiceInterface
	tabs     browser.TabServiceInterface
	notifier browser.NotifierInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	now      func() time.Time
}

func NewSweepService(conf *structures.Config, tracker ActivityTrackerInterface, config ConfigServiceInterface, tabs browser.TabServiceInterface, notifier browser.NotifierInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) SweepServiceInterface {
	return &SweepService{
		conf:     conf,
		tracker:  tracker,
		config:   config,
		tabs:     tabs,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Sweep discards every tab that is not active, not pinned, idle for longer
// than the inactivity timeout and not on a whitelisted host. A failure on
// one tab never stops the others.
func (ss *SweepService) Sweep(ctx context.Context) (SweepReport, error) {
	report := SweepReport{Skipped: make(map[string]int)}
	ss.metrics.IncSweeps()

	tabs, err := ss.tabs.Query(ctx, structures.TabQuery{})
	if err != nil {
		return report, fmt.Errorf("sweep: %w", err)
	}

	now := ss.now()
	timeout := ss.config.InactivityTimeout()

	for _, tab := range tabs {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.Examined++

		reason := ss.skipReason(tab, now, timeout)
		if reason != "" {
			report.Skipped[reason]++
			ss.metrics.IncSkipped(reason)
			continue
		}

		if err := ss.tabs.Discard(ctx, tab.ID); err != nil {
			report.Failed++
			ss.metrics.IncDiscardFailures(providers.SourceSweep)
			ss.logger.Warnf(providers.TypeSweep, "Cannot discard tab %d. Reason: %s", tab.ID, err)
			continue
		}

		report.Discarded++
		ss.metrics.IncDiscarded(providers.SourceSweep)
		ss.logger.Infof(providers.TypeSweep, "Tab %d suspended.", tab.ID)
		ss.notify(ctx, tab)
	}

	return report, nil
}

func (ss *SweepService) skipReason(tab structures.Tab, now time.Time, timeout time.Duration) string {
	if tab.Active {
		return SkipActive
	}
	if tab.Pinned {
		return SkipPinned
	}

	hostname, err := tabHostname(tab.URL)
	if err != nil {
		ss.logger.Warnf(providers.TypeSweep, "Skipping tab %d: Invalid URL.", tab.ID)
		return SkipInvalidURL
	}

	idle := now.Sub(ss.tracker.GetLastActive(tab.ID))
	if idle <= timeout {
		return SkipRecent
	}

	if ss.config.IsWhitelisted(hostname) {
		return SkipWhitelisted
	}
	return ""
}

func (ss *SweepService) notify(ctx context.Context, tab structures.Tab) {
	if !ss.conf.Browser.Notifications {
		return
	}
	err := ss.notifier.Notify(ctx, structures.Notification{
		Type:    "basic",
		IconURL: ss.conf.Browser.NotificationIcon,
		Title:   NotificationTitle,
		Message: fmt.Sprintf("Tab \"%s\" has been suspended.", tab.Title),
	})
	if err != nil {
		ss.logger.Warnf(providers.TypeSweep, "Cannot notify about tab %d: %s", tab.ID, err)
	}
}
