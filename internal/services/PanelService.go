package services

import (
	"context"
	"fmt"
	"tabsleep/internal/browser"
	"tabsleep/internal/providers"
	"tabsleep/internal/storage"
	"tabsleep/internal/storage/interfaces"
	"tabsleep/internal/structures"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultMemoryPerTabMB is the flat amount credited for each tab suspended
// from the panel. No real accounting is done.
const DefaultMemoryPerTabMB = 50

type PanelServiceInterface interface {
	SuspendNow(ctx context.Context) (structures.SuspendResult, error)
	Resume(ctx context.Context) (structures.ResumeResult, error)
	Stats(ctx context.Context) (structures.Stats, error)
	Settings(ctx context.Context) (structures.Settings, error)
}

// PanelService carries out the manual actions of the control panel. Unlike
// the sweeper it ignores idle time and keeps the suspended-tab counters.
type PanelService struct {
	store          interfaces.StoreInterface
	tabs           browser.TabServiceInterface
	logger         providers.Logger
	metrics        providers.MetricsProviderInterface
	memoryPerTab   float64
	concurrency    int
	defaultTimeout time.Duration
}

func NewPanelService(conf *structures.Config, store interfaces.StoreInterface, tabs browser.TabServiceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) PanelServiceInterface {
	memoryPerTab := conf.Panel.MemoryPerTabMB
	if memoryPerTab <= 0 {
		memoryPerTab = DefaultMemoryPerTabMB
	}
	concurrency := conf.Panel.DiscardConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &PanelService{
		store:          store,
		tabs:           tabs,
		logger:         logger,
		metrics:        metrics,
		memoryPerTab:   memoryPerTab,
		concurrency:    concurrency,
		defaultTimeout: conf.Sweeper.DefaultTimeout,
	}
}

func (ps *PanelService) SuspendNow(ctx context.Context) (structures.SuspendResult, error) {
	var result structures.SuspendResult

	values, err := ps.store.Get(ctx, storage.KeyWhitelist)
	if err != nil {
		return result, fmt.Errorf("suspend now: %w", err)
	}
	whitelist := []string{}
	if _, err := storage.Decode(values, storage.KeyWhitelist, &whitelist); err != nil {
		ps.logger.Warnf(providers.TypeApp, "Ignoring stored whitelist: %s", err)
	}

	tabs, err := ps.tabs.Query(ctx, structures.TabQuery{})
	if err != nil {
		return result, fmt.Errorf("suspend now: %w", err)
	}

	type candidate struct {
		tab    structures.Tab
		domain string
	}
	candidates := make([]candidate, 0, len(tabs))
	for _, tab := range tabs {
		if tab.Active || tab.Pinned || tab.URL == "" {
			continue
		}
		domain, err := tabHostname(tab.URL)
		if err != nil {
			ps.logger.Warnf(providers.TypeApp, "Skipping tab %d: Invalid URL.", tab.ID)
			continue
		}
		if containsHost(whitelist, domain) {
			continue
		}
		candidates = append(candidates, candidate{tab: tab, domain: domain})
	}

	outcomes := make([]error, len(candidates))
	var g errgroup.Group
	g.SetLimit(ps.concurrency)
	for i, c := range candidates {
		g.Go(func() error {
			outcomes[i] = ps.tabs.Discard(ctx, c.tab.ID)
			return nil
		})
	}
	_ = g.Wait()

	records := make([]structures.SuspendedTabRecord, 0, len(candidates))
	for i, c := range candidates {
		if err := outcomes[i]; err != nil {
			result.Failed++
			ps.metrics.IncDiscardFailures(providers.SourcePanel)
			ps.logger.Warnf(providers.TypeApp, "Cannot discard tab with id: %d. Reason: %s", c.tab.ID, err)
			continue
		}
		ps.metrics.IncDiscarded(providers.SourcePanel)
		records = append(records, structures.SuspendedTabRecord{ID: c.tab.ID, Domain: c.domain})
	}

	memorySaved := float64(len(records)) * ps.memoryPerTab
	err = ps.store.Set(ctx, map[string]any{
		storage.KeySuspendedTabs: records,
		storage.KeyMemorySaved:   memorySaved,
	})
	if err != nil {
		return result, fmt.Errorf("suspend now: %w", err)
	}

	result.Suspended = len(records)
	result.Stats = structures.Stats{
		SuspendedTabs: records,
		Count:         len(records),
		MemorySaved:   memorySaved,
	}
	ps.logger.Infof(providers.TypeApp, "Suspended %d tabs from the panel (%d failed)", result.Suspended, result.Failed)
	return result, nil
}

// Resume activates every discarded tab one after another, so the last one
// ends up in front. Counters are cleared whatever the outcome per tab.
func (ps *PanelService) Resume(ctx context.Context) (structures.ResumeResult, error) {
	var result structures.ResumeResult

	tabs, err := ps.tabs.Query(ctx, structures.TabQuery{DiscardedOnly: true})
	if err != nil {
		ps.logger.Warnf(providers.TypeApp, "Cannot list discarded tabs: %s", err)
	}
	for _, tab := range tabs {
		if err := ps.tabs.Update(ctx, tab.ID, structures.TabUpdate{Active: true}); err != nil {
			result.Failed++
			ps.metrics.IncDiscardFailures(providers.SourceResume)
			ps.logger.Warnf(providers.TypeApp, "Cannot resume tab %d. Reason: %s", tab.ID, err)
			continue
		}
		result.Resumed++
	}

	if rmErr := ps.store.Remove(ctx, storage.KeySuspendedTabs, storage.KeyMemorySaved); rmErr != nil {
		return result, fmt.Errorf("resume: %w", rmErr)
	}
	if err != nil {
		return result, fmt.Errorf("resume: %w", err)
	}
	return result, nil
}

func (ps *PanelService) Stats(ctx context.Context) (structures.Stats, error) {
	stats := structures.Stats{SuspendedTabs: []structures.SuspendedTabRecord{}}

	values, err := ps.store.Get(ctx, storage.KeySuspendedTabs, storage.KeyMemorySaved)
	if err != nil {
		return stats, fmt.Errorf("stats: %w", err)
	}
	if _, err := storage.Decode(values, storage.KeySuspendedTabs, &stats.SuspendedTabs); err != nil {
		return stats, err
	}
	if stats.SuspendedTabs == nil {
		stats.SuspendedTabs = []structures.SuspendedTabRecord{}
	}
	if _, err := storage.Decode(values, storage.KeyMemorySaved, &stats.MemorySaved); err != nil {
		return stats, err
	}
	stats.Count = len(stats.SuspendedTabs)
	return stats, nil
}

// Settings returns what the panel restores on open. The whitelist is not
// part of it: the panel field is write-only.
func (ps *PanelService) Settings(ctx context.Context) (structures.Settings, error) {
	var settings structures.Settings

	values, err := ps.store.Get(ctx, storage.KeyInactivityTimeout, storage.KeyDarkMode)
	if err != nil {
		return settings, fmt.Errorf("settings: %w", err)
	}
	if _, err := storage.Decode(values, storage.KeyInactivityTimeout, &settings.InactivityTimeout); err != nil {
		ps.logger.Warnf(providers.TypeApp, "Ignoring stored inactivity timeout: %s", err)
		settings.InactivityTimeout = 0
	}
	if settings.InactivityTimeout <= 0 {
		settings.InactivityTimeout = ps.defaultTimeout.Milliseconds()
	}
	if _, err := storage.Decode(values, storage.KeyDarkMode, &settings.DarkMode); err != nil {
		ps.logger.Warnf(providers.TypeApp, "Ignoring stored dark mode flag: %s", err)
		settings.DarkMode = false
	}
	return settings, nil
}
