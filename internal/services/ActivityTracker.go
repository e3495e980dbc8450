package services

import (
	"sync"
	"tabsleep/internal/structures"
	"time"
)

const TabStatusComplete = "complete"

type ActivityTrackerInterface interface {
	RecordActivity(tabID int)
	GetLastActive(tabID int) time.Time
	Remove(tabID int)
	Count() int
}

// TabEventHandlerInterface receives tab events forwarded by the browser shim.
type TabEventHandlerInterface interface {
	OnUpdated(event structures.TabUpdatedEvent)
	OnActivated(tabID int)
	OnRemoved(tabID int)
}

// ActivityTracker maps tab ids to the last time they were seen active.
// State lives for the lifetime of the process only.
type ActivityTracker struct {
	mu         sync.RWMutex
	lastActive map[int]time.Time
	now        func() time.Time
}

func NewActivityTracker() *ActivityTracker {
	return NewActivityTrackerWithClock(time.Now)
}

func NewActivityTrackerWithClock(now func() time.Time) *ActivityTracker {
	return &ActivityTracker{
		lastActive: make(map[int]time.Time),
		now:        now,
	}
}

func (at *ActivityTracker) RecordActivity(tabID int) {
	at.mu.Lock()
	defer at.mu.Unlock()
	at.lastActive[tabID] = at.now()
}

// GetLastActive falls back to now for unseen tabs so they are not suspended
// on the first sweep after a restart.
func (at *ActivityTracker) GetLastActive(tabID int) time.Time {
	at.mu.RLock()
	ts, ok := at.lastActive[tabID]
	at.mu.RUnlock()
	if !ok {
		return at.now()
	}
	return ts
}

func (at *ActivityTracker) Remove(tabID int) {
	at.mu.Lock()
	defer at.mu.Unlock()
	delete(at.lastActive, tabID)
}

func (at *ActivityTracker) Count() int {
	at.mu.RLock()
	defer at.mu.RUnlock()
	return len(at.lastActive)
}

func (at *ActivityTracker) OnUpdated(event structures.TabUpdatedEvent) {
	if event.ChangeInfo.Status == TabStatusComplete && event.Tab.URL != "" {
		at.RecordActivity(event.TabID)
	}
}

func (at *ActivityTracker) OnActivated(tabID int) {
	at.RecordActivity(tabID)
}

func (at *ActivityTracker) OnRemoved(tabID int) {
	at.Remove(tabID)
}
