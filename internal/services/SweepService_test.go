package services

import (
	"context"
	"errors"
	"tabsleep/internal/providers"
	"tabsleep/internal/structures"
	"tabsleep/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweepFixture struct {
	clock   *fakeClock
	tracker *ActivityTracker
	config  ConfigServiceInterface
	browser *testutil.MockBrowser
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
	sweeper *SweepService
}

func newSweepFixture(t *testing.T, tabs ...structures.Tab) *sweepFixture {
	conf := testConfig()
	clock := newFakeClock()
	f := &sweepFixture{
		clock:   clock,
		tracker: NewActivityTrackerWithClock(clock.Now),
		config:  NewConfigService(conf, testutil.NewMockStore(), &testutil.MockLogger{}),
		browser: &testutil.MockBrowser{Tabs: tabs},
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
	}
	require.NoError(t, f.config.Load(context.Background()))
	f.sweeper = NewSweepService(conf, f.tracker, f.config, f.browser, f.browser, f.logger, f.metrics).(*SweepService)
	f.sweeper.now = clock.Now
	return f
}

// idleFor records activity for each tab and moves the clock forward by d.
func (f *sweepFixture) idleFor(d time.Duration, ids ...int) {
	for _, id := range ids {
		f.tracker.RecordActivity(id)
	}
	f.clock.Advance(d)
}

func TestSweep_NeverDiscardsActiveOrPinned(t *testing.T) {
	f := newSweepFixture(t,
		structures.Tab{ID: 1, URL: "https://a.com", Active: true},
		structures.Tab{ID: 2, URL: "https://b.com", Pinned: true},
		structures.Tab{ID: 3, URL: "https://c.com", Active: true, Pinned: true},
	)
	f.idleFor(24*time.Hour, 1, 2, 3)

	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Empty(t, f.browser.DiscardedIDs())
	assert.Equal(t, 2, report.Skipped[SkipActive])
	assert.Equal(t, 1, report.Skipped[SkipPinned])
}

func TestSweep_WhitelistedHostSurvivesLongIdle(t *testing.T) {
	f := newSweepFixture(t,
		structures.Tab{ID: 1, URL: "https://a.com/x", Title: "A"},
		structures.Tab{ID: 2, URL: "https://c.com", Title: "C"},
	)
	require.NoError(t, f.config.SaveWhitelist(context.Background(), []string{"a.com", "b.com"}))
	f.idleFor(10*f.config.InactivityTimeout(), 1, 2)

	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{2}, f.browser.DiscardedIDs())
	assert.Equal(t, 1, report.Skipped[SkipWhitelisted])
	assert.Equal(t, 1, report.Discarded)
	assert.Equal(t, 1, f.metrics.Discarded[providers.SourceSweep])
}

func TestSweep_BadPathEscapeStillMatchesHost(t *testing.T) {
	f := newSweepFixture(t,
		structures.Tab{ID: 1, URL: "https://a.com/%zz"},
		structures.Tab{ID: 2, URL: "http://[::1]:8080/%zz"},
		structures.Tab{ID: 3, URL: "https://b.com/%zz"},
	)
	require.NoError(t, f.config.SaveWhitelist(context.Background(), []string{"[::1]"}))
	f.idleFor(time.Hour, 1, 2, 3)

	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, f.browser.DiscardedIDs())
	assert.Equal(t, 1, report.Skipped[SkipWhitelisted])
	assert.Zero(t, report.Skipped[SkipInvalidURL])
}

func TestSweep_IdleAtOrBelowTimeoutIsKept(t *testing.T) {
	f := newSweepFixture(t,
		structures.Tab{ID: 1, URL: "https://a.com"},
		structures.Tab{ID: 2, URL: "https://b.com"},
	)
	f.tracker.RecordActivity(1)
	f.clock.Advance(time.Minute)
	f.tracker.RecordActivity(2)
	f.clock.Advance(4 * time.Minute)

	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Empty(t, f.browser.DiscardedIDs())
	assert.Equal(t, 2, report.Skipped[SkipRecent])

	f.clock.Advance(time.Millisecond)
	_, err = f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, f.browser.DiscardedIDs())
}

func TestSweep_UntrackedTabIsTreatedAsJustActive(t *testing.T) {
	f := newSweepFixture(t, structures.Tab{ID: 1, URL: "https://a.com"})
	f.clock.Advance(48 * time.Hour)

	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Empty(t, f.browser.DiscardedIDs())
	assert.Equal(t, 1, report.Skipped[SkipRecent])
}

func TestSweep_ClosedTabBehavesAsJustActive(t *testing.T) {
	f := newSweepFixture(t, structures.Tab{ID: 1, URL: "https://a.com"})
	f.idleFor(time.Hour, 1)
	f.tracker.OnRemoved(1)

	_, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.browser.DiscardedIDs())
}

func TestSweep_InvalidURLIsSkippedWithWarning(t *testing.T) {
	f := newSweepFixture(t,
		structures.Tab{ID: 1},
		structures.Tab{ID: 2, URL: "not a url"},
		structures.Tab{ID: 3, URL: "https://ok.com"},
	)
	f.idleFor(time.Hour, 1, 2, 3)

	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Skipped[SkipInvalidURL])
	assert.Equal(t, []int{3}, f.browser.DiscardedIDs())
	assert.Equal(t, 2, f.logger.Count("warn"))
	assert.Zero(t, f.logger.Count("error"))
}

func TestSweep_DiscardFailureDoesNotStopSweep(t *testing.T) {
	f := newSweepFixture(t,
		structures.Tab{ID: 1, URL: "https://a.com"},
		structures.Tab{ID: 2, URL: "https://b.com"},
		structures.Tab{ID: 3, URL: "https://c.com", Discarded: true},
	)
	f.browser.DiscardErrors = map[int]error{1: errors.New("tab is protected")}
	f.idleFor(time.Hour, 1, 2, 3)

	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{2}, f.browser.DiscardedIDs())
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 1, report.Discarded)
	assert.Equal(t, 2, f.metrics.DiscardFailures[providers.SourceSweep])
}

func TestSweep_NotifiesWithTabTitle(t *testing.T) {
	f := newSweepFixture(t, structures.Tab{ID: 1, URL: "https://a.com", Title: "Inbox"})
	f.idleFor(time.Hour, 1)

	_, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)

	require.Len(t, f.browser.Notifications, 1)
	n := f.browser.Notifications[0]
	assert.Equal(t, "basic", n.Type)
	assert.Equal(t, "icon128.png", n.IconURL)
	assert.Equal(t, NotificationTitle, n.Title)
	assert.Equal(t, `Tab "Inbox" has been suspended.`, n.Message)
}

func TestSweep_NotificationFailureIsOnlyAWarning(t *testing.T) {
	f := newSweepFixture(t,
		structures.Tab{ID: 1, URL: "https://a.com"},
		structures.Tab{ID: 2, URL: "https://b.com"},
	)
	f.browser.NotifyErr = errors.New("notifications blocked")
	f.idleFor(time.Hour, 1, 2)

	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Discarded)
	assert.Equal(t, 2, f.logger.Count("warn"))
}

func TestSweep_NotificationsDisabled(t *testing.T) {
	f := newSweepFixture(t, structures.Tab{ID: 1, URL: "https://a.com"})
	f.sweeper.conf.Browser.Notifications = false
	f.idleFor(time.Hour, 1)

	_, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Len(t, f.browser.DiscardedIDs(), 1)
	assert.Empty(t, f.browser.Notifications)
}

func TestSweep_QueryFailure(t *testing.T) {
	f := newSweepFixture(t)
	f.browser.QueryErr = errors.New("bridge down")

	_, err := f.sweeper.Sweep(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, f.metrics.Sweeps)
}

func TestSweep_UsesLatestSavedTimeout(t *testing.T) {
	f := newSweepFixture(t, structures.Tab{ID: 1, URL: "https://a.com"})
	f.idleFor(3*time.Minute, 1)

	_, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.browser.DiscardedIDs())

	require.NoError(t, f.config.SaveTimeout(context.Background(), 2))
	_, err = f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, f.browser.DiscardedIDs())
}

func TestSweep_DoesNotTouchPanelCounters(t *testing.T) {
	store := testutil.NewMockStore()
	conf := testConfig()
	clock := newFakeClock()
	tracker := NewActivityTrackerWithClock(clock.Now)
	config := NewConfigService(conf, store, &testutil.MockLogger{})
	browser := &testutil.MockBrowser{Tabs: []structures.Tab{{ID: 1, URL: "https://a.com"}}}
	sweeper := NewSweepService(conf, tracker, config, browser, browser, &testutil.MockLogger{}, &testutil.MockMetrics{}).(*SweepService)
	sweeper.now = clock.Now

	tracker.RecordActivity(1)
	clock.Advance(time.Hour)

	_, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, browser.DiscardedIDs())
	assert.Zero(t, store.SetCalls)
}
