package testutil

import (
	"context"
	"errors"
	"sync"
	"tabsleep/internal/providers"
	"tabsleep/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu              sync.Mutex
	Sweeps          int
	Discarded       map[string]int
	DiscardFailures map[string]int
	Skipped         map[string]int
	CapacityMB      float64
	AvailableMB     float64
	Persisted       int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persisted++
}

func (m *MockMetrics) IncSweeps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sweeps++
}

func (m *MockMetrics) IncDiscarded(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Discarded == nil {
		m.Discarded = make(map[string]int)
	}
	m.Discarded[source]++
}

func (m *MockMetrics) IncDiscardFailures(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DiscardFailures == nil {
		m.DiscardFailures = make(map[string]int)
	}
	m.DiscardFailures[source]++
}

func (m *MockMetrics) IncSkipped(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Skipped == nil {
		m.Skipped = make(map[string]int)
	}
	m.Skipped[reason]++
}

func (m *MockMetrics) SetMemory(capacityMB, availableMB float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CapacityMB = capacityMB
	m.AvailableMB = availableMB
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// identity
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

var ErrStoreWrite = errors.New("store write failed")

// MockStore implements interfaces.StoreInterface in memory.
type MockStore struct {
	mu       sync.Mutex
	Data     map[string]json.RawMessage
	FailSet  bool
	SetCalls int
}

func NewMockStore() *MockStore {
	return &MockStore{Data: make(map[string]json.RawMessage)}
}

func (m *MockStore) Get(_ context.Context, keys ...string) (map[string]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := m.Data[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *MockStore) Set(_ context.Context, values map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.FailSet {
		return ErrStoreWrite
	}
	for k, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		m.Data[k] = raw
	}
	return nil
}

func (m *MockStore) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet {
		return ErrStoreWrite
	}
	for _, k := range keys {
		delete(m.Data, k)
	}
	return nil
}

// Put stores a raw JSON value, for seeding tests.
func (m *MockStore) Put(key, rawJSON string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = json.RawMessage(rawJSON)
}

// Raw returns the stored JSON for key, or "" when absent.
func (m *MockStore) Raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.Data[key])
}

// MockBrowser implements browser.TabServiceInterface and browser.NotifierInterface.
type MockBrowser struct {
	mu            sync.Mutex
	Tabs          []structures.Tab
	DiscardErrors map[int]error
	UpdateErrors  map[int]error
	NotifyErr     error
	QueryErr      error
	Discarded     []int
	Updated       map[int]structures.TabUpdate
	UpdateOrder   []int
	Notifications []structures.Notification
}

func (m *MockBrowser) Query(_ context.Context, query structures.TabQuery) ([]structures.Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	out := make([]structures.Tab, 0, len(m.Tabs))
	for _, tab := range m.Tabs {
		if query.DiscardedOnly && !tab.Discarded {
			continue
		}
		out = append(out, tab)
	}
	return out, nil
}

func (m *MockBrowser) Discard(_ context.Context, tabID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.DiscardErrors[tabID]; err != nil {
		return err
	}
	for i := range m.Tabs {
		if m.Tabs[i].ID == tabID {
			if m.Tabs[i].Discarded {
				return errors.New("tab already discarded")
			}
			m.Tabs[i].Discarded = true
		}
	}
	m.Discarded = append(m.Discarded, tabID)
	return nil
}

func (m *MockBrowser) Update(_ context.Context, tabID int, update structures.TabUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.UpdateErrors[tabID]; err != nil {
		return err
	}
	if m.Updated == nil {
		m.Updated = make(map[int]structures.TabUpdate)
	}
	m.Updated[tabID] = update
	m.UpdateOrder = append(m.UpdateOrder, tabID)
	for i := range m.Tabs {
		if m.Tabs[i].ID == tabID && update.Active {
			m.Tabs[i].Active = true
			m.Tabs[i].Discarded = false
		}
	}
	return nil
}

func (m *MockBrowser) Notify(_ context.Context, n structures.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NotifyErr != nil {
		return m.NotifyErr
	}
	m.Notifications = append(m.Notifications, n)
	return nil
}

// DiscardedIDs returns a copy of the discarded tab ids.
func (m *MockBrowser) DiscardedIDs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.Discarded...)
}

// MockMemoryInfo implements providers.MemoryInfoProviderInterface.
type MockMemoryInfo struct {
	Capacity  uint64
	Available uint64
	Err       error
	Calls     int
}

func (m *MockMemoryInfo) GetInfo(_ context.Context) (uint64, uint64, error) {
	m.Calls++
	return m.Capacity, m.Available, m.Err
}
