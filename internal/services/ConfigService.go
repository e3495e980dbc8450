package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"tabsleep/internal/providers"
	"tabsleep/internal/storage"
	"tabsleep/internal/storage/interfaces"
	"tabsleep/internal/structures"
	"time"
)

var ErrInvalidTimeout = errors.New("invalid inactivity timeout")

type ConfigServiceInterface interface {
	Load(ctx context.Context) error
	SaveWhitelist(ctx context.Context, whitelist []string) error
	SaveTimeout(ctx context.Context, minutes float64) error
	SaveDarkMode(ctx context.Context, enabled bool) error
	Whitelist() []string
	IsWhitelisted(hostname string) bool
	InactivityTimeout() time.Duration
	DarkMode() bool
}

// ConfigService caches the persisted whitelist, timeout and dark mode flag
// for the sweeper. Mutators replace values wholesale.
type ConfigService struct {
	mu             sync.RWMutex
	store          interfaces.StoreInterface
	logger         providers.Logger
	defaultTimeout time.Duration
	whitelist      []string
	timeout        time.Duration
	darkMode       bool
}

func NewConfigService(conf *structures.Config, store interfaces.StoreInterface, logger providers.Logger) ConfigServiceInterface {
	return &ConfigService{
		store:          store,
		logger:         logger,
		defaultTimeout: conf.Sweeper.DefaultTimeout,
		whitelist:      []string{},
		timeout:        conf.Sweeper.DefaultTimeout,
	}
}

func (cs *ConfigService) Load(ctx context.Context) error {
	values, err := cs.store.Get(ctx, storage.KeyWhitelist, storage.KeyInactivityTimeout, storage.KeyDarkMode)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	whitelist := []string{}
	if _, err := storage.Decode(values, storage.KeyWhitelist, &whitelist); err != nil {
		cs.logger.Warnf(providers.TypeApp, "Ignoring stored whitelist: %s", err)
		whitelist = []string{}
	}

	var timeoutMs int64
	if _, err := storage.Decode(values, storage.KeyInactivityTimeout, &timeoutMs); err != nil {
		cs.logger.Warnf(providers.TypeApp, "Ignoring stored inactivity timeout: %s", err)
		timeoutMs = 0
	}
	timeout := time.Duration(timeoutMs) * time.Millisecond
	// zero counts as unset, the same as a missing key
	if timeout <= 0 {
		timeout = cs.defaultTimeout
	}

	var darkMode bool
	if _, err := storage.Decode(values, storage.KeyDarkMode, &darkMode); err != nil {
		cs.logger.Warnf(providers.TypeApp, "Ignoring stored dark mode flag: %s", err)
		darkMode = false
	}

	cs.mu.Lock()
	cs.whitelist = whitelist
	cs.timeout = timeout
	cs.darkMode = darkMode
	cs.mu.Unlock()

	cs.logger.Infof(providers.TypeApp, "Config loaded: %d whitelisted hosts, inactivity timeout %s", len(whitelist), timeout)
	return nil
}

func (cs *ConfigService) SaveWhitelist(ctx context.Context, whitelist []string) error {
	list := make([]string, len(whitelist))
	copy(list, whitelist)

	cs.mu.Lock()
	cs.whitelist = list
	cs.mu.Unlock()

	if err := cs.store.Set(ctx, map[string]any{storage.KeyWhitelist: list}); err != nil {
		return fmt.Errorf("save whitelist: %w", err)
	}
	return nil
}

func (cs *ConfigService) SaveTimeout(ctx context.Context, minutes float64) error {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		return fmt.Errorf("save timeout: %w: %v minutes", ErrInvalidTimeout, minutes)
	}
	ms := int64(math.Round(minutes * 60 * 1000))

	cs.mu.Lock()
	cs.timeout = time.Duration(ms) * time.Millisecond
	cs.mu.Unlock()

	if err := cs.store.Set(ctx, map[string]any{storage.KeyInactivityTimeout: ms}); err != nil {
		return fmt.Errorf("save timeout: %w", err)
	}
	return nil
}

func (cs *ConfigService) SaveDarkMode(ctx context.Context, enabled bool) error {
	cs.mu.Lock()
	cs.darkMode = enabled
	cs.mu.Unlock()

	if err := cs.store.Set(ctx, map[string]any{storage.KeyDarkMode: enabled}); err != nil {
		return fmt.Errorf("save dark mode: %w", err)
	}
	return nil
}

func (cs *ConfigService) Whitelist() []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	list := make([]string, len(cs.whitelist))
	copy(list, cs.whitelist)
	return list
}

// IsWhitelisted is an exact, case-sensitive match.
func (cs *ConfigService) IsWhitelisted(hostname string) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return containsHost(cs.whitelist, hostname)
}

func (cs *ConfigService) InactivityTimeout() time.Duration {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.timeout
}

func (cs *ConfigService) DarkMode() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.darkMode
}

func containsHost(list []string, hostname string) bool {
	for _, h := range list {
		if h == hostname {
			return true
		}
	}
	return false
}
