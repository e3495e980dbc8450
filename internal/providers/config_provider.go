package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"tabsleep/internal/structures"
	"time"

	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8765)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("sweeper.interval", time.Minute)
	v.SetDefault("sweeper.defaultTimeout", 5*time.Minute)
	v.SetDefault("memory.interval", 5*time.Minute)
	v.SetDefault("panel.memoryPerTabMB", 50)
	v.SetDefault("panel.discardConcurrency", 8)
	v.SetDefault("browser.timeout", 5*time.Second)
	v.SetDefault("browser.notifications", true)
	v.SetDefault("browser.notificationIcon", "icon128.png")
	v.SetDefault("cache.ttl", 10*time.Second)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("logger.level", "TABSLEEP_LOG_LEVEL")
	_ = v.BindEnv("sweeper.interval", "TABSLEEP_SWEEP_INTERVAL")
	_ = v.BindEnv("sweeper.defaultTimeout", "TABSLEEP_DEFAULT_TIMEOUT")
	_ = v.BindEnv("browser.bridgeUrl", "TABSLEEP_BRIDGE_URL")
	_ = v.BindEnv("cache.enabled", "TABSLEEP_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "TABSLEEP_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "TabSleep"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
