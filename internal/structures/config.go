package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type SweeperConfig struct {
	Interval       time.Duration `yaml:"interval" validate:"required|min:1"`
	DefaultTimeout time.Duration `yaml:"defaultTimeout" validate:"required|min:1"`
}

type MemoryConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

type PanelConfig struct {
	MemoryPerTabMB     float64 `yaml:"memoryPerTabMB"`
	DiscardConcurrency int     `yaml:"discardConcurrency"`
}

type BrowserConfig struct {
	BridgeURL        string        `yaml:"bridgeUrl" validate:"required|fullUrl"`
	Timeout          time.Duration `yaml:"timeout" validate:"required|min:1"`
	Notifications    bool          `yaml:"notifications"`
	NotificationIcon string        `yaml:"notificationIcon"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Sweeper     SweeperConfig `yaml:"sweeper"`
	Memory      MemoryConfig  `yaml:"memory"`
	Panel       PanelConfig   `yaml:"panel"`
	Browser     BrowserConfig `yaml:"browser"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
