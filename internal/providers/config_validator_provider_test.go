package providers

import (
	"tabsleep/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "127.0.0.1",
			Port: 8765,
		},
		Persistence: structures.Persistence{
			FilePath: "/tmp/tabsleep.dat",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Sweeper: structures.SweeperConfig{
			Interval:       time.Minute,
			DefaultTimeout: 5 * time.Minute,
		},
		Memory: structures.MemoryConfig{
			Interval: 5 * time.Minute,
		},
		Browser: structures.BrowserConfig{
			BridgeURL: "http://127.0.0.1:8766",
			Timeout:   5 * time.Second,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_MissingBridgeURL(t *testing.T) {
	c := validConfig()
	c.Browser.BridgeURL = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroSweepInterval(t *testing.T) {
	c := validConfig()
	c.Sweeper.Interval = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}
