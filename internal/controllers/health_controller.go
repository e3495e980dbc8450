package controllers

import (
	"fmt"
	"net/http"
	"tabsleep/internal/services"
	"time"
)

type HealthController struct {
	tracker   services.ActivityTrackerInterface
	config    services.ConfigServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status            string  `json:"status"`
	Uptime            string  `json:"uptime"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
	TrackedTabs       int     `json:"tracked_tabs"`
	InactivityTimeout int64   `json:"inactivity_timeout_ms"`
	WhitelistedHosts  int     `json:"whitelisted_hosts"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "ok",
		Uptime:            formatDuration(uptime),
		UptimeSeconds:     uptime.Seconds(),
		TrackedTabs:       hc.tracker.Count(),
		InactivityTimeout: hc.config.InactivityTimeout().Milliseconds(),
		WhitelistedHosts:  len(hc.config.Whitelist()),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(tracker services.ActivityTrackerInterface, config services.ConfigServiceInterface) *HealthController {
	return &HealthController{
		tracker:   tracker,
		config:    config,
		startTime: time.Now(),
	}
}
