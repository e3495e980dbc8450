package structures

import json "github.com/goccy/go-json"

const (
	ActionSaveWhitelist = "saveWhitelist"
	ActionSaveTimeout   = "saveTimeout"
)

// Message is an inbound request from the panel or the browser shim.
// Data is decoded according to Action.
type Message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Stats struct {
	SuspendedTabs []SuspendedTabRecord `json:"suspendedTabs"`
	Count         int                  `json:"count"`
	MemorySaved   float64              `json:"memorySaved"`
}

type Settings struct {
	InactivityTimeout int64 `json:"inactivityTimeout"`
	DarkMode          bool  `json:"darkMode"`
}

type DarkModeRequest struct {
	DarkMode bool `json:"darkMode"`
}

type MemoryInfo struct {
	CapacityMB  float64 `json:"capacityMB"`
	AvailableMB float64 `json:"availableMB"`
}

type SuspendResult struct {
	Suspended int   `json:"suspended"`
	Failed    int   `json:"failed"`
	Stats     Stats `json:"stats"`
}

type ResumeResult struct {
	Resumed int `json:"resumed"`
	Failed  int `json:"failed"`
}
