package structures

// Tab mirrors the tab record returned by the browser bridge.
type Tab struct {
	ID        int    `json:"id"`
	URL       string `json:"url,omitempty"`
	Title     string `json:"title,omitempty"`
	Active    bool   `json:"active"`
	Pinned    bool   `json:"pinned"`
	Discarded bool   `json:"discarded"`
}

type ChangeInfo struct {
	Status string `json:"status,omitempty"`
	URL    string `json:"url,omitempty"`
}

type TabUpdatedEvent struct {
	TabID      int        `json:"tabId"`
	ChangeInfo ChangeInfo `json:"changeInfo"`
	Tab        Tab        `json:"tab"`
}

type TabEvent struct {
	TabID int `json:"tabId"`
}

// SuspendedTabRecord is persisted under the suspendedTabs key for every
// tab discarded through the panel.
type SuspendedTabRecord struct {
	ID     int    `json:"id"`
	Domain string `json:"domain"`
}

type TabUpdate struct {
	Active bool `json:"active"`
}

type Notification struct {
	Type    string `json:"type"`
	IconURL string `json:"iconUrl,omitempty"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type TabQuery struct {
	DiscardedOnly bool
}
