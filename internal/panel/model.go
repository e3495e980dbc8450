package panel

import (
	"context"
	"fmt"
	"strings"
	"tabsleep/internal/client"
	"tabsleep/internal/structures"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

type focus int

const (
	focusNone focus = iota
	focusTimeout
	focusWhitelist
	focusCount
)

// --- Messages ---

type memoryMsg struct {
	info structures.MemoryInfo
	err  error
}

type statsMsg struct {
	stats structures.Stats
	err   error
}

type settingsMsg struct {
	settings structures.Settings
	err      error
}

type suspendedMsg struct {
	result structures.SuspendResult
	err    error
}

type resumedMsg struct {
	result structures.ResumeResult
	err    error
}

type savedMsg struct {
	what string
	err  error
}

// --- Model ---

type Model struct {
	client client.DaemonClientInterface
	keys   keyMap

	memory    structures.MemoryInfo
	hasMemory bool
	stats     structures.Stats
	darkMode  bool
	styles    styles

	timeout   textinput.Model
	whitelist textinput.Model
	focus     focus

	busy     bool
	status   string
	err      error
	quitting bool
}

func NewModel(c client.DaemonClientInterface) Model {
	timeout := textinput.New()
	timeout.Prompt = ""
	timeout.Placeholder = "minutes"
	timeout.CharLimit = 8
	timeout.Width = 10

	whitelist := textinput.New()
	whitelist.Prompt = ""
	whitelist.Placeholder = "example.com, mail.google.com"
	whitelist.Width = 48

	return Model{
		client:    c,
		keys:      defaultKeyMap(),
		styles:    newStyles(false),
		timeout:   timeout,
		whitelist: whitelist,
		stats:     structures.Stats{SuspendedTabs: []structures.SuspendedTabRecord{}},
	}
}

// Init loads memory info, the suspended tab stats and the stored settings.
// The whitelist field starts empty.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadMemory(), m.loadStats(), m.loadSettings())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case memoryMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.memory = msg.info
		m.hasMemory = true
		return m, nil

	case statsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.stats = msg.stats
		return m, nil

	case settingsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.timeout.SetValue(FormatTimeoutMinutes(msg.settings.InactivityTimeout))
		m.setDarkMode(msg.settings.DarkMode)
		return m, nil

	case suspendedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.stats = msg.result.Stats
		m.status = "Inactive tabs (excluding whitelisted ones) have been suspended!"
		if msg.result.Failed > 0 {
			m.status += fmt.Sprintf(" (%d could not be discarded)", msg.result.Failed)
		}
		return m, nil

	case resumedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, m.loadStats()
		}
		m.err = nil
		m.status = "Suspended tabs have been resumed!"
		return m, m.loadStats()

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.what != "" {
			m.status = msg.what + " saved!"
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	}

	if m.focus != focusNone {
		switch {
		case key.Matches(msg, m.keys.Save):
			return m, m.saveFocused()
		case key.Matches(msg, m.keys.Blur):
			m.setFocus(focusNone)
			return m, nil
		}
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Suspend):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Suspending..."
		return m, m.suspend()
	case key.Matches(msg, m.keys.Resume):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Resuming..."
		return m, m.resume()
	case key.Matches(msg, m.keys.DarkMode):
		m.setDarkMode(!m.darkMode)
		return m, m.saveDarkMode(m.darkMode)
	}
	return m, nil
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTimeout:
		m.timeout, cmd = m.timeout.Update(msg)
	case focusWhitelist:
		m.whitelist, cmd = m.whitelist.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.timeout.Blur()
	m.whitelist.Blur()
	switch f {
	case focusTimeout:
		m.timeout.Focus()
	case focusWhitelist:
		m.whitelist.Focus()
	}
}

func (m *Model) setDarkMode(enabled bool) {
	m.darkMode = enabled
	m.styles = newStyles(enabled)
}

func (m Model) saveFocused() tea.Cmd {
	switch m.focus {
	case focusTimeout:
		minutes := ParseTimeoutMinutes(m.timeout.Value())
		return m.call("Inactivity timeout", func(ctx context.Context) error {
			return m.client.SaveTimeout(ctx, minutes)
		})
	case focusWhitelist:
		whitelist := ParseWhitelist(m.whitelist.Value())
		return m.call("Whitelist", func(ctx context.Context) error {
			return m.client.SaveWhitelist(ctx, whitelist)
		})
	}
	return nil
}

func (m Model) saveDarkMode(enabled bool) tea.Cmd {
	return m.call("", func(ctx context.Context) error {
		return m.client.SaveDarkMode(ctx, enabled)
	})
}

func (m Model) call(what string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return savedMsg{what: what, err: fn(ctx)}
	}
}

func (m Model) loadMemory() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		info, err := c.Memory(ctx)
		return memoryMsg{info: info, err: err}
	}
}

func (m Model) loadStats() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		stats, err := c.Stats(ctx)
		return statsMsg{stats: stats, err: err}
	}
}

func (m Model) loadSettings() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		settings, err := c.Settings(ctx)
		return settingsMsg{settings: settings, err: err}
	}
}

func (m Model) suspend() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := c.SuspendNow(ctx)
		return suspendedMsg{result: result, err: err}
	}
}

func (m Model) resume() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := c.Resume(ctx)
		return resumedMsg{result: result, err: err}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.styles
	var b strings.Builder

	b.WriteString(s.title.Render("TabSleep"))
	b.WriteString("\n\n")

	if m.hasMemory {
		b.WriteString(s.text.Render(fmt.Sprintf("Total: %.2f MB, Available: %.2f MB", m.memory.CapacityMB, m.memory.AvailableMB)))
	} else {
		b.WriteString(s.muted.Render("Reading memory info..."))
	}
	b.WriteString("\n\n")

	for _, tab := range m.stats.SuspendedTabs {
		b.WriteString(s.text.Render("  • " + tab.Domain))
		b.WriteString("\n")
	}
	b.WriteString(s.label.Render(fmt.Sprintf("Suspended Tabs: %d", len(m.stats.SuspendedTabs))))
	b.WriteString("\n")
	b.WriteString(s.label.Render(fmt.Sprintf("Memory Saved: %.2f MB", m.stats.MemorySaved)))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(focusTimeout, "Inactivity timeout (minutes)"))
	b.WriteString("\n")
	b.WriteString(m.timeout.View())
	b.WriteString("\n\n")
	b.WriteString(m.fieldLabel(focusWhitelist, "Whitelist (comma separated)"))
	b.WriteString("\n")
	b.WriteString(m.whitelist.View())
	b.WriteString("\n\n")

	mark := " "
	if m.darkMode {
		mark = "x"
	}
	b.WriteString(s.text.Render(fmt.Sprintf("[%s] Dark mode", mark)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(s.err.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(s.status.Render(m.status))
		b.WriteString("\n")
	}

	helps := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		helps = append(helps, h.Key+" "+h.Desc)
	}
	b.WriteString(s.muted.Render(strings.Join(helps, " • ")))

	return s.frame.Render(b.String())
}

func (m Model) fieldLabel(f focus, text string) string {
	if m.focus == f {
		return m.styles.focused.Render("> " + text)
	}
	return m.styles.label.Render("  " + text)
}

// Run starts the panel against the daemon at addr.
func Run(addr string) error {
	p := tea.NewProgram(NewModel(client.NewDaemonClient(addr, requestTimeout)), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
