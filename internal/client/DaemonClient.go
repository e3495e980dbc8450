package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"tabsleep/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

const (
	DefaultAddr    = "127.0.0.1:8765"
	defaultTimeout = 30 * time.Second

	maxErrorBodySize = 4 << 10
)

var (
	ErrDaemonStatus    = errors.New("daemon returned an error")
	ErrNotAcknowledged = errors.New("daemon did not acknowledge")
)

// DaemonClientInterface is everything the panel and the one-shot commands
// need from a running daemon.
type DaemonClientInterface interface {
	Memory(ctx context.Context) (structures.MemoryInfo, error)
	Stats(ctx context.Context) (structures.Stats, error)
	Settings(ctx context.Context) (structures.Settings, error)
	SuspendNow(ctx context.Context) (structures.SuspendResult, error)
	Resume(ctx context.Context) (structures.ResumeResult, error)
	SaveWhitelist(ctx context.Context, whitelist []string) error
	SaveTimeout(ctx context.Context, minutes int) error
	SaveDarkMode(ctx context.Context, enabled bool) error
}

type DaemonClient struct {
	baseURL string
	http    *http.Client
}

// NewDaemonClient accepts either host:port or a full URL.
func NewDaemonClient(addr string, timeout time.Duration) DaemonClientInterface {
	if addr == "" {
		addr = DefaultAddr
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &DaemonClient{
		baseURL: strings.TrimRight(addr, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *DaemonClient) Memory(ctx context.Context) (structures.MemoryInfo, error) {
	var info structures.MemoryInfo
	err := c.do(ctx, http.MethodGet, "/memory", nil, &info)
	return info, err
}

func (c *DaemonClient) Stats(ctx context.Context) (structures.Stats, error) {
	var stats structures.Stats
	err := c.do(ctx, http.MethodGet, "/stats", nil, &stats)
	return stats, err
}

func (c *DaemonClient) Settings(ctx context.Context) (structures.Settings, error) {
	var settings structures.Settings
	err := c.do(ctx, http.MethodGet, "/settings", nil, &settings)
	return settings, err
}

func (c *DaemonClient) SuspendNow(ctx context.Context) (structures.SuspendResult, error) {
	var result structures.SuspendResult
	err := c.do(ctx, http.MethodPost, "/suspend", nil, &result)
	return result, err
}

func (c *DaemonClient) Resume(ctx context.Context) (structures.ResumeResult, error) {
	var result structures.ResumeResult
	err := c.do(ctx, http.MethodPost, "/resume", nil, &result)
	return result, err
}

func (c *DaemonClient) SaveWhitelist(ctx context.Context, whitelist []string) error {
	return c.send(ctx, structures.ActionSaveWhitelist, whitelist)
}

func (c *DaemonClient) SaveTimeout(ctx context.Context, minutes int) error {
	return c.send(ctx, structures.ActionSaveTimeout, minutes)
}

func (c *DaemonClient) SaveDarkMode(ctx context.Context, enabled bool) error {
	var ack structures.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/settings", structures.DarkModeRequest{DarkMode: enabled}, &ack); err != nil {
		return err
	}
	return checkAck(ack)
}

func (c *DaemonClient) send(ctx context.Context, action string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var ack structures.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/message", structures.Message{Action: action, Data: raw}, &ack); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if err := checkAck(ack); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

func checkAck(ack structures.MessageResponse) error {
	if ack.Success {
		return nil
	}
	if ack.Error == "" {
		return ErrNotAcknowledged
	}
	return fmt.Errorf("%w: %s", ErrNotAcknowledged, ack.Error)
}

func (c *DaemonClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		var ack structures.MessageResponse
		if json.Unmarshal(raw, &ack) == nil && ack.Error != "" {
			return fmt.Errorf("%w: %d %s", ErrDaemonStatus, resp.StatusCode, ack.Error)
		}
		return fmt.Errorf("%w: %d %s", ErrDaemonStatus, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
