package browser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"tabsleep/internal/structures"

	json "github.com/goccy/go-json"
)

const maxErrorBodySize = 4 << 10

var ErrBridgeStatus = errors.New("browser bridge returned an error")

// BridgeClient drives the browser through the extension shim's local HTTP
// endpoint. It implements both TabServiceInterface and NotifierInterface.
type BridgeClient struct {
	baseURL string
	http    *http.Client
}

type bridgeError struct {
	Error string `json:"error"`
}

func NewBridgeClient(conf *structures.Config) *BridgeClient {
	return &BridgeClient{
		baseURL: strings.TrimRight(conf.Browser.BridgeURL, "/"),
		http:    &http.Client{Timeout: conf.Browser.Timeout},
	}
}

func NewTabService(client *BridgeClient) TabServiceInterface {
	return client
}

func NewNotifier(client *BridgeClient) NotifierInterface {
	return client
}

func (c *BridgeClient) Query(ctx context.Context, query structures.TabQuery) ([]structures.Tab, error) {
	path := "/tabs"
	if query.DiscardedOnly {
		path += "?discarded=true"
	}

	var tabs []structures.Tab
	if err := c.do(ctx, http.MethodGet, path, nil, &tabs); err != nil {
		return nil, fmt.Errorf("query tabs: %w", err)
	}
	return tabs, nil
}

func (c *BridgeClient) Discard(ctx context.Context, tabID int) error {
	if err := c.do(ctx, http.MethodPost, "/tabs/"+strconv.Itoa(tabID)+"/discard", nil, nil); err != nil {
		return fmt.Errorf("discard tab %d: %w", tabID, err)
	}
	return nil
}

func (c *BridgeClient) Update(ctx context.Context, tabID int, update structures.TabUpdate) error {
	if err := c.do(ctx, http.MethodPost, "/tabs/"+strconv.Itoa(tabID)+"/update", update, nil); err != nil {
		return fmt.Errorf("update tab %d: %w", tabID, err)
	}
	return nil
}

func (c *BridgeClient) Notify(ctx context.Context, notification structures.Notification) error {
	if err := c.do(ctx, http.MethodPost, "/notifications", notification, nil); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

func (c *BridgeClient) do(ctx context.Context, method, path string, body any, out any) error {
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
		var be bridgeError
		if json.Unmarshal(raw, &be) == nil && be.Error != "" {
			return fmt.Errorf("%w: %d %s", ErrBridgeStatus, resp.StatusCode, be.Error)
		}
		return fmt.Errorf("%w: %d %s", ErrBridgeStatus, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
