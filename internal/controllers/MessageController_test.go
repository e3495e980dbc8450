package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"tabsleep/internal/services"
	"tabsleep/internal/structures"
	"tabsleep/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Sweeper: structures.SweeperConfig{Interval: time.Minute, DefaultTimeout: 5 * time.Minute},
		Panel:   structures.PanelConfig{MemoryPerTabMB: 50, DiscardConcurrency: 2},
	}
}

func newMessageController(store *testutil.MockStore) (*MessageController, services.ConfigServiceInterface) {
	cfg := services.NewConfigService(testConfig(), store, &testutil.MockLogger{})
	return NewMessageController(&testutil.MockLogger{}, cfg), cfg
}

func postMessage(mc *MessageController, body string) (*httptest.ResponseRecorder, structures.MessageResponse) {
	req := httptest.NewRequest(http.MethodPost, "/message", strings.NewReader(body))
	rr := httptest.NewRecorder()
	mc.HandleMessage(rr, req)

	var resp structures.MessageResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	return rr, resp
}

func TestHandleMessage_SaveWhitelist(t *testing.T) {
	store := testutil.NewMockStore()
	mc, cfg := newMessageController(store)

	rr, resp := postMessage(mc, `{"action":"saveWhitelist","data":["a.com","b.com"]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.Equal(t, []string{"a.com", "b.com"}, cfg.Whitelist())
	assert.JSONEq(t, `["a.com","b.com"]`, store.Raw("whitelist"))
}

func TestHandleMessage_SaveWhitelistReplaces(t *testing.T) {
	store := testutil.NewMockStore()
	mc, cfg := newMessageController(store)

	postMessage(mc, `{"action":"saveWhitelist","data":["a.com"]}`)
	_, resp := postMessage(mc, `{"action":"saveWhitelist","data":["c.com","c.com"]}`)

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"c.com", "c.com"}, cfg.Whitelist())
}

func TestHandleMessage_SaveEmptyWhitelist(t *testing.T) {
	store := testutil.NewMockStore()
	mc, cfg := newMessageController(store)

	postMessage(mc, `{"action":"saveWhitelist","data":["a.com"]}`)
	rr, resp := postMessage(mc, `{"action":"saveWhitelist","data":[]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, resp.Success)
	assert.Empty(t, cfg.Whitelist())
	assert.Equal(t, "[]", store.Raw("whitelist"))
}

func TestHandleMessage_SaveTimeout(t *testing.T) {
	store := testutil.NewMockStore()
	mc, cfg := newMessageController(store)

	rr, resp := postMessage(mc, `{"action":"saveTimeout","data":10}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, 10*time.Minute, cfg.InactivityTimeout())
	assert.Equal(t, "600000", store.Raw("inactivityTimeout"))
}

func TestHandleMessage_SaveTimeoutRejectsNegative(t *testing.T) {
	store := testutil.NewMockStore()
	mc, cfg := newMessageController(store)

	rr, resp := postMessage(mc, `{"action":"saveTimeout","data":-3}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, 5*time.Minute, cfg.InactivityTimeout())
}

func TestHandleMessage_WrongDataType(t *testing.T) {
	mc, _ := newMessageController(testutil.NewMockStore())

	rr, resp := postMessage(mc, `{"action":"saveTimeout","data":"ten"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, resp.Success)

	rr, _ = postMessage(mc, `{"action":"saveWhitelist","data":{"a":1}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = postMessage(mc, `{"action":"saveWhitelist"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleMessage_UnknownAction(t *testing.T) {
	store := testutil.NewMockStore()
	mc, _ := newMessageController(store)

	rr, resp := postMessage(mc, `{"action":"dropTables","data":1}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "dropTables")
	assert.Zero(t, store.SetCalls)
}

func TestHandleMessage_InvalidJSON(t *testing.T) {
	mc, _ := newMessageController(testutil.NewMockStore())

	rr, resp := postMessage(mc, `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, resp.Success)
}

func TestHandleMessage_OversizedBody(t *testing.T) {
	mc, _ := newMessageController(testutil.NewMockStore())

	big := `{"action":"saveWhitelist","data":["` + strings.Repeat("x", maxRequestBodySize) + `"]}`
	rr, _ := postMessage(mc, big)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleMessage_PersistFailureIsReported(t *testing.T) {
	store := testutil.NewMockStore()
	store.FailSet = true
	logger := &testutil.MockLogger{}
	cfg := services.NewConfigService(testConfig(), store, &testutil.MockLogger{})
	mc := NewMessageController(logger, cfg)

	rr, resp := postMessage(mc, `{"action":"saveWhitelist","data":["a.com"]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, testutil.ErrStoreWrite.Error())
	assert.Equal(t, 1, logger.Count("error"))
	// the cached value is still replaced
	assert.Equal(t, []string{"a.com"}, cfg.Whitelist())
}
