package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"tabsleep/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

func newDaemon(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (DaemonClientInterface, *[]recordedRequest) {
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewDaemonClient(srv.URL, time.Second), &requests
}

func TestDaemonClient_Reads(t *testing.T) {
	c, requests := newDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/memory":
			_, _ = w.Write([]byte(`{"capacityMB":8192,"availableMB":2048.5}`))
		case "/stats":
			_, _ = w.Write([]byte(`{"suspendedTabs":[{"id":3,"domain":"x.com"}],"count":1,"memorySaved":50}`))
		case "/settings":
			_, _ = w.Write([]byte(`{"inactivityTimeout":600000,"darkMode":true}`))
		}
	})

	info, err := c.Memory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, structures.MemoryInfo{CapacityMB: 8192, AvailableMB: 2048.5}, info)

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []structures.SuspendedTabRecord{{ID: 3, Domain: "x.com"}}, stats.SuspendedTabs)
	assert.Equal(t, 50.0, stats.MemorySaved)

	settings, err := c.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, structures.Settings{InactivityTimeout: 600000, DarkMode: true}, settings)

	require.Len(t, *requests, 3)
	for _, req := range *requests {
		assert.Equal(t, http.MethodGet, req.Method)
	}
}

func TestDaemonClient_SuspendAndResume(t *testing.T) {
	c, requests := newDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/suspend":
			_, _ = w.Write([]byte(`{"suspended":2,"failed":1,"stats":{"suspendedTabs":[],"count":2,"memorySaved":100}}`))
		case "/resume":
			_, _ = w.Write([]byte(`{"resumed":2,"failed":0}`))
		}
	})

	result, err := c.SuspendNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Suspended)
	assert.Equal(t, 100.0, result.Stats.MemorySaved)

	resumed, err := c.Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resumed.Resumed)

	assert.Equal(t, http.MethodPost, (*requests)[0].Method)
	assert.Equal(t, "/resume", (*requests)[1].Path)
}

func TestDaemonClient_SaveMessages(t *testing.T) {
	c, requests := newDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	require.NoError(t, c.SaveWhitelist(context.Background(), []string{"a.com", "b.com"}))
	require.NoError(t, c.SaveTimeout(context.Background(), 10))
	require.NoError(t, c.SaveDarkMode(context.Background(), true))

	require.Len(t, *requests, 3)
	assert.Equal(t, "/message", (*requests)[0].Path)
	assert.JSONEq(t, `{"action":"saveWhitelist","data":["a.com","b.com"]}`, (*requests)[0].Body)
	assert.JSONEq(t, `{"action":"saveTimeout","data":10}`, (*requests)[1].Body)
	assert.Equal(t, "/settings", (*requests)[2].Path)
	assert.JSONEq(t, `{"darkMode":true}`, (*requests)[2].Body)
}

func TestDaemonClient_NotAcknowledged(t *testing.T) {
	c, _ := newDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"store write failed"}`))
	})

	err := c.SaveWhitelist(context.Background(), []string{"a.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAcknowledged))
	assert.Contains(t, err.Error(), "store write failed")
}

func TestDaemonClient_StatusError(t *testing.T) {
	c, _ := newDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"unknown action"}`))
	})

	err := c.SaveTimeout(context.Background(), 5)
	assert.ErrorIs(t, err, ErrDaemonStatus)
	assert.Contains(t, err.Error(), "unknown action")

	c, _ = newDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	})
	_, err = c.Stats(context.Background())
	assert.ErrorIs(t, err, ErrDaemonStatus)
	assert.Contains(t, err.Error(), "500")
}

func TestNewDaemonClient_Addr(t *testing.T) {
	c := NewDaemonClient("", 0).(*DaemonClient)
	assert.Equal(t, "http://"+DefaultAddr, c.baseURL)
	assert.Equal(t, defaultTimeout, c.http.Timeout)

	c = NewDaemonClient("localhost:9000/", time.Second).(*DaemonClient)
	assert.Equal(t, "http://localhost:9000", c.baseURL)
}

func TestDaemonClient_Unreachable(t *testing.T) {
	c := NewDaemonClient("127.0.0.1:1", 200*time.Millisecond)
	_, err := c.Memory(context.Background())
	assert.Error(t, err)
}
