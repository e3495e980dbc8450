package controllers

import (
	"net/http"
	"tabsleep/internal/providers"
	"tabsleep/internal/services"
	"tabsleep/internal/structures"

	json "github.com/goccy/go-json"
)

const statsCacheKey = "stats"

type PanelController struct {
	logger providers.Logger
	panel  services.PanelServiceInterface
	config services.ConfigServiceInterface
	memory services.MemoryServiceInterface
	cache  providers.CacheProviderInterface
}

func NewPanelController(logger providers.Logger, panel services.PanelServiceInterface, config services.ConfigServiceInterface, memory services.MemoryServiceInterface, cache providers.CacheProviderInterface) *PanelController {
	return &PanelController{
		logger: logger,
		panel:  panel,
		config: config,
		memory: memory,
		cache:  cache,
	}
}

func (pc *PanelController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := pc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		pc.logger.Errorf(providers.TypeGet, "Cannot compute %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (pc *PanelController) Suspend(w http.ResponseWriter, r *http.Request) {
	result, err := pc.panel.SuspendNow(r.Context())
	pc.cache.Del(statsCacheKey)
	if err != nil {
		pc.logger.Errorf(providers.TypePost, "Suspend now failed: %s", err)
		writeAck(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (pc *PanelController) Resume(w http.ResponseWriter, r *http.Request) {
	result, err := pc.panel.Resume(r.Context())
	pc.cache.Del(statsCacheKey)
	if err != nil {
		pc.logger.Errorf(providers.TypePost, "Resume failed: %s", err)
		writeAck(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (pc *PanelController) GetStats(w http.ResponseWriter, r *http.Request) {
	pc.serveFromCacheOrCompute(w, statsCacheKey, func() (any, error) {
		return pc.panel.Stats(r.Context())
	})
}

func (pc *PanelController) GetMemory(w http.ResponseWriter, r *http.Request) {
	info, err := pc.memory.Report(r.Context())
	if err != nil {
		pc.logger.Errorf(providers.TypeGet, "Memory report failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (pc *PanelController) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := pc.panel.Settings(r.Context())
	if err != nil {
		pc.logger.Errorf(providers.TypeGet, "Cannot read settings: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// SaveSettings persists the dark mode flag.
func (pc *PanelController) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req structures.DarkModeRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := pc.config.SaveDarkMode(r.Context(), req.DarkMode); err != nil {
		pc.logger.Errorf(providers.TypePost, "Cannot save dark mode: %s", err)
		writeAck(w, http.StatusOK, err)
		return
	}
	writeAck(w, http.StatusOK, nil)
}
