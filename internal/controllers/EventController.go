package controllers

import (
	"net/http"
	"tabsleep/internal/providers"
	"tabsleep/internal/services"
	"tabsleep/internal/structures"
)

// EventController receives the tab events forwarded by the browser shim.
type EventController struct {
	logger  providers.Logger
	handler services.TabEventHandlerInterface
}

func NewEventController(logger providers.Logger, handler services.TabEventHandlerInterface) *EventController {
	return &EventController{
		logger:  logger,
		handler: handler,
	}
}

func (ec *EventController) Updated(w http.ResponseWriter, r *http.Request) {
	var event structures.TabUpdatedEvent
	if err := decodeBody(w, r, &event); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ec.handler.OnUpdated(event)
	w.WriteHeader(http.StatusNoContent)
}

func (ec *EventController) Activated(w http.ResponseWriter, r *http.Request) {
	var event structures.TabEvent
	if err := decodeBody(w, r, &event); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ec.handler.OnActivated(event.TabID)
	w.WriteHeader(http.StatusNoContent)
}

func (ec *EventController) Removed(w http.ResponseWriter, r *http.Request) {
	var event structures.TabEvent
	if err := decodeBody(w, r, &event); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ec.handler.OnRemoved(event.TabID)
	ec.logger.Debugf(providers.TypePost, "Tab %d removed from tracking", event.TabID)
	w.WriteHeader(http.StatusNoContent)
}
