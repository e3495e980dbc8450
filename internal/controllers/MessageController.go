package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"tabsleep/internal/providers"
	"tabsleep/internal/services"
	"tabsleep/internal/structures"

	json "github.com/goccy/go-json"
)

var errUnknownAction = errors.New("unknown action")

// MessageController answers the runtime messages sent by the panel and the
// browser shim. The reply is written only after the store write returns.
type MessageController struct {
	logger providers.Logger
	config services.ConfigServiceInterface
}

func NewMessageController(logger providers.Logger, config services.ConfigServiceInterface) *MessageController {
	return &MessageController{
		logger: logger,
		config: config,
	}
}

func (mc *MessageController) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var msg structures.Message
	if err := decodeBody(w, r, &msg); err != nil {
		writeAck(w, http.StatusBadRequest, fmt.Errorf("bad message: %w", err))
		return
	}

	var err error
	switch msg.Action {
	case structures.ActionSaveWhitelist:
		var whitelist []string
		if err := decodeData(msg.Data, &whitelist); err != nil {
			writeAck(w, http.StatusBadRequest, err)
			return
		}
		err = mc.config.SaveWhitelist(r.Context(), whitelist)
	case structures.ActionSaveTimeout:
		var minutes float64
		if err := decodeData(msg.Data, &minutes); err != nil {
			writeAck(w, http.StatusBadRequest, err)
			return
		}
		err = mc.config.SaveTimeout(r.Context(), minutes)
		if errors.Is(err, services.ErrInvalidTimeout) {
			writeAck(w, http.StatusBadRequest, err)
			return
		}
	default:
		writeAck(w, http.StatusBadRequest, fmt.Errorf("%w: %q", errUnknownAction, msg.Action))
		return
	}

	if err != nil {
		mc.logger.Errorf(providers.TypePost, "Cannot handle %s: %s", msg.Action, err)
		writeAck(w, http.StatusOK, err)
		return
	}
	writeAck(w, http.StatusOK, nil)
}

func decodeData(data json.RawMessage, dst any) error {
	if len(data) == 0 {
		return errors.New("bad message: missing data")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("bad message: %w", err)
	}
	return nil
}
