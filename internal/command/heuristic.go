package command

import (
	"context"
	"regexp"
	"strings"

	"unidash/internal/models"
	"unidash/internal/store"
)

var openPattern = regexp.MustCompile(`open\s+(\w+)`)

// HeuristicInterpreter is the degraded command mode: a deterministic
// "open <service>" matcher with no external dependencies.
type HeuristicInterpreter struct {
	store *store.Store
}

// NewHeuristicInterpreter builds the fallback interpreter over st.
func NewHeuristicInterpreter(st *store.Store) *HeuristicInterpreter {
	return &HeuristicInterpreter{store: st}
}

// Interpret matches "open <token>" case-insensitively and resolves the token
// by substring against every service's name and id; first match wins. The
// intent stays open_service even when the matched service has no URL.
func (h *HeuristicInterpreter) Interpret(_ context.Context, command string) models.CommandResponse {
	resp := models.CommandResponse{
		Intent:     models.IntentUnknown,
		Confidence: 0.7,
		Message:    "AI features are not configured. I can help you with basic commands.",
	}

	lower := strings.ToLower(command)
	match := openPattern.FindStringSubmatch(lower)
	if match == nil {
		return resp
	}

	token := match[1]
	for _, svc := range h.store.ListServices() {
		if !strings.Contains(strings.ToLower(svc.Name), token) && !strings.Contains(strings.ToLower(svc.ID), token) {
			continue
		}
		resp.Intent = models.IntentOpenService
		resp.ServiceID = svc.ID
		if svc.URL != "" {
			resp.Message = openingMessage(svc.Name)
		} else {
			resp.Message = noURLMessage(svc.Name)
		}
		return resp
	}

	return resp
}
