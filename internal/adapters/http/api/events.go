package api

import (
	"net/http"
	"strings"

	"github.com/okian/fightcard/pkg/logger"
)

// Routes served by EventsHandler.
const (
	EventsPath      = "/api/events"
	EventPathPrefix = "/api/event/"
)

// EventsHandler serves crawl results.
type EventsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewEventsHandler creates a new events handler. A nil logger discards output.
func NewEventsHandler(deps Dependencies, l logger.Logger) *EventsHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &EventsHandler{deps: deps, logger: l}
}

// HandleGetEvents handles GET /api/events requests.
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	catalog, err := h.deps.Events(r.Context())
	if err != nil {
		h.logger.Warn(r.Context(), "bulk crawl failed", logger.Error(err))
		writeNotFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

// HandleGetEvent handles GET /api/event/{id} requests.
func (h *EventsHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	// Ids that are not one path segment name no event page.
	id := strings.TrimPrefix(r.URL.Path, EventPathPrefix)
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, ErrBadRequest)
		return
	}

	catalog, err := h.deps.Event(r.Context(), id)
	if err != nil {
		h.logger.Warn(r.Context(), "event crawl failed", logger.String("event", id), logger.Error(err))
		writeNotFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}
