package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/internal/validators"
	"github.com/MKhiriev/go-sync-engine/models"
)

// NotificationDispatcher applies an inbound notification. It is satisfied
// by service.NotificationRouter and by the sync engine itself.
type NotificationDispatcher interface {
	HandleNotification(ctx context.Context, n models.Notification) error
}

// WebhookHandler receives push notifications on the client.
type WebhookHandler struct {
	dispatcher NotificationDispatcher
	validator  validators.Validator
	hasher     *utils.Hasher

	logger *logger.Logger
}

// NewWebhookHandler returns a handler for POST /api/notifications. With a
// non-empty hashKey every delivery must carry a valid HashSHA256 header.
func NewWebhookHandler(dispatcher NotificationDispatcher, hashKey string, logger *logger.Logger) *WebhookHandler {
	h := &WebhookHandler{
		dispatcher: dispatcher,
		validator:  validators.NewRecordValidator(),
		logger:     logger,
	}
	if hashKey != "" {
		h.hasher = utils.NewHasher(hashKey)
	}
	return h
}

func (h *WebhookHandler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(func(next http.Handler) http.Handler { return withTraceID(h.logger, next) })
	router.Use(withLogging)

	router.With(func(next http.Handler) http.Handler { return verifyBody(h.hasher, next) }).
		Post("/api/notifications", h.notify)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *WebhookHandler) notify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var n models.Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		log.Err(err).Str("func", "*WebhookHandler.notify").Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate(r.Context(), n); err != nil {
		log.Err(err).Str("func", "*WebhookHandler.notify").Msg("invalid notification")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.dispatcher.HandleNotification(r.Context(), n); err != nil {
		log.Err(err).Str("func", "*WebhookHandler.notify").
			Str("notification", n.String()).
			Msg("failed to apply notification")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
