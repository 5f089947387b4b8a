package http

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

// subscribe upgrades to a websocket and streams the zone's notifications as
// JSON text messages until either side goes away.
func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	zone := chi.URLParam(r, "zone")

	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Handler.subscribe").Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	notifications, cancel := h.services.NotificationHub.Subscribe(principal, zone)
	defer cancel()

	// client messages are not expected; CloseRead ends ctx when the peer leaves
	ctx := conn.CloseRead(r.Context())

	log.Info().Str("func", "*Handler.subscribe").Str("zone", zone).Msg("notification subscriber connected")

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("func", "*Handler.subscribe").Str("zone", zone).Msg("notification subscriber left")
			return
		case n, ok := <-notifications:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "subscription closed")
				return
			}
			if err = writeWithTimeout(ctx, func(ctx context.Context) error {
				return wsjson.Write(ctx, conn, n)
			}); err != nil {
				log.Warn().Err(err).Str("func", "*Handler.subscribe").Msg("failed to deliver notification")
				return
			}
		case <-ping.C:
			if err = writeWithTimeout(ctx, conn.Ping); err != nil {
				log.Warn().Err(err).Str("func", "*Handler.subscribe").Msg("subscriber ping failed")
				return
			}
		}
	}
}

func writeWithTimeout(ctx context.Context, write func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return write(ctx)
}
