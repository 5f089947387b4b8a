package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
	"github.com/cenkalti/backoff/v4"
	"github.com/coder/websocket"
)

const defaultReconnectMaxWait = time.Minute

// WebsocketSubscriber keeps a websocket open to the zone's notification
// stream and hands every decoded notification to a [NotificationHandler].
// Dropped connections are re-dialled with exponential backoff.
type WebsocketSubscriber struct {
	url     string
	header  http.Header
	handler NotificationHandler
	maxWait time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewWebsocketSubscriber prepares a subscriber for the zone configured in cfg.
func NewWebsocketSubscriber(cfg config.ClientAdapter, handler NotificationHandler, logger *logger.Logger) (*WebsocketSubscriber, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if handler == nil {
		return nil, errors.New("nil notification handler")
	}

	header := http.Header{}
	if token := strings.TrimSpace(cfg.Token); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	maxWait := cfg.ReconnectMaxWait
	if maxWait <= 0 {
		maxWait = defaultReconnectMaxWait
	}

	return &WebsocketSubscriber{
		url:     baseURL + "/api/zones/" + cfg.Zone + "/subscribe",
		header:  header,
		handler: handler,
		maxWait: maxWait,
		logger:  logger,
	}, nil
}

// Start connects in the background.
func (s *WebsocketSubscriber) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop closes the connection and waits for the reader goroutine to exit.
func (s *WebsocketSubscriber) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *WebsocketSubscriber) run(ctx context.Context) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	b.MaxInterval = s.maxWait

	for {
		connected, err := s.listen(ctx)
		if ctx.Err() != nil {
			s.logger.Info().Str("func", "*WebsocketSubscriber.run").Msg("notification stream stopped")
			return
		}
		if connected {
			b.Reset()
		}

		wait := b.NextBackOff()
		s.logger.Warn().Err(err).Str("func", "*WebsocketSubscriber.run").
			Dur("retry_in", wait).
			Msg("notification stream disconnected")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// listen reads notifications until the connection fails. connected reports
// whether the dial succeeded.
func (s *WebsocketSubscriber) listen(ctx context.Context) (connected bool, err error) {
	conn, _, err := websocket.Dial(ctx, s.url, &websocket.DialOptions{HTTPHeader: s.header})
	if err != nil {
		return false, fmt.Errorf("dial notification stream: %w", err)
	}
	defer conn.CloseNow()

	s.logger.Info().Str("func", "*WebsocketSubscriber.listen").Str("url", s.url).Msg("notification stream connected")

	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			return true, fmt.Errorf("read notification: %w", err)
		}
		if msgType != websocket.MessageText {
			continue
		}

		var n models.Notification
		if err := json.Unmarshal(data, &n); err != nil || !n.Reason.Valid() || n.RecordID == "" {
			s.logger.Warn().Str("func", "*WebsocketSubscriber.listen").
				Bytes("message", data).
				Msg("skipping malformed notification")
			continue
		}

		s.handler(ctx, n)
	}
}
