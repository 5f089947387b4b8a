package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type httpRemote struct {
	client  *utils.HTTPClient
	limiter *rate.Limiter
	hasher  *utils.Hasher

	zone     string
	token    string
	pageSize int

	logger *logger.Logger
}

// NewHTTPRemote builds the resty-backed [RemoteInterface] for the record
// backend at cfg.HTTPAddress. Every request passes through a token bucket
// limiter configured by cfg.RequestsPerSecond and cfg.Burst; mutating
// requests are signed with appCfg.HashKey in the HashSHA256 header.
func NewHTTPRemote(cfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteInterface, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if strings.TrimSpace(cfg.Zone) == "" {
		return nil, fmt.Errorf("%w: empty zone", ErrInvalidAddress)
	}

	client := utils.NewHTTPClient(utils.HTTPClientOptions{
		BaseURL:    baseURL,
		Timeout:    cfg.RequestTimeout,
		RetryCount: cfg.RetryCount,
	})

	return &httpRemote{
		client:   client,
		limiter:  newLimiter(cfg.RequestsPerSecond, cfg.Burst),
		hasher:   utils.NewHasher(appCfg.HashKey),
		zone:     url.PathEscape(cfg.Zone),
		token:    strings.TrimSpace(cfg.Token),
		pageSize: cfg.PageSize,
		logger:   logger,
	}, nil
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRemote) Setup(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Put(h.zonePath(""))
	if err != nil {
		return fmt.Errorf("%w: setup zone: %w", ErrTransport, err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemote) CreateRecord(ctx context.Context, payload models.Payload) (string, error) {
	body := models.CreateRecordRequest{Payload: payload}
	req, err := h.signedRequest(ctx, body)
	if err != nil {
		return "", err
	}

	var created models.RecordResponse
	resp, err := req.SetResult(&created).Post(h.zonePath("/records"))
	if err != nil {
		return "", fmt.Errorf("%w: create record: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if created.Record.Identifier == "" {
		return "", fmt.Errorf("%w: create record returned no id", ErrUnexpectedResponse)
	}

	h.logger.Debug().Str("func", "*httpRemote.CreateRecord").
		Str("remote_id", created.Record.Identifier).
		Msg("record created on remote")

	return created.Record.Identifier, nil
}

func (h *httpRemote) FetchRecord(ctx context.Context, remoteID string) (models.RemoteRecord, error) {
	if remoteID == "" {
		return models.RemoteRecord{}, ErrEmptyRecordID
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.RemoteRecord{}, err
	}

	var fetched models.RecordResponse
	resp, err := req.SetResult(&fetched).Get(h.recordPath(remoteID))
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: fetch record: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteRecord{}, err
	}

	return fetched.Record, nil
}

func (h *httpRemote) ModifyRecord(ctx context.Context, record models.RemoteRecord) ([]models.RemoteRecord, []string, error) {
	if record.Identifier == "" {
		return nil, nil, ErrEmptyRecordID
	}

	req, err := h.signedRequest(ctx, models.ModifyRecordRequest{Record: record})
	if err != nil {
		return nil, nil, err
	}

	var modified models.ModifyRecordResponse
	resp, err := req.SetResult(&modified).Put(h.recordPath(record.Identifier))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: modify record: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, nil, err
	}

	return modified.Records, modified.IDs, nil
}

func (h *httpRemote) DeleteRecord(ctx context.Context, remoteID string) error {
	if remoteID == "" {
		return ErrEmptyRecordID
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete(h.recordPath(remoteID))
	if err != nil {
		return fmt.Errorf("%w: delete record: %w", ErrTransport, err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemote) FetchChanges(ctx context.Context, cursor models.Cursor) (models.ChangePage, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.ChangePage{}, err
	}
	if !cursor.IsZero() {
		req.SetQueryParam("cursor", cursor.String())
	}
	if h.pageSize > 0 {
		req.SetQueryParam("limit", strconv.Itoa(h.pageSize))
	}

	var page models.ChangePage
	resp, err := req.SetResult(&page).Get(h.zonePath("/changes"))
	if err != nil {
		return models.ChangePage{}, fmt.Errorf("%w: fetch changes: %w", ErrTransport, err)
	}

	// 410 is how the backend rejects an expired cursor.
	if resp.StatusCode() == http.StatusGone {
		h.logger.Info().Str("func", "*httpRemote.FetchChanges").Msg("change cursor rejected by remote")
		return models.ChangePage{CursorInvalidated: true}, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChangePage{}, err
	}

	return page, nil
}

func (h *httpRemote) FetchPrincipalIdentity(ctx context.Context) (string, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return "", err
	}

	var principal models.PrincipalResponse
	resp, err := req.SetResult(&principal).Get("/api/principal")
	if err != nil {
		return "", fmt.Errorf("%w: fetch principal: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return principal.Identity, nil
}

// authedRequest waits for the rate limiter and returns a request carrying
// the bearer token.
func (h *httpRemote) authedRequest(ctx context.Context) (*resty.Request, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", ErrTransport, err)
	}

	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req, nil
}

func (h *httpRemote) signedRequest(ctx context.Context, body any) (*resty.Request, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	return req.
		SetHeader("Content-Type", "application/json").
		SetHeader(utils.HashHeader, h.hasher.Sign(raw)).
		SetBody(raw), nil
}

func (h *httpRemote) zonePath(suffix string) string {
	return "/api/zones/" + h.zone + suffix
}

func (h *httpRemote) recordPath(remoteID string) string {
	return h.zonePath("/records/" + url.PathEscape(remoteID))
}
