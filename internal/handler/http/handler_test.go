package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

const (
	testHashKey = "hash-key"
	testZone    = "notes"
)

// testBackend — поднятый httptest-сервер поверх in-memory репозитория.
type testBackend struct {
	server   *httptest.Server
	services *service.Services
	hasher   *utils.Hasher
	token    string
}

func newTestConfig(hashKey string) *config.ServerConfig {
	return &config.ServerConfig{
		App: config.ServerApp{
			HashKey:       hashKey,
			TokenSignKey:  "sign-key",
			TokenIssuer:   "sync-backend",
			TokenDuration: time.Hour,
		},
		RequestTimeout: 5 * time.Second,
		PageSize:       50,
		FeedEpoch:      "1",
	}
}

func newTestBackend(t *testing.T, hashKey string) *testBackend {
	t.Helper()

	cfg := newTestConfig(hashKey)
	services, err := service.NewServices(store.NewMemoryRecordRepository(), cfg, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(services, cfg, logger.Nop()).Init())
	t.Cleanup(srv.Close)

	token, err := services.AuthService.CreateToken(t.Context(), "alice")
	require.NoError(t, err)

	return &testBackend{
		server:   srv,
		services: services,
		hasher:   utils.NewHasher(hashKey),
		token:    token.SignedString,
	}
}

// do отправляет запрос; тело сериализуется в JSON и подписывается.
func (b *testBackend) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(t.Context(), method, b.server.URL+path, reader)
	require.NoError(t, err)
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(utils.HashHeader, b.hasher.Sign(raw))
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}

	h := NewHandler(svc, newTestConfig("k"), logger.Nop())
	assert.Same(t, svc, h.services)
	assert.NotNil(t, h.hasher)

	h = NewHandler(svc, newTestConfig(""), logger.Nop())
	assert.Nil(t, h.hasher, "без ключа подпись не проверяется")
}

// ─────────────────────────────────────────────
// Records API
// ─────────────────────────────────────────────

func TestRecordsAPI_CRUD(t *testing.T) {
	b := newTestBackend(t, testHashKey)

	resp := b.do(t, http.MethodPut, "/api/zones/"+testZone, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = b.do(t, http.MethodPost, "/api/zones/"+testZone+"/records", models.CreateRecordRequest{
		Payload: models.Payload{"title": "hi"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.RecordResponse](t, resp).Record
	require.NotEmpty(t, created.Identifier)

	resp = b.do(t, http.MethodGet, "/api/zones/"+testZone+"/records/"+created.Identifier, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[models.RecordResponse](t, resp).Record
	assert.Equal(t, "hi", got.Payload["title"])
	assert.True(t, got.ModificationDate.Equal(created.ModificationDate))

	resp = b.do(t, http.MethodPut, "/api/zones/"+testZone+"/records/"+created.Identifier, models.ModifyRecordRequest{
		Record: models.RemoteRecord{Identifier: "ignored", Payload: models.Payload{"title": "bye"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	modified := decode[models.ModifyRecordResponse](t, resp)
	require.Len(t, modified.Records, 1)
	assert.Equal(t, []string{created.Identifier}, modified.IDs)
	assert.True(t, modified.Records[0].ModificationDate.After(created.ModificationDate))

	resp = b.do(t, http.MethodDelete, "/api/zones/"+testZone+"/records/"+created.Identifier, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = b.do(t, http.MethodGet, "/api/zones/"+testZone+"/records/"+created.Identifier, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, decode[models.ErrorResponse](t, resp).Error)
}

func TestRecordsAPI_Errors(t *testing.T) {
	b := newTestBackend(t, testHashKey)
	require.Equal(t, http.StatusNoContent, b.do(t, http.MethodPut, "/api/zones/"+testZone, nil).StatusCode)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{name: "неизвестная зона", method: http.MethodPost, path: "/api/zones/other/records", body: models.CreateRecordRequest{Payload: models.Payload{}}, wantStatus: http.StatusNotFound},
		{name: "некорректное имя зоны", method: http.MethodPut, path: "/api/zones/bad%20zone", wantStatus: http.StatusBadRequest},
		{name: "нет полезной нагрузки", method: http.MethodPost, path: "/api/zones/" + testZone + "/records", body: models.CreateRecordRequest{}, wantStatus: http.StatusBadRequest},
		{name: "изменение несуществующей", method: http.MethodPut, path: "/api/zones/" + testZone + "/records/nope", body: models.ModifyRecordRequest{Record: models.RemoteRecord{Payload: models.Payload{}}}, wantStatus: http.StatusNotFound},
		{name: "удаление несуществующей", method: http.MethodDelete, path: "/api/zones/" + testZone + "/records/nope", wantStatus: http.StatusNotFound},
		{name: "некорректный limit", method: http.MethodGet, path: "/api/zones/" + testZone + "/changes?limit=abc", wantStatus: http.StatusBadRequest},
		{name: "неизвестный метод", method: http.MethodPatch, path: "/api/principal", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := b.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRecordsAPI_IntegrityCheck(t *testing.T) {
	b := newTestBackend(t, testHashKey)
	require.Equal(t, http.StatusNoContent, b.do(t, http.MethodPut, "/api/zones/"+testZone, nil).StatusCode)

	body := []byte(`{"payload":{"title":"x"}}`)
	for name, signature := range map[string]string{
		"без подписи":   "",
		"чужая подпись": utils.NewHasher("other").Sign(body),
		"не hex":        "zz",
	} {
		t.Run(name, func(t *testing.T) {
			req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, b.server.URL+"/api/zones/"+testZone+"/records", bytes.NewReader(body))
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+b.token)
			if signature != "" {
				req.Header.Set(utils.HashHeader, signature)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRecordsAPI_Changes(t *testing.T) {
	b := newTestBackend(t, testHashKey)
	require.Equal(t, http.StatusNoContent, b.do(t, http.MethodPut, "/api/zones/"+testZone, nil).StatusCode)

	for _, title := range []string{"a", "b", "c"} {
		resp := b.do(t, http.MethodPost, "/api/zones/"+testZone+"/records", models.CreateRecordRequest{Payload: models.Payload{"title": title}})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := b.do(t, http.MethodGet, "/api/zones/"+testZone+"/changes?limit=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[models.ChangePage](t, resp)
	assert.Len(t, page.ChangedRecords, 2)
	assert.True(t, page.MorePages)
	require.False(t, page.NewCursor.IsZero())

	resp = b.do(t, http.MethodGet, "/api/zones/"+testZone+"/changes?cursor="+page.NewCursor.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = decode[models.ChangePage](t, resp)
	assert.Len(t, page.ChangedRecords, 1)
	assert.False(t, page.MorePages)

	t.Run("отклонённый курсор отвечает 410", func(t *testing.T) {
		foreign := models.Cursor(`{"e":"0","s":1}`)
		resp := b.do(t, http.MethodGet, "/api/zones/"+testZone+"/changes?cursor="+foreign.String(), nil)
		require.Equal(t, http.StatusGone, resp.StatusCode)
		assert.True(t, decode[models.ChangePage](t, resp).CursorInvalidated)
	})

	t.Run("нечитаемый курсор отвечает 410", func(t *testing.T) {
		resp := b.do(t, http.MethodGet, "/api/zones/"+testZone+"/changes?cursor=%25%25", nil)
		require.Equal(t, http.StatusGone, resp.StatusCode)
		assert.True(t, decode[models.ChangePage](t, resp).CursorInvalidated)
	})
}

// ─────────────────────────────────────────────
// Auth, principal, version
// ─────────────────────────────────────────────

func TestRecordsAPI_Auth(t *testing.T) {
	b := newTestBackend(t, testHashKey)

	resp := b.do(t, http.MethodGet, "/api/principal", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", decode[models.PrincipalResponse](t, resp).Identity)

	tests := []struct {
		name   string
		header string
	}{
		{name: "нет заголовка", header: ""},
		{name: "нет схемы", header: "token"},
		{name: "мусорный токен", header: "Bearer garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, b.server.URL+"/api/principal", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRecordsAPI_VersionIsPublic(t *testing.T) {
	b := newTestBackend(t, testHashKey)
	b.token = ""

	resp := b.do(t, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	info := decode[models.AppBuildInfo](t, resp)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "N/A", info.Commit)
	assert.NotEmpty(t, resp.Header.Get(traceIDHeader))
}
