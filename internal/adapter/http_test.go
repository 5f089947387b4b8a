// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHashKey = "testhashkey"
	testToken   = "test-token"
)

// newTestRemote создаёт httpRemote, направленный на тестовый сервер
func newTestRemote(t *testing.T, serverURL string) *httpRemote {
	t.Helper()
	cfg := config.ClientAdapter{
		HTTPAddress: serverURL,
		Zone:        "notes",
		Token:       testToken,
		PageSize:    50,
	}

	r, err := NewHTTPRemote(cfg, config.ClientApp{HashKey: testHashKey}, logger.Nop())
	require.NoError(t, err)
	return r.(*httpRemote)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPRemote_InvalidConfig(t *testing.T) {
	_, err := NewHTTPRemote(config.ClientAdapter{Zone: "notes"}, config.ClientApp{}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = NewHTTPRemote(config.ClientAdapter{HTTPAddress: "localhost:8080"}, config.ClientApp{}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL(" localhost:8080/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	got, err = normalizeBaseURL("https://sync.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://sync.example.com", got)

	_, err = normalizeBaseURL("")
	assert.Error(t, err)
}

// ── Setup ───────────────────────────────────────────────────────────────────

func TestSetup_PutsZone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/zones/notes", r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestRemote(t, srv.URL).Setup(context.Background()))
}

// ── CreateRecord ────────────────────────────────────────────────────────────

func TestCreateRecord_SignsBodyAndReturnsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/zones/notes/records", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.True(t, utils.NewHasher(testHashKey).Verify(body, r.Header.Get(utils.HashHeader)))

		var req models.CreateRecordRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "hi", req.Payload["string"])

		writeJSON(t, w, http.StatusCreated, models.RecordResponse{Record: models.RemoteRecord{
			Identifier:       "R1",
			ModificationDate: time.Now().UTC(),
			Payload:          req.Payload,
		}})
	}))
	defer srv.Close()

	id, err := newTestRemote(t, srv.URL).CreateRecord(context.Background(), models.Payload{"string": "hi", "int": 1})
	require.NoError(t, err)
	assert.Equal(t, "R1", id)
}

func TestCreateRecord_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).CreateRecord(context.Background(), models.Payload{})
	assert.ErrorIs(t, err, ErrServerUnavailable)
}

func TestCreateRecord_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestRemote(t, url).CreateRecord(context.Background(), models.Payload{})
	assert.ErrorIs(t, err, ErrTransport)
}

// ── FetchRecord / ModifyRecord / DeleteRecord ───────────────────────────────

func TestFetchRecord_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/zones/notes/records/R404", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"record not found"}`))
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).FetchRecord(context.Background(), "R404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchRecord_EmptyID(t *testing.T) {
	r := newTestRemote(t, "http://localhost:1")
	_, err := r.FetchRecord(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyRecordID)
}

func TestModifyRecord_Success(t *testing.T) {
	modified := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/zones/notes/records/R1", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(utils.HashHeader))

		var req models.ModifyRecordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		req.Record.ModificationDate = modified

		writeJSON(t, w, http.StatusOK, models.ModifyRecordResponse{
			Records: []models.RemoteRecord{req.Record},
			IDs:     []string{req.Record.Identifier},
		})
	}))
	defer srv.Close()

	records, ids, err := newTestRemote(t, srv.URL).ModifyRecord(context.Background(), models.RemoteRecord{
		Identifier: "R1",
		Payload:    models.Payload{"string": "bye"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"R1"}, ids)
	assert.True(t, records[0].ModificationDate.Equal(modified))
}

func TestDeleteRecord(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestRemote(t, srv.URL).DeleteRecord(context.Background(), "R1"))
	assert.Equal(t, 1, calls)
}

// ── FetchChanges ────────────────────────────────────────────────────────────

func TestFetchChanges_PassesCursorAndDecodesPage(t *testing.T) {
	cursor := models.Cursor(`{"epoch":"e","seq":3}`)
	next := models.Cursor(`{"epoch":"e","seq":5}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/zones/notes/changes", r.URL.Path)
		assert.Equal(t, cursor.String(), r.URL.Query().Get("cursor"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		writeJSON(t, w, http.StatusOK, models.ChangePage{
			ChangedRecords:     []models.RemoteRecord{{Identifier: "R1", Payload: models.Payload{"int": 2}}},
			DeletedIdentifiers: []string{"R2"},
			NewCursor:          next,
			MorePages:          true,
		})
	}))
	defer srv.Close()

	page, err := newTestRemote(t, srv.URL).FetchChanges(context.Background(), cursor)
	require.NoError(t, err)
	require.Len(t, page.ChangedRecords, 1)
	assert.Equal(t, "R1", page.ChangedRecords[0].Identifier)
	assert.Equal(t, []string{"R2"}, page.DeletedIdentifiers)
	assert.Equal(t, next, page.NewCursor)
	assert.True(t, page.MorePages)
	assert.False(t, page.CursorInvalidated)
}

func TestFetchChanges_NilCursorOmitsParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("cursor"))
		writeJSON(t, w, http.StatusOK, models.ChangePage{})
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).FetchChanges(context.Background(), nil)
	require.NoError(t, err)
}

func TestFetchChanges_GoneMeansInvalidated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer srv.Close()

	page, err := newTestRemote(t, srv.URL).FetchChanges(context.Background(), models.Cursor("old"))
	require.NoError(t, err)
	assert.True(t, page.CursorInvalidated)
}

// ── FetchPrincipalIdentity ──────────────────────────────────────────────────

func TestFetchPrincipalIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/principal", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.PrincipalResponse{Identity: "alice"})
	}))
	defer srv.Close()

	id, err := newTestRemote(t, srv.URL).FetchPrincipalIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", id)
}

func TestFetchPrincipalIdentity_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).FetchPrincipalIdentity(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}
