package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

func (h *Handler) ensureZone(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	zone := chi.URLParam(r, "zone")

	if err := h.services.RecordService.EnsureZone(r.Context(), zone); err != nil {
		log.Err(err).Str("func", "*Handler.ensureZone").Str("zone", zone).Msg("error ensuring zone")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	zone := chi.URLParam(r, "zone")

	var req models.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate(r.Context(), req); err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Msg("invalid record")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.services.RecordService.CreateRecord(r.Context(), zone, req.Payload)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Str("zone", zone).Msg("error creating record")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	_, _ = utils.WriteJSON(w, models.RecordResponse{Record: record}, http.StatusCreated)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	zone, id := chi.URLParam(r, "zone"), chi.URLParam(r, "id")

	record, err := h.services.RecordService.GetRecord(r.Context(), zone, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRecord").Str("remote_id", id).Msg("error getting record")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	_, _ = utils.WriteJSON(w, models.RecordResponse{Record: record}, http.StatusOK)
}

func (h *Handler) modifyRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	zone, id := chi.URLParam(r, "zone"), chi.URLParam(r, "id")

	var req models.ModifyRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.modifyRecord").Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	// the path wins over the body
	req.Record.Identifier = id
	if err := h.validator.Validate(r.Context(), req); err != nil {
		log.Err(err).Str("func", "*Handler.modifyRecord").Msg("invalid record")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.services.RecordService.ModifyRecord(r.Context(), zone, req.Record)
	if err != nil {
		log.Err(err).Str("func", "*Handler.modifyRecord").Str("remote_id", id).Msg("error modifying record")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	resp := models.ModifyRecordResponse{Records: records, IDs: make([]string, 0, len(records))}
	for _, rec := range records {
		resp.IDs = append(resp.IDs, rec.Identifier)
	}
	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	zone, id := chi.URLParam(r, "zone"), chi.URLParam(r, "id")

	if err := h.services.RecordService.DeleteRecord(r.Context(), zone, id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteRecord").Str("remote_id", id).Msg("error deleting record")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// changes serves one page of the zone's change feed. A rejected cursor is
// answered with 410 and an invalidated page body.
func (h *Handler) changes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	zone := chi.URLParam(r, "zone")
	query := r.URL.Query()

	var limit int
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.WriteError(w, ErrInvalidLimit.Error(), http.StatusBadRequest)
			return
		}
		limit = n
	}

	cursor, err := models.ParseCursor(query.Get("cursor"))
	if err != nil {
		log.Info().Err(err).Str("func", "*Handler.changes").Msg("undecodable cursor")
		_, _ = utils.WriteJSON(w, models.ChangePage{CursorInvalidated: true}, http.StatusGone)
		return
	}

	page, err := h.services.RecordService.Changes(r.Context(), zone, cursor, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.changes").Str("zone", zone).Msg("error reading change feed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}
	if page.CursorInvalidated {
		_, _ = utils.WriteJSON(w, page, http.StatusGone)
		return
	}

	_, _ = utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getPrincipal(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	_, _ = utils.WriteJSON(w, models.PrincipalResponse{Identity: principal}, http.StatusOK)
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	if h.services.AppInfoService == nil {
		utils.WriteError(w, "version is not available", http.StatusServiceUnavailable)
		return
	}

	_, _ = utils.WriteJSON(w, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}
