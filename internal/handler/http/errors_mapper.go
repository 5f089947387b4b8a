package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:       http.StatusBadRequest,
	service.ErrInvalidZone:               http.StatusBadRequest,
	service.ErrUnknownNotificationReason: http.StatusBadRequest,
	service.ErrEmptyRecordID:             http.StatusBadRequest,
	service.ErrNoPrincipal:               http.StatusUnauthorized,
	service.ErrTokenIsExpired:            http.StatusUnauthorized,
	service.ErrInvalidToken:              http.StatusUnauthorized,
	service.ErrZoneNotFound:              http.StatusNotFound,

	store.ErrRecordNotFound:    http.StatusNotFound,
	store.ErrZoneNotFound:      http.StatusNotFound,
	store.ErrDuplicateRemoteID: http.StatusConflict,
	store.ErrRecordNotStored:   http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrDecodingPayload:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
