package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
)

// verifyBody checks the HashSHA256 header against an HMAC of the raw body
// and restores the body for the next handler. A nil hasher lets everything
// through.
func verifyBody(hasher *utils.Hasher, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasher == nil {
			next.ServeHTTP(w, r)
			return
		}
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "verifyBody").Msg("failed to read request body")
			utils.WriteError(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !hasher.Verify(body, r.Header.Get(utils.HashHeader)) {
			log.Error().Str("func", "verifyBody").
				Str("hash from request", r.Header.Get(utils.HashHeader)).
				Msg("hashes are not equal")
			utils.WriteError(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) verifyBodyHash(next http.Handler) http.Handler {
	return verifyBody(h.hasher, next)
}
