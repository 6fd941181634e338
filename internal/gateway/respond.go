package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	feeddomain "github.com/fellipeca007/GuardaFlix/internal/feed/domain"
	identitydomain "github.com/fellipeca007/GuardaFlix/internal/identity/domain"
	postdomain "github.com/fellipeca007/GuardaFlix/internal/post/domain"
	profiledomain "github.com/fellipeca007/GuardaFlix/internal/profile/domain"
	reldomain "github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("❌ Failed to encode response", "error", err)
		}
	}
}

// writeError traduit les erreurs du domaine en statuts HTTP.
// Tout ce qui n'est pas une erreur métier connue devient un 500 opaque.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, reldomain.ErrSelfFollow),
		errors.Is(err, reldomain.ErrEmptyUserID),
		errors.Is(err, postdomain.ErrEmptyContent),
		errors.Is(err, profiledomain.ErrInvalidHandle),
		errors.Is(err, identitydomain.ErrInvalidEmail),
		errors.Is(err, identitydomain.ErrInvalidUsername):
		status = http.StatusBadRequest

	case errors.Is(err, identitydomain.ErrInvalidToken),
		errors.Is(err, identitydomain.ErrInvalidCredentials):
		status = http.StatusUnauthorized

	case errors.Is(err, postdomain.ErrNotOwner),
		errors.Is(err, feeddomain.ErrProfileHidden):
		status = http.StatusForbidden

	case errors.Is(err, reldomain.ErrUnknownTarget),
		errors.Is(err, reldomain.ErrNoSuchRequest),
		errors.Is(err, postdomain.ErrPostNotFound),
		errors.Is(err, profiledomain.ErrProfileNotFound),
		errors.Is(err, identitydomain.ErrUserNotFound):
		status = http.StatusNotFound

	case errors.Is(err, reldomain.ErrDuplicateRequest),
		errors.Is(err, identitydomain.ErrEmailTaken):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.Error("❌ Unhandled error in gateway", "error", err)
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
