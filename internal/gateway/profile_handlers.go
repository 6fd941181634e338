package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	feeddomain "github.com/fellipeca007/GuardaFlix/internal/feed/domain"
	profiledomain "github.com/fellipeca007/GuardaFlix/internal/profile/domain"
)

type profilePatchRequest struct {
	DisplayName   *string `json:"displayName"`
	Handle        *string `json:"handle"`
	AvatarURI     *string `json:"avatarUri"`
	Bio           *string `json:"bio"`
	CoverURI      *string `json:"coverUri"`
	CoverPosition *string `json:"coverPosition"`
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(profile))
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req profilePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	profile, err := h.profiles.Upsert(r.Context(), userID, profiledomain.ProfilePatch{
		DisplayName:   req.DisplayName,
		Handle:        req.Handle,
		AvatarURI:     req.AvatarURI,
		Bio:           req.Bio,
		CoverURI:      req.CoverURI,
		CoverPosition: req.CoverPosition,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(profile))
}

// GetProfile expose la fiche d'un autre utilisateur, derrière la
// politique de visibilité : soi-même ou ami accepté, sinon 403.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	targetID := mux.Vars(r)["id"]

	allowed, err := h.feed.CanViewProfile(r.Context(), viewerID, targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !allowed {
		writeError(w, feeddomain.ErrProfileHidden)
		return
	}

	profile, err := h.profiles.Get(r.Context(), targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(profile))
}

func (h *Handler) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", 20)

	results, err := h.profiles.Search(r.Context(), query, userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]profileDTO, 0, len(results))
	for _, p := range results {
		dtos = append(dtos, toProfileDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
