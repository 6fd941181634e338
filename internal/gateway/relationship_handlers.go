package gateway

import (
	"net/http"

	"github.com/gorilla/mux"

	reldomain "github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	targetID := mux.Vars(r)["id"]

	if err := h.relations.Follow(r.Context(), userID, targetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": string(reldomain.StatusPending)})
}

func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	targetID := mux.Vars(r)["id"]

	if err := h.relations.Unfollow(r.Context(), userID, targetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	requesterID := mux.Vars(r)["id"]

	if err := h.relations.AcceptRequest(r.Context(), userID, requesterID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(reldomain.StatusAccepted)})
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	requesterID := mux.Vars(r)["id"]

	if err := h.relations.RejectRequest(r.Context(), userID, requesterID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// RelationStatus lit le statut dans UN sens : user -> cible.
func (h *Handler) RelationStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	targetID := mux.Vars(r)["id"]

	status, err := h.relations.StatusBetween(r.Context(), userID, targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	dir := reldomain.DirectionOutgoing
	if r.URL.Query().Get("dir") == "incoming" {
		dir = reldomain.DirectionIncoming
	}

	ids, err := h.relations.ListAccepted(r.Context(), userID, dir)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"userIds": ids})
}

func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	ids, err := h.relations.ListPending(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"userIds": ids})
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	ids, err := h.relations.Suggestions(r.Context(), userID, queryInt(r, "limit", 10))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"userIds": ids})
}

func (h *Handler) CountFollowers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	targetID := mux.Vars(r)["id"]

	count, err := h.relations.CountFollowers(r.Context(), targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}
