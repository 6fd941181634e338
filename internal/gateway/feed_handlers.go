package gateway

import (
	"net/http"
	"time"
)

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entries, err := h.feed.BuildFeed(r.Context(), userID, queryInt(r, "limit", 30))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFeedEntryDTOs(entries))
}

type timelineItemDTO struct {
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetTimeline sert la vue pré-calculée (fan-out Redis) : ids seulement,
// pas d'hydratation. Le client rafraîchit via /feed pour le détail.
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.feed.CachedTimeline(r.Context(), userID, int64(queryInt(r, "limit", 30)))
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]timelineItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, timelineItemDTO{
			PostID:    item.PostID,
			AuthorID:  item.AuthorID,
			CreatedAt: item.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}
