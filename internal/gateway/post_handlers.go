package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	feeddomain "github.com/fellipeca007/GuardaFlix/internal/feed/domain"
)

type createPostRequest struct {
	Content   string `json:"content"`
	ImageURI  string `json:"imageUri"`
	Sentiment string `json:"sentiment"`
}

type addCommentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	post, err := h.posts.CreatePost(r.Context(), userID, req.Content, req.ImageURI, req.Sentiment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostDTO(post))
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID := mux.Vars(r)["id"]

	if err := h.posts.DeletePost(r.Context(), postID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// GetPost applique la même politique de visibilité que le feed :
// le post d'un inconnu n'est pas lisible par URL directe.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID := mux.Vars(r)["id"]

	post, err := h.posts.GetPost(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}

	allowed, err := h.feed.CanViewProfile(r.Context(), userID, post.AuthorID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !allowed {
		writeError(w, feeddomain.ErrProfileHidden)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

func (h *Handler) ListAuthorPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	authorID := mux.Vars(r)["id"]

	allowed, err := h.feed.CanViewProfile(r.Context(), userID, authorID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !allowed {
		writeError(w, feeddomain.ErrProfileHidden)
		return
	}

	posts, err := h.posts.ListByAuthor(r.Context(), authorID, queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID := mux.Vars(r)["id"]

	liked, err := h.posts.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID := mux.Vars(r)["id"]

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	comment, err := h.posts.AddComment(r.Context(), postID, userID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, commentDTO{
		ID:        comment.ID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	})
}

func (h *Handler) SavePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID := mux.Vars(r)["id"]

	if err := h.posts.SavePost(r.Context(), userID, postID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) UnsavePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	postID := mux.Vars(r)["id"]

	if err := h.posts.UnsavePost(r.Context(), userID, postID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) ListSavedPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	posts, err := h.posts.ListSaved(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}
