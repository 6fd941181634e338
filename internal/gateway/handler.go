package gateway

import (
	"net/http"

	feedports "github.com/fellipeca007/GuardaFlix/internal/feed/ports"
	identityports "github.com/fellipeca007/GuardaFlix/internal/identity/ports"
	mediaports "github.com/fellipeca007/GuardaFlix/internal/media/ports"
	postports "github.com/fellipeca007/GuardaFlix/internal/post/ports"
	profileports "github.com/fellipeca007/GuardaFlix/internal/profile/ports"
	relports "github.com/fellipeca007/GuardaFlix/internal/relationship/ports"
)

// Handler est l'adaptateur primaire HTTP : il traduit les requêtes
// JSON vers les ports Driving des contextes, rien de plus.
type Handler struct {
	identity  identityports.IdentityService
	profiles  profileports.ProfileService
	relations relports.RelationshipService
	posts     postports.PostService
	feed      feedports.FeedService
	blobs     mediaports.BlobStore
}

func NewHandler(
	identity identityports.IdentityService,
	profiles profileports.ProfileService,
	relations relports.RelationshipService,
	posts postports.PostService,
	feed feedports.FeedService,
	blobs mediaports.BlobStore,
) *Handler {
	return &Handler{
		identity:  identity,
		profiles:  profiles,
		relations: relations,
		posts:     posts,
		feed:      feed,
		blobs:     blobs,
	}
}

// requireUser renvoie l'id injecté par le middleware d'auth, ou
// termine la requête en 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := ForContext(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return "", false
	}
	return userID, true
}
