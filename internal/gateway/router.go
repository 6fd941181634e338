package gateway

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter assemble le routage et la chaîne de middlewares :
// OTEL -> CORS -> Auth -> handlers.
func NewRouter(h *Handler, validator TokenValidator) http.Handler {
	r := mux.NewRouter()

	// Public
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	// Compte
	r.HandleFunc("/auth/password", h.ChangePassword).Methods(http.MethodPut)

	// Profils
	r.HandleFunc("/me", h.GetMyProfile).Methods(http.MethodGet)
	r.HandleFunc("/me", h.UpdateMyProfile).Methods(http.MethodPut)
	r.HandleFunc("/profiles/search", h.SearchProfiles).Methods(http.MethodGet)
	r.HandleFunc("/profiles/{id}", h.GetProfile).Methods(http.MethodGet)
	r.HandleFunc("/profiles/{id}/posts", h.ListAuthorPosts).Methods(http.MethodGet)
	r.HandleFunc("/profiles/{id}/followers/count", h.CountFollowers).Methods(http.MethodGet)

	// Graphe social
	r.HandleFunc("/relationships/requests", h.ListPendingRequests).Methods(http.MethodGet)
	r.HandleFunc("/relationships/friends", h.ListFriends).Methods(http.MethodGet)
	r.HandleFunc("/relationships/suggestions", h.Suggestions).Methods(http.MethodGet)
	r.HandleFunc("/relationships/{id}/follow", h.Follow).Methods(http.MethodPost)
	r.HandleFunc("/relationships/{id}/accept", h.AcceptRequest).Methods(http.MethodPost)
	r.HandleFunc("/relationships/{id}/reject", h.RejectRequest).Methods(http.MethodPost)
	r.HandleFunc("/relationships/{id}/status", h.RelationStatus).Methods(http.MethodGet)
	r.HandleFunc("/relationships/{id}", h.Unfollow).Methods(http.MethodDelete)

	// Publications
	r.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/saved", h.ListSavedPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)
	r.HandleFunc("/posts/{id}/like", h.ToggleLike).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/comments", h.AddComment).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/save", h.SavePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/save", h.UnsavePost).Methods(http.MethodDelete)

	// Feed
	r.HandleFunc("/feed", h.GetFeed).Methods(http.MethodGet)
	r.HandleFunc("/feed/timeline", h.GetTimeline).Methods(http.MethodGet)

	// Médias
	r.HandleFunc("/media", h.UploadMedia).Methods(http.MethodPost)

	// Chaîne de Middlewares HTTP
	var handler http.Handler = r

	// A. Auth (Injecte UserID)
	handler = AuthMiddleware(validator)(handler)

	// B. CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:19006"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "baggage", "sentry-trace"},
		AllowCredentials: true,
	})
	handler = c.Handler(handler)

	// C. OTEL HTTP (Racine)
	handler = otelhttp.NewHandler(handler, "HTTP-Gateway", otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
		return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
	}))

	return handler
}
