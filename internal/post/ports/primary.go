package ports

import (
	"context"

	"github.com/fellipeca007/GuardaFlix/internal/post/domain"
)

// PostService est le port Driving du magasin de publications.
type PostService interface {
	CreatePost(ctx context.Context, authorID, content, imageURI, sentiment string) (*domain.Post, error)

	// DeletePost échoue avec ErrNotOwner si actorID n'est pas l'auteur.
	DeletePost(ctx context.Context, postID, actorID string) error

	GetPost(ctx context.Context, postID string) (*domain.Post, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Post, error)

	// ToggleLike inverse le like du user et renvoie le nouvel état.
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)

	// LikedSet renvoie, parmi postIDs, ceux que userID a likés.
	LikedSet(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)

	AddComment(ctx context.Context, postID, authorID, content string) (*domain.Comment, error)

	// Publications sauvegardées ("voir plus tard").
	SavePost(ctx context.Context, userID, postID string) error
	UnsavePost(ctx context.Context, userID, postID string) error
	ListSaved(ctx context.Context, userID string) ([]*domain.Post, error)
}
