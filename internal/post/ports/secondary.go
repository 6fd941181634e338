package ports

import (
	"context"

	"github.com/fellipeca007/GuardaFlix/internal/post/domain"
)

// PostRepository est le port Driven (persistance des publications).
type PostRepository interface {
	Save(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, postID string) (*domain.Post, error)
	Delete(ctx context.Context, postID string) error

	ListRecent(ctx context.Context, limit int) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Post, error)

	// ToggleLike insère ou retire le like (idempotent par état) et
	// renvoie true si le post est liké après l'appel.
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	LikedSet(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)

	AddComment(ctx context.Context, comment *domain.Comment) error

	SavePost(ctx context.Context, userID, postID string) error
	UnsavePost(ctx context.Context, userID, postID string) error
	ListSaved(ctx context.Context, userID string) ([]*domain.Post, error)
}

// EventPublisher notifie le reste du système (fan-out feed, etc.).
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, post *domain.Post) error
	PublishPostDeleted(ctx context.Context, postID string) error
}
