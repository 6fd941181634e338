package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fellipeca007/GuardaFlix/internal/post/domain"
	"github.com/fellipeca007/GuardaFlix/internal/post/ports"
)

type postService struct {
	repo      ports.PostRepository
	publisher ports.EventPublisher
}

func NewPostService(repo ports.PostRepository, publisher ports.EventPublisher) ports.PostService {
	return &postService{repo: repo, publisher: publisher}
}

func (s *postService) CreatePost(ctx context.Context, authorID, content, imageURI, sentiment string) (*domain.Post, error) {
	post, err := domain.NewPost(authorID, content, imageURI, sentiment)
	if err != nil {
		return nil, err
	}

	// 1. Sauvegarde DB (source de vérité).
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("repository save failed: %w", err)
	}

	// 2. Publication de l'événement (déclencheur du fan-out).
	// Best effort : la donnée est sauvée, on ne fait pas échouer la
	// requête si le broker tousse.
	if err := s.publisher.PublishPostCreated(ctx, post); err != nil {
		slog.Error("❌ Failed to publish post.created", "post_id", post.ID, "error", err)
	}

	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, actorID string) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	// Seul l'auteur supprime.
	if post.AuthorID != actorID {
		return domain.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	_ = s.publisher.PublishPostDeleted(ctx, postID)
	return nil
}

func (s *postService) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, postID)
}

func (s *postService) ListRecent(ctx context.Context, limit int) ([]*domain.Post, error) {
	return s.repo.ListRecent(ctx, limit)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Post, error) {
	return s.repo.ListByAuthor(ctx, authorID, limit)
}

func (s *postService) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	return s.repo.ToggleLike(ctx, postID, userID)
}

func (s *postService) LikedSet(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	if len(postIDs) == 0 {
		return map[string]bool{}, nil
	}
	return s.repo.LikedSet(ctx, userID, postIDs)
}

func (s *postService) AddComment(ctx context.Context, postID, authorID, content string) (*domain.Comment, error) {
	// Le post doit exister : pas de commentaire orphelin.
	if _, err := s.repo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := domain.NewComment(postID, authorID, content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

func (s *postService) SavePost(ctx context.Context, userID, postID string) error {
	if _, err := s.repo.FindByID(ctx, postID); err != nil {
		return err
	}
	return s.repo.SavePost(ctx, userID, postID)
}

func (s *postService) UnsavePost(ctx context.Context, userID, postID string) error {
	return s.repo.UnsavePost(ctx, userID, postID)
}

func (s *postService) ListSaved(ctx context.Context, userID string) ([]*domain.Post, error) {
	return s.repo.ListSaved(ctx, userID)
}
