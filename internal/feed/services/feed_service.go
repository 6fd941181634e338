package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/fellipeca007/GuardaFlix/internal/feed/domain"
	"github.com/fellipeca007/GuardaFlix/internal/feed/ports"
	postdomain "github.com/fellipeca007/GuardaFlix/internal/post/domain"
	profiledomain "github.com/fellipeca007/GuardaFlix/internal/profile/domain"
	reldomain "github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

// fanoutBatchSize : taille des paquets d'écriture vers le cache,
// pour ne pas saturer Redis sur les gros comptes.
const fanoutBatchSize = 1000

// candidateFactor : on lit plus de posts que la limite demandée car
// le filtrage de visibilité va en écarter une partie.
const candidateFactor = 5

type feedService struct {
	graph    ports.GraphClient
	posts    ports.PostClient
	profiles ports.ProfileClient
	cache    ports.TimelineCache
}

func NewFeedService(graph ports.GraphClient, posts ports.PostClient, profiles ports.ProfileClient, cache ports.TimelineCache) ports.FeedService {
	return &feedService{graph: graph, posts: posts, profiles: profiles, cache: cache}
}

func (s *feedService) VisibleAuthors(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	friends, err := s.graph.AcceptedOutgoing(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("visible authors: %w", err)
	}

	// Le viewer voit toujours ses propres posts.
	visible := make(map[string]struct{}, len(friends)+1)
	visible[viewerID] = struct{}{}
	for _, id := range friends {
		visible[id] = struct{}{}
	}
	return visible, nil
}

func (s *feedService) FilterFeed(posts []*postdomain.Post, visible map[string]struct{}) []*postdomain.Post {
	filtered := make([]*postdomain.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := visible[p.AuthorID]; ok {
			filtered = append(filtered, p)
		}
	}

	// created_at DESC ; id DESC en départage pour un ordre stable.
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].ID > filtered[j].ID
	})
	return filtered
}

func (s *feedService) CanViewProfile(ctx context.Context, viewerID, targetID string) (bool, error) {
	if viewerID == targetID {
		return true, nil
	}
	status, err := s.graph.StatusBetween(ctx, viewerID, targetID)
	if err != nil {
		return false, fmt.Errorf("can view profile: %w", err)
	}
	return status == reldomain.StatusAccepted, nil
}

func (s *feedService) BuildFeed(ctx context.Context, viewerID string, limit int) ([]*domain.FeedEntry, error) {
	visible, err := s.VisibleAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.posts.ListRecent(ctx, limit*candidateFactor)
	if err != nil {
		return nil, fmt.Errorf("build feed: list posts: %w", err)
	}

	filtered := s.FilterFeed(candidates, visible)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	if len(filtered) == 0 {
		return []*domain.FeedEntry{}, nil
	}

	// Likes du viewer en un seul appel batch.
	postIDs := make([]string, len(filtered))
	for i, p := range filtered {
		postIDs[i] = p.ID
	}
	liked, err := s.posts.LikedSet(ctx, viewerID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("build feed: liked set: %w", err)
	}

	// Métadonnées d'auteur, dédupliquées par id.
	authors := make(map[string]domain.AuthorMeta)
	entries := make([]*domain.FeedEntry, 0, len(filtered))
	for _, p := range filtered {
		meta, ok := authors[p.AuthorID]
		if !ok {
			meta, err = s.authorMeta(ctx, p.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[p.AuthorID] = meta
		}
		entries = append(entries, &domain.FeedEntry{
			Post:    *p,
			Author:  meta,
			IsLiked: liked[p.ID],
		})
	}
	return entries, nil
}

func (s *feedService) DistributePost(ctx context.Context, item *domain.TimelineItem) error {
	slog.Info("📢 Fan-out starting", "post_id", item.PostID, "author_id", item.AuthorID)

	// Destinataires = ceux dont l'auteur est un ami accepté sortant,
	// c'est-à-dire les arêtes acceptées ENTRANTES de l'auteur,
	// plus l'auteur lui-même.
	followers, err := s.graph.AcceptedIncoming(ctx, item.AuthorID)
	if err != nil {
		return fmt.Errorf("fan-out: %w", err)
	}
	recipients := append(followers, item.AuthorID)

	for i := 0; i < len(recipients); i += fanoutBatchSize {
		end := min(i+fanoutBatchSize, len(recipients))
		if err := s.cache.AddToTimelines(ctx, recipients[i:end], item); err != nil {
			slog.Error("❌ Failed to push batch to timeline cache", "error", err, "batch_start", i)
			continue
		}
	}

	slog.Info("✅ Fan-out complete", "post_id", item.PostID, "recipients", len(recipients))
	return nil
}

func (s *feedService) CachedTimeline(ctx context.Context, viewerID string, limit int64) ([]*domain.TimelineItem, error) {
	items, err := s.cache.GetTimeline(ctx, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("cached timeline: %w", err)
	}
	return items, nil
}

func (s *feedService) authorMeta(ctx context.Context, authorID string) (domain.AuthorMeta, error) {
	profile, err := s.profiles.Get(ctx, authorID)
	if err != nil {
		// Un auteur sans fiche profil reste affichable (id nu) ;
		// toute autre erreur de lecture se propage.
		if errors.Is(err, profiledomain.ErrProfileNotFound) {
			return domain.AuthorMeta{ID: authorID}, nil
		}
		return domain.AuthorMeta{}, fmt.Errorf("build feed: author meta: %w", err)
	}
	return domain.AuthorMeta{
		ID:          profile.ID,
		DisplayName: profile.DisplayName,
		Handle:      profile.Handle,
		AvatarURI:   profile.AvatarURI,
	}, nil
}
