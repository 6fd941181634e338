package ports

import (
	"context"

	"github.com/fellipeca007/GuardaFlix/internal/feed/domain"
	postdomain "github.com/fellipeca007/GuardaFlix/internal/post/domain"
)

// FeedService est le port Driving de la visibilité du feed.
// Aucun état : tout est dérivé du graphe social et des collaborateurs.
type FeedService interface {
	// VisibleAuthors = {viewer} ∪ amis acceptés sortants.
	// Une relation pending ne donne de visibilité dans AUCUN sens.
	VisibleAuthors(ctx context.Context, viewerID string) (map[string]struct{}, error)

	// FilterFeed garde les posts d'auteurs admissibles, triés
	// created_at DESC puis id DESC (déterminisme sur égalité).
	FilterFeed(posts []*postdomain.Post, visible map[string]struct{}) []*postdomain.Post

	// CanViewProfile : soi-même, ou arête acceptée viewer -> target.
	CanViewProfile(ctx context.Context, viewerID, targetID string) (bool, error)

	// BuildFeed hydrate le feed complet du viewer : posts admissibles
	// décorés de IsLiked et des métadonnées d'auteur. Tout échec de
	// lecture se propage, jamais de feed vide "par défaut".
	BuildFeed(ctx context.Context, viewerID string, limit int) ([]*domain.FeedEntry, error)

	// DistributePost pousse un nouveau post dans les timelines en
	// cache de ceux qui le verront (fan-out à l'écriture).
	DistributePost(ctx context.Context, item *domain.TimelineItem) error

	// CachedTimeline lit la timeline pré-calculée du viewer, du plus
	// récent au plus ancien. Vue rapide, potentiellement en retard sur
	// le graphe ; BuildFeed reste la lecture de référence.
	CachedTimeline(ctx context.Context, viewerID string, limit int64) ([]*domain.TimelineItem, error)
}
