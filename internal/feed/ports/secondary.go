package ports

import (
	"context"

	"github.com/fellipeca007/GuardaFlix/internal/feed/domain"
	postdomain "github.com/fellipeca007/GuardaFlix/internal/post/domain"
	profiledomain "github.com/fellipeca007/GuardaFlix/internal/profile/domain"
	reldomain "github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

// GraphClient : la surface de requête du graphe social dont le feed a
// besoin. Rien de plus.
type GraphClient interface {
	AcceptedOutgoing(ctx context.Context, userID string) ([]string, error)
	AcceptedIncoming(ctx context.Context, userID string) ([]string, error)
	StatusBetween(ctx context.Context, aID, bID string) (reldomain.Status, error)
}

// PostClient : lectures sur le magasin de publications.
type PostClient interface {
	ListRecent(ctx context.Context, limit int) ([]*postdomain.Post, error)
	LikedSet(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

// ProfileClient : métadonnées d'affichage des auteurs.
type ProfileClient interface {
	Get(ctx context.Context, userID string) (*profiledomain.Profile, error)
}

// TimelineCache : cache de timelines par utilisateur (fan-out).
type TimelineCache interface {
	// AddToTimelines ajoute l'item aux timelines de PLUSIEURS users (batch).
	AddToTimelines(ctx context.Context, userIDs []string, item *domain.TimelineItem) error

	// GetTimeline lit les items bruts, du plus récent au plus ancien.
	GetTimeline(ctx context.Context, userID string, limit int64) ([]*domain.TimelineItem, error)
}
