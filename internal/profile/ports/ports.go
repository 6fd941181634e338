package ports

import (
	"context"

	"github.com/fellipeca007/GuardaFlix/internal/profile/domain"
)

// ProfileService est le port Driving du magasin de profils.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)

	// Upsert applique un patch partiel ; crée la fiche si absente.
	Upsert(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error)

	// Search filtre par display_name/handle (ilike), en excluant selfID.
	Search(ctx context.Context, query, selfID string, limit int) ([]*domain.Profile, error)

	// Exists et ListCandidates servent le graphe social
	// (résolution de cible, candidats de suggestion).
	Exists(ctx context.Context, userID string) (bool, error)
	ListCandidates(ctx context.Context, excludeID string, limit int) ([]string, error)
}

// ProfileRepository est le port Driven.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
	Search(ctx context.Context, query, excludeID string, limit int) ([]*domain.Profile, error)
	Exists(ctx context.Context, userID string) (bool, error)
	ListIDs(ctx context.Context, excludeID string, limit int) ([]string, error)
}
