package ports

import (
	"context"

	"github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

// EdgeStore est le port Driven (persistance du graphe).
// La contrainte d'unicité sur (follower_id, following_id) appartient au
// store : c'est elle qui arbitre les écritures concurrentes, pas un
// verrou applicatif.
type EdgeStore interface {
	// Insert ajoute une arête. ErrDuplicateRequest si la paire existe
	// déjà (quel que soit son statut).
	Insert(ctx context.Context, edge domain.Edge) error

	// GetStatus lit le statut de l'arête (follower -> following).
	// StatusNone si l'arête est absente.
	GetStatus(ctx context.Context, followerID, followingID string) (domain.Status, error)

	// Accept fait la double écriture d'acceptation :
	// (requester -> accepter) pending devient accepted, puis l'arête
	// inverse est upsertée à accepted. L'upsert inverse est idempotent
	// et sans danger à rejouer. ErrNoSuchRequest si rien n'est pending.
	Accept(ctx context.Context, requesterID, accepterID string) error

	// DeletePending supprime l'arête (follower -> following) uniquement
	// si elle est pending. No-op si absente.
	DeletePending(ctx context.Context, followerID, followingID string) error

	// DeleteBoth supprime les arêtes dans les deux sens. No-op si absentes.
	DeleteBoth(ctx context.Context, aID, bID string) error

	// ListCounterparts renvoie les ids en face des arêtes de userID
	// dans le sens et le statut demandés.
	ListCounterparts(ctx context.Context, userID string, dir domain.Direction, status domain.Status) ([]string, error)

	// Neighbors renvoie tous les ids liés à userID par une arête,
	// tous sens et tous statuts confondus (exclusion des suggestions).
	Neighbors(ctx context.Context, userID string) (map[string]struct{}, error)

	// CountIncoming compte les arêtes entrantes au statut donné.
	CountIncoming(ctx context.Context, userID string, status domain.Status) (int64, error)
}

// ProfileDirectory est la vue minimale dont le graphe a besoin sur les
// profils : résoudre une cible et fournir des candidats de suggestion.
type ProfileDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)

	// ListCandidates renvoie des ids de profils, excluant excludeID,
	// sans garantie d'ordre.
	ListCandidates(ctx context.Context, excludeID string, limit int) ([]string, error)
}
