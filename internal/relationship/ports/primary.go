package ports

import (
	"context"

	"github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

// RelationshipService est le port Driving (API) du graphe social.
// Toutes les opérations prennent l'acteur en paramètre explicite :
// pas de session ambiante, pas de singleton "current user".
type RelationshipService interface {
	// Follow crée une demande (status=pending).
	// Échoue avec ErrDuplicateRequest si une arête existe déjà,
	// même acceptée : re-suivre un ami n'est pas un no-op silencieux.
	Follow(ctx context.Context, requesterID, targetID string) error

	// Unfollow supprime le lien dans LES DEUX sens.
	// Une amitié "acceptée" d'un seul côté n'est pas un état supporté,
	// donc se désabonner dissout toute la relation. Idempotent.
	Unfollow(ctx context.Context, actorID, targetID string) error

	// AcceptRequest passe (requester -> accepter) à accepted ET
	// matérialise l'arête inverse acceptée. L'amitié est symétrique
	// au repos : deux arêtes, une par sens.
	AcceptRequest(ctx context.Context, accepterID, requesterID string) error

	// RejectRequest supprime la demande entrante. Pas d'erreur si
	// elle a déjà disparu (reject idempotent).
	RejectRequest(ctx context.Context, rejecterID, requesterID string) error

	// StatusBetween lit UN SEUL sens (a -> b), jamais symétrisé.
	StatusBetween(ctx context.Context, aID, bID string) (domain.Status, error)

	// ListAccepted renvoie les ids en face d'une arête acceptée
	// dans le sens demandé (listes "following" / "followers").
	ListAccepted(ctx context.Context, userID string, dir domain.Direction) ([]string, error)

	// ListPending renvoie les demandeurs en attente de décision.
	ListPending(ctx context.Context, userID string) ([]string, error)

	// Suggestions renvoie des candidats sans aucune arête avec userID,
	// dans un ordre arbitraire (aucune garantie de ranking).
	Suggestions(ctx context.Context, userID string, limit int) ([]string, error)

	// CountFollowers compte les arêtes acceptées entrantes.
	CountFollowers(ctx context.Context, userID string) (int64, error)
}
