package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
	"github.com/fellipeca007/GuardaFlix/internal/relationship/ports"
)

// candidateOversample : on demande plus de candidats que la limite car
// une partie sera filtrée (voisins existants).
const candidateOversample = 4

type relationshipService struct {
	store     ports.EdgeStore
	directory ports.ProfileDirectory
}

func NewRelationshipService(store ports.EdgeStore, directory ports.ProfileDirectory) ports.RelationshipService {
	return &relationshipService{store: store, directory: directory}
}

func (s *relationshipService) Follow(ctx context.Context, requesterID, targetID string) error {
	if requesterID == "" || targetID == "" {
		return domain.ErrEmptyUserID
	}
	if requesterID == targetID {
		return domain.ErrSelfFollow
	}

	// La cible doit résoudre vers un profil réel.
	ok, err := s.directory.Exists(ctx, targetID)
	if err != nil {
		return fmt.Errorf("resolve target: %w", err)
	}
	if !ok {
		return domain.ErrUnknownTarget
	}

	// Pas de pré-check "l'arête existe-t-elle ?" : sous concurrence,
	// seule la contrainte d'unicité du store tranche. Un perdant de la
	// course reçoit ErrDuplicateRequest, jamais une double arête.
	if err := s.store.Insert(ctx, domain.NewPendingEdge(requesterID, targetID)); err != nil {
		return err
	}

	slog.Info("🤝 Friend request sent", "requester_id", requesterID, "target_id", targetID)
	return nil
}

func (s *relationshipService) Unfollow(ctx context.Context, actorID, targetID string) error {
	if actorID == "" || targetID == "" {
		return domain.ErrEmptyUserID
	}
	// Politique retenue : dissolution complète. Supprimer un sens d'une
	// amitié mutuelle laisserait une arête acceptée orpheline.
	return s.store.DeleteBoth(ctx, actorID, targetID)
}

func (s *relationshipService) AcceptRequest(ctx context.Context, accepterID, requesterID string) error {
	if accepterID == "" || requesterID == "" {
		return domain.ErrEmptyUserID
	}
	if err := s.store.Accept(ctx, requesterID, accepterID); err != nil {
		return err
	}
	slog.Info("✅ Friend request accepted", "accepter_id", accepterID, "requester_id", requesterID)
	return nil
}

func (s *relationshipService) RejectRequest(ctx context.Context, rejecterID, requesterID string) error {
	if rejecterID == "" || requesterID == "" {
		return domain.ErrEmptyUserID
	}
	// Reject idempotent : une demande déjà disparue n'est pas une erreur.
	return s.store.DeletePending(ctx, requesterID, rejecterID)
}

func (s *relationshipService) StatusBetween(ctx context.Context, aID, bID string) (domain.Status, error) {
	return s.store.GetStatus(ctx, aID, bID)
}

func (s *relationshipService) ListAccepted(ctx context.Context, userID string, dir domain.Direction) ([]string, error) {
	return s.store.ListCounterparts(ctx, userID, dir, domain.StatusAccepted)
}

func (s *relationshipService) ListPending(ctx context.Context, userID string) ([]string, error) {
	return s.store.ListCounterparts(ctx, userID, domain.DirectionIncoming, domain.StatusPending)
}

func (s *relationshipService) Suggestions(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	// Un échec de lecture se propage : renvoyer une liste vide
	// mentirait sur l'état du graphe.
	candidates, err := s.directory.ListCandidates(ctx, userID, limit*candidateOversample)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	neighbors, err := s.store.Neighbors(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list neighbors: %w", err)
	}

	suggestions := make([]string, 0, limit)
	for _, id := range candidates {
		if id == userID {
			continue
		}
		if _, linked := neighbors[id]; linked {
			continue
		}
		suggestions = append(suggestions, id)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}

func (s *relationshipService) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return s.store.CountIncoming(ctx, userID, domain.StatusAccepted)
}
