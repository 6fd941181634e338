package repository

import (
	"context"
	"sync"

	"github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

type pairKey struct {
	follower  string
	following string
}

// MemoryEdgeStore implémente EdgeStore en mémoire, avec le MÊME contrat
// que les stores réels (unicité par paire, accept en double écriture).
// Utilisé par les tests de service.
type MemoryEdgeStore struct {
	mu    sync.Mutex
	edges map[pairKey]domain.Edge
}

func NewMemoryEdgeStore() *MemoryEdgeStore {
	return &MemoryEdgeStore{edges: make(map[pairKey]domain.Edge)}
}

func (m *MemoryEdgeStore) Insert(_ context.Context, edge domain.Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey{edge.FollowerID, edge.FollowingID}
	if _, exists := m.edges[key]; exists {
		return domain.ErrDuplicateRequest
	}
	m.edges[key] = edge
	return nil
}

func (m *MemoryEdgeStore) GetStatus(_ context.Context, followerID, followingID string) (domain.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	edge, ok := m.edges[pairKey{followerID, followingID}]
	if !ok {
		return domain.StatusNone, nil
	}
	return edge.Status, nil
}

func (m *MemoryEdgeStore) Accept(_ context.Context, requesterID, accepterID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	forward := pairKey{requesterID, accepterID}
	edge, ok := m.edges[forward]
	if !ok || edge.Status != domain.StatusPending {
		return domain.ErrNoSuchRequest
	}

	edge.Status = domain.StatusAccepted
	m.edges[forward] = edge

	// Upsert du sens retour, comme les stores réels.
	reverse := pairKey{accepterID, requesterID}
	rev, ok := m.edges[reverse]
	if !ok {
		rev = domain.NewPendingEdge(accepterID, requesterID)
	}
	rev.Status = domain.StatusAccepted
	m.edges[reverse] = rev
	return nil
}

func (m *MemoryEdgeStore) DeletePending(_ context.Context, followerID, followingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey{followerID, followingID}
	if edge, ok := m.edges[key]; ok && edge.Status == domain.StatusPending {
		delete(m.edges, key)
	}
	return nil
}

func (m *MemoryEdgeStore) DeleteBoth(_ context.Context, aID, bID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.edges, pairKey{aID, bID})
	delete(m.edges, pairKey{bID, aID})
	return nil
}

func (m *MemoryEdgeStore) ListCounterparts(_ context.Context, userID string, dir domain.Direction, status domain.Status) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := []string{}
	for key, edge := range m.edges {
		if edge.Status != status {
			continue
		}
		if dir == domain.DirectionOutgoing && key.follower == userID {
			ids = append(ids, key.following)
		}
		if dir == domain.DirectionIncoming && key.following == userID {
			ids = append(ids, key.follower)
		}
	}
	return ids, nil
}

func (m *MemoryEdgeStore) Neighbors(_ context.Context, userID string) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	neighbors := make(map[string]struct{})
	for key := range m.edges {
		if key.follower == userID {
			neighbors[key.following] = struct{}{}
		}
		if key.following == userID {
			neighbors[key.follower] = struct{}{}
		}
	}
	return neighbors, nil
}

func (m *MemoryEdgeStore) CountIncoming(_ context.Context, userID string, status domain.Status) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for key, edge := range m.edges {
		if key.following == userID && edge.Status == status {
			count++
		}
	}
	return count, nil
}

// EdgeCount expose le nombre total d'arêtes (assertions d'unicité en test).
func (m *MemoryEdgeStore) EdgeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.edges)
}
