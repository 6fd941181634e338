package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fellipeca007/GuardaFlix/internal/relationship/adapters/secondary/repository"
	"github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
	"github.com/fellipeca007/GuardaFlix/internal/relationship/ports"
)

// fakeDirectory : annuaire de profils en mémoire pour les tests.
type fakeDirectory struct {
	ids []string
}

func (f *fakeDirectory) Exists(_ context.Context, userID string) (bool, error) {
	for _, id := range f.ids {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDirectory) ListCandidates(_ context.Context, excludeID string, limit int) ([]string, error) {
	out := []string{}
	for _, id := range f.ids {
		if id == excludeID {
			continue
		}
		out = append(out, id)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func newTestService(userIDs ...string) (ports.RelationshipService, *repository.MemoryEdgeStore) {
	store := repository.NewMemoryEdgeStore()
	svc := NewRelationshipService(store, &fakeDirectory{ids: userIDs})
	return svc, store
}

func TestFollow_CreatesPendingEdge(t *testing.T) {
	svc, _ := newTestService("alice", "bob")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))

	status, err := svc.StatusBetween(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, status)

	// Le sens inverse n'existe pas : une arête ne s'implique pas elle-même.
	reverse, err := svc.StatusBetween(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, reverse)

	pending, err := svc.ListPending(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, pending)
}

func TestFollow_SelfIsRejected(t *testing.T) {
	svc, store := newTestService("alice")
	ctx := context.Background()

	err := svc.Follow(ctx, "alice", "alice")
	assert.ErrorIs(t, err, domain.ErrSelfFollow)
	assert.Equal(t, 0, store.EdgeCount(), "no edge may be created by a self-follow")
}

func TestFollow_UnknownTarget(t *testing.T) {
	svc, _ := newTestService("alice")
	ctx := context.Background()

	err := svc.Follow(ctx, "alice", "ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownTarget)
}

func TestFollow_DuplicateFails(t *testing.T) {
	svc, store := newTestService("alice", "bob")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))

	err := svc.Follow(ctx, "alice", "bob")
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
	assert.Equal(t, 1, store.EdgeCount(), "exactly one edge must persist")
}

func TestFollow_DuplicateOnAcceptedFails(t *testing.T) {
	// Re-suivre un ami existant est illégal, pas un no-op silencieux.
	svc, _ := newTestService("alice", "bob")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))
	require.NoError(t, svc.AcceptRequest(ctx, "bob", "alice"))

	err := svc.Follow(ctx, "alice", "bob")
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
}

func TestAccept_MaterializesMutualEdges(t *testing.T) {
	svc, store := newTestService("alice", "bob")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))
	require.NoError(t, svc.AcceptRequest(ctx, "bob", "alice"))

	// Amitié symétrique au repos : les DEUX sens lisent accepted.
	forward, err := svc.StatusBetween(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, forward)

	reverse, err := svc.StatusBetween(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, reverse)

	assert.Equal(t, 2, store.EdgeCount(), "acceptance is a two-edge write")

	// Les listes "following" se voient mutuellement.
	aliceFollowing, err := svc.ListAccepted(ctx, "alice", domain.DirectionOutgoing)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, aliceFollowing)

	bobFollowing, err := svc.ListAccepted(ctx, "bob", domain.DirectionOutgoing)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, bobFollowing)
}

func TestAccept_WithoutPendingFails(t *testing.T) {
	svc, _ := newTestService("alice", "bob")
	ctx := context.Background()

	err := svc.AcceptRequest(ctx, "bob", "alice")
	assert.ErrorIs(t, err, domain.ErrNoSuchRequest)
}

func TestAccept_WrongDirectionFails(t *testing.T) {
	// Alice a demandé Bob : Alice ne peut pas "accepter" sa propre demande.
	svc, _ := newTestService("alice", "bob")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))

	err := svc.AcceptRequest(ctx, "alice", "bob")
	assert.ErrorIs(t, err, domain.ErrNoSuchRequest)
}

func TestReject_RemovesPendingAndIsIdempotent(t *testing.T) {
	svc, store := newTestService("alice", "bob")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))
	require.NoError(t, svc.RejectRequest(ctx, "bob", "alice"))

	status, err := svc.StatusBetween(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, status, "rejection deletes the edge, it never stores a 'rejected' state")
	assert.Equal(t, 0, store.EdgeCount())

	// Deuxième reject sur une demande disparue : aucun cri.
	assert.NoError(t, svc.RejectRequest(ctx, "bob", "alice"))
}

func TestReject_DoesNotTouchAcceptedEdge(t *testing.T) {
	svc, _ := newTestService("alice", "bob")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))
	require.NoError(t, svc.AcceptRequest(ctx, "bob", "alice"))
	require.NoError(t, svc.RejectRequest(ctx, "bob", "alice"))

	status, err := svc.StatusBetween(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, status)
}

func TestUnfollow_DissolvesMutualFriendship(t *testing.T) {
	svc, store := newTestService("alice", "bob")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))
	require.NoError(t, svc.AcceptRequest(ctx, "bob", "alice"))
	require.NoError(t, svc.Unfollow(ctx, "alice", "bob"))

	// Politique retenue : les DEUX sens retombent à none.
	forward, err := svc.StatusBetween(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, forward)

	reverse, err := svc.StatusBetween(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, reverse)

	assert.Equal(t, 0, store.EdgeCount())

	// Et none -> pending reste accessible ensuite (le cycle repart).
	assert.NoError(t, svc.Follow(ctx, "bob", "alice"))
}

func TestUnfollow_AbsentEdgesIsNoop(t *testing.T) {
	svc, _ := newTestService("alice", "bob")
	assert.NoError(t, svc.Unfollow(context.Background(), "alice", "bob"))
}

func TestListAccepted_IgnoresPending(t *testing.T) {
	svc, _ := newTestService("alice", "bob", "carol")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))   // reste pending
	require.NoError(t, svc.Follow(ctx, "alice", "carol")) // sera accepté
	require.NoError(t, svc.AcceptRequest(ctx, "carol", "alice"))

	following, err := svc.ListAccepted(ctx, "alice", domain.DirectionOutgoing)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, following)

	followers, err := svc.ListAccepted(ctx, "carol", domain.DirectionIncoming)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, followers)
}

func TestCountFollowers(t *testing.T) {
	svc, _ := newTestService("alice", "bob", "carol")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "bob", "alice"))
	require.NoError(t, svc.Follow(ctx, "carol", "alice"))
	require.NoError(t, svc.AcceptRequest(ctx, "alice", "bob"))

	// Seul bob est accepté ; carol est encore pending.
	count, err := svc.CountFollowers(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSuggestions_ExcludesSelfAndNeighbors(t *testing.T) {
	svc, _ := newTestService("alice", "bob", "carol", "dave", "erin")
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "alice", "bob"))   // pending sortant
	require.NoError(t, svc.Follow(ctx, "carol", "alice")) // pending entrant

	got, err := svc.Suggestions(ctx, "alice", 10)
	require.NoError(t, err)

	// pending dans un sens comme dans l'autre exclut le candidat.
	assert.ElementsMatch(t, []string{"dave", "erin"}, got)
}

func TestSuggestions_RespectsLimit(t *testing.T) {
	svc, _ := newTestService("alice", "b1", "b2", "b3", "b4", "b5")

	got, err := svc.Suggestions(context.Background(), "alice", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSuggestions_ZeroLimit(t *testing.T) {
	svc, _ := newTestService("alice", "bob")

	got, err := svc.Suggestions(context.Background(), "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmptyIDsAreRejected(t *testing.T) {
	svc, _ := newTestService("alice")
	ctx := context.Background()

	assert.ErrorIs(t, svc.Follow(ctx, "", "alice"), domain.ErrEmptyUserID)
	assert.ErrorIs(t, svc.Unfollow(ctx, "alice", ""), domain.ErrEmptyUserID)
	assert.ErrorIs(t, svc.AcceptRequest(ctx, "", "alice"), domain.ErrEmptyUserID)
	assert.ErrorIs(t, svc.RejectRequest(ctx, "alice", ""), domain.ErrEmptyUserID)
}
