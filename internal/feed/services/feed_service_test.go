package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feedclients "github.com/fellipeca007/GuardaFlix/internal/feed/adapters/secondary/clients"
	"github.com/fellipeca007/GuardaFlix/internal/feed/domain"
	postdomain "github.com/fellipeca007/GuardaFlix/internal/post/domain"
	profiledomain "github.com/fellipeca007/GuardaFlix/internal/profile/domain"
	relrepo "github.com/fellipeca007/GuardaFlix/internal/relationship/adapters/secondary/repository"
	relports "github.com/fellipeca007/GuardaFlix/internal/relationship/ports"
	relservices "github.com/fellipeca007/GuardaFlix/internal/relationship/services"
)

// --- FAKES ---

type fakeDirectory struct{ ids []string }

func (f *fakeDirectory) Exists(_ context.Context, id string) (bool, error) {
	for _, known := range f.ids {
		if known == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDirectory) ListCandidates(_ context.Context, excludeID string, limit int) ([]string, error) {
	out := []string{}
	for _, id := range f.ids {
		if id != excludeID && len(out) < limit {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakePostClient struct {
	posts []*postdomain.Post
	liked map[string]map[string]bool // userID -> postID
}

func (f *fakePostClient) ListRecent(_ context.Context, _ int) ([]*postdomain.Post, error) {
	return f.posts, nil
}

func (f *fakePostClient) LikedSet(_ context.Context, userID string, postIDs []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range postIDs {
		if f.liked[userID][id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeProfileClient struct{ profiles map[string]*profiledomain.Profile }

func (f *fakeProfileClient) Get(_ context.Context, id string) (*profiledomain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, profiledomain.ErrProfileNotFound
	}
	return p, nil
}

type fakeTimelineCache struct {
	timelines map[string][]*domain.TimelineItem
}

func (f *fakeTimelineCache) AddToTimelines(_ context.Context, userIDs []string, item *domain.TimelineItem) error {
	if f.timelines == nil {
		f.timelines = map[string][]*domain.TimelineItem{}
	}
	for _, uid := range userIDs {
		f.timelines[uid] = append(f.timelines[uid], item)
	}
	return nil
}

func (f *fakeTimelineCache) GetTimeline(_ context.Context, userID string, _ int64) ([]*domain.TimelineItem, error) {
	return f.timelines[userID], nil
}

// --- FIXTURE ---

// Le feed est testé contre le VRAI service de graphe (store mémoire) :
// la visibilité dépend du contrat exact du graphe, pas d'un mock.
func newFixture(t *testing.T, userIDs ...string) (relports.RelationshipService, *fakePostClient, *fakeProfileClient, *fakeTimelineCache, *feedService) {
	t.Helper()
	graph := relservices.NewRelationshipService(relrepo.NewMemoryEdgeStore(), &fakeDirectory{ids: userIDs})
	posts := &fakePostClient{liked: map[string]map[string]bool{}}
	profiles := &fakeProfileClient{profiles: map[string]*profiledomain.Profile{}}
	cache := &fakeTimelineCache{}
	svc := NewFeedService(feedclients.NewGraphClient(graph), posts, profiles, cache).(*feedService)
	return graph, posts, profiles, cache, svc
}

func post(id, author string, at time.Time) *postdomain.Post {
	return &postdomain.Post{ID: id, AuthorID: author, Content: "post " + id, CreatedAt: at}
}

func befriend(t *testing.T, graph relports.RelationshipService, requester, accepter string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, graph.Follow(ctx, requester, accepter))
	require.NoError(t, graph.AcceptRequest(ctx, accepter, requester))
}

// --- TESTS ---

func TestVisibleAuthors_AlwaysIncludesSelf(t *testing.T) {
	_, _, _, _, svc := newFixture(t, "alice")

	visible, err := svc.VisibleAuthors(context.Background(), "alice")
	require.NoError(t, err)
	assert.Contains(t, visible, "alice")
	assert.Len(t, visible, 1)
}

func TestVisibleAuthors_PendingGrantsNothing(t *testing.T) {
	graph, _, _, _, svc := newFixture(t, "alice", "bob")
	ctx := context.Background()

	require.NoError(t, graph.Follow(ctx, "alice", "bob"))

	aliceSees, err := svc.VisibleAuthors(ctx, "alice")
	require.NoError(t, err)
	assert.NotContains(t, aliceSees, "bob")

	bobSees, err := svc.VisibleAuthors(ctx, "bob")
	require.NoError(t, err)
	assert.NotContains(t, bobSees, "alice")
}

func TestVisibleAuthors_AcceptedIsMutual(t *testing.T) {
	graph, _, _, _, svc := newFixture(t, "alice", "bob")
	ctx := context.Background()

	befriend(t, graph, "alice", "bob")

	aliceSees, err := svc.VisibleAuthors(ctx, "alice")
	require.NoError(t, err)
	assert.Contains(t, aliceSees, "bob")

	bobSees, err := svc.VisibleAuthors(ctx, "bob")
	require.NoError(t, err)
	assert.Contains(t, bobSees, "alice")
}

func TestFilterFeed_OrderAndVisibility(t *testing.T) {
	_, _, _, _, svc := newFixture(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := []*postdomain.Post{
		post("p1", "alice", base),
		post("p2", "bob", base.Add(time.Minute)),
		post("p3", "stranger", base.Add(2*time.Minute)),
		// Même timestamp que p1 : départage par id décroissant.
		post("p9", "alice", base),
	}
	visible := map[string]struct{}{"alice": {}, "bob": {}}

	got := svc.FilterFeed(posts, visible)

	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"p2", "p9", "p1"}, ids)
}

func TestCanViewProfile(t *testing.T) {
	graph, _, _, _, svc := newFixture(t, "alice", "bob", "carol")
	ctx := context.Background()

	befriend(t, graph, "alice", "bob")
	require.NoError(t, graph.Follow(ctx, "alice", "carol")) // pending seulement

	cases := []struct {
		name           string
		viewer, target string
		want           bool
	}{
		{"self", "alice", "alice", true},
		{"accepted friend", "alice", "bob", true},
		{"accepted friend reverse", "bob", "alice", true},
		{"pending is denied", "alice", "carol", false},
		{"stranger is denied", "carol", "bob", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CanViewProfile(ctx, tc.viewer, tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildFeed_HydratesEntries(t *testing.T) {
	graph, posts, profiles, _, svc := newFixture(t, "alice", "bob")
	ctx := context.Background()

	befriend(t, graph, "alice", "bob")

	now := time.Now().UTC()
	posts.posts = []*postdomain.Post{
		post("p1", "bob", now.Add(-time.Hour)),
		post("p2", "alice", now),
		post("p3", "stranger", now.Add(-time.Minute)),
	}
	posts.liked["alice"] = map[string]bool{"p1": true}
	profiles.profiles["bob"] = &profiledomain.Profile{
		ID: "bob", DisplayName: "Bob", Handle: "@bob", AvatarURI: "https://cdn/bob.png",
	}

	entries, err := svc.BuildFeed(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2, "the stranger's post must be filtered out")

	assert.Equal(t, "p2", entries[0].Post.ID)
	assert.Equal(t, "p1", entries[1].Post.ID)

	assert.True(t, entries[1].IsLiked)
	assert.False(t, entries[0].IsLiked)

	assert.Equal(t, "Bob", entries[1].Author.DisplayName)
	assert.Equal(t, "@bob", entries[1].Author.Handle)

	// Auteur sans fiche profil : entrée affichable quand même, id nu.
	assert.Equal(t, "alice", entries[0].Author.ID)
	assert.Empty(t, entries[0].Author.DisplayName)
}

func TestBuildFeed_UnfollowRemovesPosts(t *testing.T) {
	graph, posts, _, _, svc := newFixture(t, "alice", "bob")
	ctx := context.Background()

	befriend(t, graph, "alice", "bob")
	posts.posts = []*postdomain.Post{post("p1", "bob", time.Now().UTC())}

	entries, err := svc.BuildFeed(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, graph.Unfollow(ctx, "alice", "bob"))

	entries, err = svc.BuildFeed(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDistributePost_ReachesFollowersAndAuthor(t *testing.T) {
	graph, _, _, cache, svc := newFixture(t, "alice", "bob", "carol")
	ctx := context.Background()

	befriend(t, graph, "bob", "alice")                      // bob est ami d'alice
	require.NoError(t, graph.Follow(ctx, "carol", "alice")) // carol pending

	item := &domain.TimelineItem{PostID: "p1", AuthorID: "alice", CreatedAt: time.Now().UTC()}
	require.NoError(t, svc.DistributePost(ctx, item))

	assert.Len(t, cache.timelines["bob"], 1, "accepted friend receives the post")
	assert.Len(t, cache.timelines["alice"], 1, "author sees their own post")
	assert.Empty(t, cache.timelines["carol"], "pending relationship receives nothing")

	// La vue pré-calculée relit ce que le fan-out a poussé.
	items, err := svc.CachedTimeline(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].PostID)
}
