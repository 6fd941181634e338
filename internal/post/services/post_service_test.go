package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fellipeca007/GuardaFlix/internal/post/domain"
)

// fakePostRepo : persistance en mémoire, juste ce qu'il faut pour le service.
type fakePostRepo struct {
	posts    map[string]*domain.Post
	likes    map[string]map[string]bool // postID -> userID -> liked
	saved    map[string]map[string]bool // userID -> postID
	comments []domain.Comment
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts: map[string]*domain.Post{},
		likes: map[string]map[string]bool{},
		saved: map[string]map[string]bool{},
	}
}

func (f *fakePostRepo) Save(_ context.Context, p *domain.Post) error {
	f.posts[p.ID] = p
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return p, nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) ListRecent(_ context.Context, limit int) ([]*domain.Post, error) {
	out := []*domain.Post{}
	for _, p := range f.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepo) ListByAuthor(_ context.Context, authorID string, _ int) ([]*domain.Post, error) {
	out := []*domain.Post{}
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) ToggleLike(_ context.Context, postID, userID string) (bool, error) {
	if f.likes[postID] == nil {
		f.likes[postID] = map[string]bool{}
	}
	if f.likes[postID][userID] {
		delete(f.likes[postID], userID)
		return false, nil
	}
	f.likes[postID][userID] = true
	return true, nil
}

func (f *fakePostRepo) LikedSet(_ context.Context, userID string, postIDs []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range postIDs {
		if f.likes[id][userID] {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakePostRepo) AddComment(_ context.Context, c *domain.Comment) error {
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakePostRepo) SavePost(_ context.Context, userID, postID string) error {
	if f.saved[userID] == nil {
		f.saved[userID] = map[string]bool{}
	}
	f.saved[userID][postID] = true
	return nil
}

func (f *fakePostRepo) UnsavePost(_ context.Context, userID, postID string) error {
	delete(f.saved[userID], postID)
	return nil
}

func (f *fakePostRepo) ListSaved(_ context.Context, userID string) ([]*domain.Post, error) {
	out := []*domain.Post{}
	for id := range f.saved[userID] {
		if p, ok := f.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakePublisher compte les événements émis.
type fakePublisher struct {
	created []string
	deleted []string
}

func (f *fakePublisher) PublishPostCreated(_ context.Context, p *domain.Post) error {
	f.created = append(f.created, p.ID)
	return nil
}

func (f *fakePublisher) PublishPostDeleted(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestCreatePost_SavesAndPublishes(t *testing.T) {
	repo, pub := newFakePostRepo(), &fakePublisher{}
	svc := NewPostService(repo, pub)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "alice", "olha esse filme!", "", "😍 apaixonado")
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "alice", post.AuthorID)
	assert.Contains(t, repo.posts, post.ID)
	assert.Equal(t, []string{post.ID}, pub.created)
}

func TestCreatePost_RejectsEmptyContent(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakePublisher{})

	_, err := svc.CreatePost(context.Background(), "alice", "   ", "", "")
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	repo, pub := newFakePostRepo(), &fakePublisher{}
	svc := NewPostService(repo, pub)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "alice", "meu post", "", "")
	require.NoError(t, err)

	// Mallory n'est pas l'auteur : refus, et le post reste.
	err = svc.DeletePost(ctx, post.ID, "mallory")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Contains(t, repo.posts, post.ID)

	require.NoError(t, svc.DeletePost(ctx, post.ID, "alice"))
	assert.NotContains(t, repo.posts, post.ID)
	assert.Equal(t, []string{post.ID}, pub.deleted)
}

func TestDeletePost_Missing(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakePublisher{})

	err := svc.DeletePost(context.Background(), "nope", "alice")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestToggleLike_Flips(t *testing.T) {
	repo, pub := newFakePostRepo(), &fakePublisher{}
	svc := NewPostService(repo, pub)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "alice", "post", "", "")
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, post.ID, "bob")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(ctx, post.ID, "bob")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestAddComment_RequiresExistingPost(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakePublisher{})

	_, err := svc.AddComment(context.Background(), "ghost-post", "bob", "oi")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestSavedPosts_RoundTrip(t *testing.T) {
	repo, pub := newFakePostRepo(), &fakePublisher{}
	svc := NewPostService(repo, pub)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "alice", "para depois", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.SavePost(ctx, "bob", post.ID))
	saved, err := svc.ListSaved(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, post.ID, saved[0].ID)

	require.NoError(t, svc.UnsavePost(ctx, "bob", post.ID))
	saved, err = svc.ListSaved(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, saved)
}
