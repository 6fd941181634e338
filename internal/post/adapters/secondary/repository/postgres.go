package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fellipeca007/GuardaFlix/internal/post/domain"
)

type PostgresPostRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPostRepo(pool *pgxpool.Pool) *PostgresPostRepo {
	return &PostgresPostRepo{db: pool}
}

// EnsureSchema crée les tables du contexte (idempotent).
func (r *PostgresPostRepo) EnsureSchema(ctx context.Context) error {
	q := `
		CREATE TABLE IF NOT EXISTS posts (
			id         TEXT PRIMARY KEY,
			author_id  TEXT NOT NULL,
			content    TEXT NOT NULL,
			image_uri  TEXT NOT NULL DEFAULT '',
			sentiment  TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_posts_author ON posts (author_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS post_likes (
			post_id TEXT NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			PRIMARY KEY (post_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS post_comments (
			id         TEXT PRIMARY KEY,
			post_id    TEXT NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
			author_id  TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_comments_post ON post_comments (post_id, created_at);

		CREATE TABLE IF NOT EXISTS saved_posts (
			user_id    TEXT NOT NULL,
			post_id    TEXT NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, post_id)
		);
	`
	_, err := r.db.Exec(ctx, q)
	return err
}

func (r *PostgresPostRepo) Save(ctx context.Context, post *domain.Post) error {
	q := `
		INSERT INTO posts (id, author_id, content, image_uri, sentiment, created_at)
		VALUES (@id, @author_id, @content, @image_uri, @sentiment, @created_at)
	`
	args := pgx.NamedArgs{
		"id":         post.ID,
		"author_id":  post.AuthorID,
		"content":    post.Content,
		"image_uri":  post.ImageURI,
		"sentiment":  post.Sentiment,
		"created_at": post.CreatedAt,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("db: save post: %w", err)
	}
	return nil
}

const postColumns = `
	p.id, p.author_id, p.content, p.image_uri, p.sentiment, p.created_at,
	(SELECT count(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count
`

func (r *PostgresPostRepo) FindByID(ctx context.Context, postID string) (*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, q, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("db: find post: %w", err)
	}

	if err := r.hydrateComments(ctx, []*domain.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostgresPostRepo) Delete(ctx context.Context, postID string) error {
	// Les likes, commentaires et sauvegardes suivent via ON DELETE CASCADE.
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("db: delete post: %w", err)
	}
	return nil
}

func (r *PostgresPostRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts p ORDER BY p.created_at DESC, p.id DESC LIMIT $1`
	return r.queryPosts(ctx, q, limit)
}

func (r *PostgresPostRepo) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Post, error) {
	q := `
		SELECT ` + postColumns + ` FROM posts p
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2
	`
	return r.queryPosts(ctx, q, authorID, limit)
}

// ToggleLike : tentative d'insert d'abord ; si la ligne existait déjà
// (0 ligne insérée), c'est un unlike. La PK (post_id, user_id) rend
// l'opération sûre sous concurrence.
func (r *PostgresPostRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("db: like: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	if _, err := r.db.Exec(ctx, `
		DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2
	`, postID, userID); err != nil {
		return false, fmt.Errorf("db: unlike: %w", err)
	}
	return false, nil
}

func (r *PostgresPostRepo) LikedSet(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `
		SELECT post_id FROM post_likes WHERE user_id = $1 AND post_id = ANY($2)
	`, userID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("db: liked set: %w", err)
	}
	defer rows.Close()

	liked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db: scan like: %w", err)
		}
		liked[id] = true
	}
	return liked, rows.Err()
}

func (r *PostgresPostRepo) AddComment(ctx context.Context, c *domain.Comment) error {
	q := `
		INSERT INTO post_comments (id, post_id, author_id, content, created_at)
		VALUES (@id, @post_id, @author_id, @content, @created_at)
	`
	args := pgx.NamedArgs{
		"id":         c.ID,
		"post_id":    c.PostID,
		"author_id":  c.AuthorID,
		"content":    c.Content,
		"created_at": c.CreatedAt,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("db: add comment: %w", err)
	}
	return nil
}

func (r *PostgresPostRepo) SavePost(ctx context.Context, userID, postID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO saved_posts (user_id, post_id) VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`, userID, postID)
	if err != nil {
		return fmt.Errorf("db: save post for later: %w", err)
	}
	return nil
}

func (r *PostgresPostRepo) UnsavePost(ctx context.Context, userID, postID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM saved_posts WHERE user_id = $1 AND post_id = $2
	`, userID, postID)
	if err != nil {
		return fmt.Errorf("db: unsave post: %w", err)
	}
	return nil
}

func (r *PostgresPostRepo) ListSaved(ctx context.Context, userID string) ([]*domain.Post, error) {
	q := `
		SELECT ` + postColumns + ` FROM posts p
		JOIN saved_posts s ON s.post_id = p.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`
	return r.queryPosts(ctx, q, userID)
}

// --- HELPERS ---

func (r *PostgresPostRepo) queryPosts(ctx context.Context, q string, args ...any) ([]*domain.Post, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db: query posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db: scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.hydrateComments(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// hydrateComments charge les commentaires de tous les posts en UNE
// requête (ANY) plutôt qu'un aller-retour par post.
func (r *PostgresPostRepo) hydrateComments(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, len(posts))
	byID := make(map[string]*domain.Post, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Comments = []domain.Comment{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, post_id, author_id, content, created_at
		FROM post_comments
		WHERE post_id = ANY($1)
		ORDER BY created_at ASC
	`, ids)
	if err != nil {
		return fmt.Errorf("db: list comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return fmt.Errorf("db: scan comment: %w", err)
		}
		if p, ok := byID[c.PostID]; ok {
			p.Comments = append(p.Comments, c)
		}
	}
	return rows.Err()
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &p.ImageURI, &p.Sentiment, &p.CreatedAt, &p.LikeCount)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
