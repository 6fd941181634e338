package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fellipeca007/GuardaFlix/internal/profile/domain"
)

type PostgresProfileRepo struct {
	db *pgxpool.Pool
}

func NewPostgresProfileRepo(pool *pgxpool.Pool) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: pool}
}

func (r *PostgresProfileRepo) EnsureSchema(ctx context.Context) error {
	q := `
		CREATE TABLE IF NOT EXISTS profiles (
			id             TEXT PRIMARY KEY,
			display_name   TEXT NOT NULL DEFAULT '',
			handle         TEXT NOT NULL DEFAULT '',
			avatar_uri     TEXT NOT NULL DEFAULT '',
			bio            TEXT NOT NULL DEFAULT '',
			cover_uri      TEXT NOT NULL DEFAULT '',
			cover_position TEXT NOT NULL DEFAULT '',
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	_, err := r.db.Exec(ctx, q)
	return err
}

const profileColumns = `id, display_name, handle, avatar_uri, bio, cover_uri, cover_position, updated_at`

func (r *PostgresProfileRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	var p domain.Profile
	err := r.db.QueryRow(ctx, q, userID).Scan(
		&p.ID, &p.DisplayName, &p.Handle, &p.AvatarURI, &p.Bio, &p.CoverURI, &p.CoverPosition, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("db: get profile: %w", err)
	}
	return &p, nil
}

func (r *PostgresProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	q := `
		INSERT INTO profiles (id, display_name, handle, avatar_uri, bio, cover_uri, cover_position, updated_at)
		VALUES (@id, @display_name, @handle, @avatar_uri, @bio, @cover_uri, @cover_position, @updated_at)
		ON CONFLICT (id) DO UPDATE SET
			display_name   = EXCLUDED.display_name,
			handle         = EXCLUDED.handle,
			avatar_uri     = EXCLUDED.avatar_uri,
			bio            = EXCLUDED.bio,
			cover_uri      = EXCLUDED.cover_uri,
			cover_position = EXCLUDED.cover_position,
			updated_at     = EXCLUDED.updated_at
	`
	args := pgx.NamedArgs{
		"id":             p.ID,
		"display_name":   p.DisplayName,
		"handle":         p.Handle,
		"avatar_uri":     p.AvatarURI,
		"bio":            p.Bio,
		"cover_uri":      p.CoverURI,
		"cover_position": p.CoverPosition,
		"updated_at":     p.UpdatedAt,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("db: upsert profile: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepo) Search(ctx context.Context, query, excludeID string, limit int) ([]*domain.Profile, error) {
	q := `
		SELECT ` + profileColumns + ` FROM profiles
		WHERE id <> $1 AND (display_name ILIKE $2 OR handle ILIKE $2)
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, q, excludeID, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("db: search profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Handle, &p.AvatarURI, &p.Bio, &p.CoverURI, &p.CoverPosition, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db: scan profile: %w", err)
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

func (r *PostgresProfileRepo) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db: profile exists: %w", err)
	}
	return exists, nil
}

func (r *PostgresProfileRepo) ListIDs(ctx context.Context, excludeID string, limit int) ([]string, error) {
	// Ordre arbitraire assumé : aucune garantie de ranking côté
	// suggestions.
	rows, err := r.db.Query(ctx, `SELECT id FROM profiles WHERE id <> $1 LIMIT $2`, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("db: list profile ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db: scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
