package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

// PostgresEdgeStore persiste le graphe dans une table relationnelle.
// La PRIMARY KEY (follower_id, following_id) est la garantie d'unicité :
// deux Follow concurrents sur la même paire => un seul gagnant, l'autre
// reçoit une violation 23505 traduite en ErrDuplicateRequest.
type PostgresEdgeStore struct {
	db *pgxpool.Pool
}

func NewPostgresEdgeStore(pool *pgxpool.Pool) *PostgresEdgeStore {
	return &PostgresEdgeStore{db: pool}
}

// EnsureSchema crée la table si besoin (idempotent).
func (r *PostgresEdgeStore) EnsureSchema(ctx context.Context) error {
	q := `
		CREATE TABLE IF NOT EXISTS relationships (
			follower_id  TEXT NOT NULL,
			following_id TEXT NOT NULL,
			status       TEXT NOT NULL CHECK (status IN ('pending', 'accepted')),
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (follower_id, following_id)
		);
		CREATE INDEX IF NOT EXISTS idx_relationships_following
			ON relationships (following_id, status);
	`
	_, err := r.db.Exec(ctx, q)
	return err
}

func (r *PostgresEdgeStore) Insert(ctx context.Context, edge domain.Edge) error {
	q := `
		INSERT INTO relationships (follower_id, following_id, status, created_at)
		VALUES (@follower_id, @following_id, @status, @created_at)
	`
	args := pgx.NamedArgs{
		"follower_id":  edge.FollowerID,
		"following_id": edge.FollowingID,
		"status":       string(edge.Status),
		"created_at":   edge.CreatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return r.translateError(err)
	}
	return nil
}

func (r *PostgresEdgeStore) GetStatus(ctx context.Context, followerID, followingID string) (domain.Status, error) {
	q := `SELECT status FROM relationships WHERE follower_id = $1 AND following_id = $2`

	var status string
	err := r.db.QueryRow(ctx, q, followerID, followingID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// L'absence d'arête N'EST PAS une erreur : c'est l'état "none".
			return domain.StatusNone, nil
		}
		return domain.StatusNone, fmt.Errorf("db: get status: %w", err)
	}
	return domain.Status(status), nil
}

// Accept fait les deux écritures d'acceptation dans UNE transaction.
// Le store étant une seule table, on a une vraie transaction sous la
// main : autant l'utiliser plutôt que de laisser une acceptation
// borgne à réparer. L'upsert inverse reste idempotent (ON CONFLICT),
// donc rejouable tel quel sur un store sans transaction.
func (r *PostgresEdgeStore) Accept(ctx context.Context, requesterID, accepterID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db: begin accept: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. Flip du sens aller, uniquement s'il est pending.
	tag, err := tx.Exec(ctx, `
		UPDATE relationships SET status = 'accepted'
		WHERE follower_id = $1 AND following_id = $2 AND status = 'pending'
	`, requesterID, accepterID)
	if err != nil {
		return fmt.Errorf("db: accept forward: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoSuchRequest
	}

	// 2. Matérialisation du sens retour (amitié symétrique au repos).
	_, err = tx.Exec(ctx, `
		INSERT INTO relationships (follower_id, following_id, status, created_at)
		VALUES ($1, $2, 'accepted', now())
		ON CONFLICT (follower_id, following_id) DO UPDATE SET status = 'accepted'
	`, accepterID, requesterID)
	if err != nil {
		return fmt.Errorf("db: accept reverse: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresEdgeStore) DeletePending(ctx context.Context, followerID, followingID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM relationships
		WHERE follower_id = $1 AND following_id = $2 AND status = 'pending'
	`, followerID, followingID)
	if err != nil {
		return fmt.Errorf("db: delete pending: %w", err)
	}
	return nil
}

func (r *PostgresEdgeStore) DeleteBoth(ctx context.Context, aID, bID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM relationships
		WHERE (follower_id = $1 AND following_id = $2)
		   OR (follower_id = $2 AND following_id = $1)
	`, aID, bID)
	if err != nil {
		return fmt.Errorf("db: delete both: %w", err)
	}
	return nil
}

func (r *PostgresEdgeStore) ListCounterparts(ctx context.Context, userID string, dir domain.Direction, status domain.Status) ([]string, error) {
	var q string
	if dir == domain.DirectionOutgoing {
		q = `SELECT following_id FROM relationships WHERE follower_id = $1 AND status = $2`
	} else {
		q = `SELECT follower_id FROM relationships WHERE following_id = $1 AND status = $2`
	}

	rows, err := r.db.Query(ctx, q, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("db: list counterparts: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db: scan counterpart: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresEdgeStore) Neighbors(ctx context.Context, userID string) (map[string]struct{}, error) {
	q := `
		SELECT following_id FROM relationships WHERE follower_id = $1
		UNION
		SELECT follower_id FROM relationships WHERE following_id = $1
	`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("db: neighbors: %w", err)
	}
	defer rows.Close()

	neighbors := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db: scan neighbor: %w", err)
		}
		neighbors[id] = struct{}{}
	}
	return neighbors, rows.Err()
}

func (r *PostgresEdgeStore) CountIncoming(ctx context.Context, userID string, status domain.Status) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM relationships WHERE following_id = $1 AND status = $2
	`, userID, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db: count incoming: %w", err)
	}
	return count, nil
}

// translateError convertit les codes PostgreSQL en erreurs du Domaine.
func (r *PostgresEdgeStore) translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = Unique Violation : la paire existe déjà.
		if pgErr.Code == "23505" {
			return domain.ErrDuplicateRequest
		}
	}
	return fmt.Errorf("db: insert edge: %w", err)
}
