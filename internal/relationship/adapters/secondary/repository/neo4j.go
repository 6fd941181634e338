package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

// Neo4jEdgeStore : implémentation alternative du EdgeStore sur Neo4j.
// L'arête est une relation FOLLOWS portant une propriété `status`.
// MERGE garantit l'unicité par paire ordonnée, et chaque opération
// tient dans une seule transaction d'écriture managée.
type Neo4jEdgeStore struct {
	driver neo4j.DriverWithContext
}

func NewNeo4jEdgeStore(driver neo4j.DriverWithContext) *Neo4jEdgeStore {
	return &Neo4jEdgeStore{driver: driver}
}

// EnsureSchema crée la contrainte d'unicité sur User.id (idempotent).
func (r *Neo4jEdgeStore) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	return err
}

func (r *Neo4jEdgeStore) Insert(ctx context.Context, edge domain.Edge) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	created, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		// Le flag `fresh` distingue création et collision : MERGE seul
		// ne dit pas si la relation existait déjà.
		query := `
			MERGE (a:User {id: $followerId})
			MERGE (b:User {id: $followingId})
			MERGE (a)-[r:FOLLOWS]->(b)
			ON CREATE SET r.status = $status, r.created_at = datetime(), r.fresh = true
			ON MATCH SET r.fresh = false
			RETURN r.fresh AS fresh
		`
		res, err := tx.Run(ctx, query, map[string]any{
			"followerId":  edge.FollowerID,
			"followingId": edge.FollowingID,
			"status":      string(edge.Status),
		})
		if err != nil {
			return false, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return false, err
		}
		fresh, _ := rec.Get("fresh")
		return fresh.(bool), nil
	})
	if err != nil {
		return fmt.Errorf("neo4j: insert edge: %w", err)
	}
	if !created.(bool) {
		return domain.ErrDuplicateRequest
	}
	return nil
}

func (r *Neo4jEdgeStore) GetStatus(ctx context.Context, followerID, followingID string) (domain.Status, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a:User {id: $followerId})-[r:FOLLOWS]->(b:User {id: $followingId})
			RETURN r.status AS status
		`
		res, err := tx.Run(ctx, query, map[string]any{"followerId": followerID, "followingId": followingID})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			status, _ := res.Record().Get("status")
			return domain.Status(status.(string)), nil
		}
		return domain.StatusNone, res.Err()
	})
	if err != nil {
		return domain.StatusNone, fmt.Errorf("neo4j: get status: %w", err)
	}
	return result.(domain.Status), nil
}

func (r *Neo4jEdgeStore) Accept(ctx context.Context, requesterID, accepterID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	flipped, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		// Flip aller + MERGE retour dans la même transaction managée.
		query := `
			MATCH (a:User {id: $requesterId})-[r:FOLLOWS]->(b:User {id: $accepterId})
			WHERE r.status = 'pending'
			SET r.status = 'accepted'
			MERGE (b)-[rev:FOLLOWS]->(a)
			ON CREATE SET rev.created_at = datetime()
			SET rev.status = 'accepted'
			RETURN count(r) AS flipped
		`
		res, err := tx.Run(ctx, query, map[string]any{"requesterId": requesterID, "accepterId": accepterID})
		if err != nil {
			return int64(0), err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return int64(0), err
		}
		flipped, _ := rec.Get("flipped")
		return flipped.(int64), nil
	})
	if err != nil {
		return fmt.Errorf("neo4j: accept: %w", err)
	}
	if flipped.(int64) == 0 {
		return domain.ErrNoSuchRequest
	}
	return nil
}

func (r *Neo4jEdgeStore) DeletePending(ctx context.Context, followerID, followingID string) error {
	return r.write(ctx, `
		MATCH (a:User {id: $a})-[r:FOLLOWS]->(b:User {id: $b})
		WHERE r.status = 'pending'
		DELETE r
	`, map[string]any{"a": followerID, "b": followingID})
}

func (r *Neo4jEdgeStore) DeleteBoth(ctx context.Context, aID, bID string) error {
	return r.write(ctx, `
		MATCH (a:User {id: $a})-[r:FOLLOWS]-(b:User {id: $b})
		DELETE r
	`, map[string]any{"a": aID, "b": bID})
}

func (r *Neo4jEdgeStore) ListCounterparts(ctx context.Context, userID string, dir domain.Direction, status domain.Status) ([]string, error) {
	query := `
		MATCH (u:User {id: $userId})-[r:FOLLOWS]->(other:User)
		WHERE r.status = $status
		RETURN other.id AS id
	`
	if dir == domain.DirectionIncoming {
		query = `
			MATCH (other:User)-[r:FOLLOWS]->(u:User {id: $userId})
			WHERE r.status = $status
			RETURN other.id AS id
		`
	}
	return r.readIDs(ctx, query, map[string]any{"userId": userID, "status": string(status)})
}

func (r *Neo4jEdgeStore) Neighbors(ctx context.Context, userID string) (map[string]struct{}, error) {
	ids, err := r.readIDs(ctx, `
		MATCH (u:User {id: $userId})-[:FOLLOWS]-(other:User)
		RETURN DISTINCT other.id AS id
	`, map[string]any{"userId": userID})
	if err != nil {
		return nil, err
	}
	neighbors := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		neighbors[id] = struct{}{}
	}
	return neighbors, nil
}

func (r *Neo4jEdgeStore) CountIncoming(ctx context.Context, userID string, status domain.Status) (int64, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (:User)-[r:FOLLOWS]->(u:User {id: $userId})
			WHERE r.status = $status
			RETURN count(r) AS n
		`, map[string]any{"userId": userID, "status": string(status)})
		if err != nil {
			return int64(0), err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return int64(0), err
		}
		n, _ := rec.Get("n")
		return n.(int64), nil
	})
	if err != nil {
		return 0, fmt.Errorf("neo4j: count incoming: %w", err)
	}
	return result.(int64), nil
}

// --- HELPERS ---

func (r *Neo4jEdgeStore) write(ctx context.Context, query string, params map[string]any) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, params)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("neo4j: write: %w", err)
	}
	return nil
}

func (r *Neo4jEdgeStore) readIDs(ctx context.Context, query string, params map[string]any) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		ids := []string{}
		for res.Next(ctx) {
			id, _ := res.Record().Get("id")
			ids = append(ids, id.(string))
		}
		return ids, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: read ids: %w", err)
	}
	return result.([]string), nil
}
