package clients

import (
	"context"

	"github.com/fellipeca007/GuardaFlix/internal/feed/ports"
	reldomain "github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
	relports "github.com/fellipeca007/GuardaFlix/internal/relationship/ports"
)

// GraphClient adapte le service de graphe in-process à la surface
// minimale dont le feed a besoin.
type GraphClient struct {
	relationships relports.RelationshipService
}

func NewGraphClient(relationships relports.RelationshipService) ports.GraphClient {
	return &GraphClient{relationships: relationships}
}

func (c *GraphClient) AcceptedOutgoing(ctx context.Context, userID string) ([]string, error) {
	return c.relationships.ListAccepted(ctx, userID, reldomain.DirectionOutgoing)
}

func (c *GraphClient) AcceptedIncoming(ctx context.Context, userID string) ([]string, error) {
	return c.relationships.ListAccepted(ctx, userID, reldomain.DirectionIncoming)
}

func (c *GraphClient) StatusBetween(ctx context.Context, aID, bID string) (reldomain.Status, error) {
	return c.relationships.StatusBetween(ctx, aID, bID)
}
