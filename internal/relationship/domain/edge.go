package domain

import (
	"errors"
	"time"
)

// --- ERREURS DU DOMAINE ---
var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrDuplicateRequest = errors.New("relationship already exists")
	ErrNoSuchRequest    = errors.New("no pending request between these users")
	ErrUnknownTarget    = errors.New("target user does not exist")
	ErrEmptyUserID      = errors.New("user id cannot be empty")
)

// Status est le statut d'une arête dirigée.
// "none" n'est JAMAIS persisté : c'est l'absence d'arête.
type Status string

const (
	StatusNone     Status = "none"
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

// Direction d'une requête sur le graphe (qui suit qui).
type Direction string

const (
	DirectionOutgoing Direction = "outgoing" // arêtes dont user est le follower
	DirectionIncoming Direction = "incoming" // arêtes dont user est la cible
)

// Edge représente un lien dirigé (Follower -> Following) avec son statut.
// Invariant : au plus UNE arête par paire ordonnée (follower, following).
type Edge struct {
	FollowerID  string
	FollowingID string
	Status      Status
	CreatedAt   time.Time
}

// NewPendingEdge crée l'arête initiale d'une demande d'amitié.
func NewPendingEdge(followerID, followingID string) Edge {
	return Edge{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}
