package ports

import (
	"context"
	"time"

	"github.com/fellipeca007/GuardaFlix/internal/identity/domain"
)

type RegisterCmd struct {
	Email    string
	Username string
	Password string
}

type LoginCmd struct {
	Email    string
	Password string
}

type AuthResponse struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// IdentityService est le fournisseur d'identité du système.
// ValidateToken est le "currentUserId" du reste de l'application :
// un token valide résout vers un id stable, sinon erreur.
type IdentityService interface {
	Register(ctx context.Context, cmd RegisterCmd) (*AuthResponse, error)
	Login(ctx context.Context, cmd LoginCmd) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (string, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
