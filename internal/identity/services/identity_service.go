package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fellipeca007/GuardaFlix/internal/identity/domain"
	"github.com/fellipeca007/GuardaFlix/internal/identity/ports"
)

type identityService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenProvider
}

func NewIdentityService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenProvider) ports.IdentityService {
	return &identityService{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *identityService) Register(ctx context.Context, cmd ports.RegisterCmd) (*ports.AuthResponse, error) {
	// Vérification "soft" d'unicité ; la contrainte UNIQUE de la DB
	// reste l'arbitre final sous concurrence.
	if existing, err := s.repo.GetByEmail(ctx, cmd.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hashing failed: %w", err)
	}

	user, err := domain.NewUser(cmd.Email, cmd.Username, hash)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("register: save failed: %w", err)
	}

	access, refresh, err := s.tokens.GenerateTokens(user)
	if err != nil {
		// Le compte existe déjà ; le client devra repasser par Login.
		return nil, fmt.Errorf("register: token generation failed: %w", err)
	}

	return &ports.AuthResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    15 * time.Minute,
	}, nil
}

func (s *identityService) Login(ctx context.Context, cmd ports.LoginCmd) (*ports.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		// Générique volontairement : ne pas révéler si l'email existe.
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, cmd.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, refresh, err := s.tokens.GenerateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("login: token generation failed: %w", err)
	}

	return &ports.AuthResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    15 * time.Minute,
	}, nil
}

func (s *identityService) ValidateToken(_ context.Context, token string) (string, error) {
	return s.tokens.Validate(token)
}

func (s *identityService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *identityService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if err := s.hasher.Compare(user.PasswordHash, oldPassword); err != nil {
		return fmt.Errorf("old password incorrect: %w", domain.ErrInvalidCredentials)
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.UpdatePassword(newHash)

	return s.repo.Update(ctx, user)
}
