package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fellipeca007/GuardaFlix/internal/profile/domain"
	"github.com/fellipeca007/GuardaFlix/internal/profile/ports"
)

type profileService struct {
	repo ports.ProfileRepository
}

func NewProfileService(repo ports.ProfileRepository) ports.ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.repo.Get(ctx, userID)
}

func (s *profileService) Upsert(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	// Charge l'existant ; une fiche vierge si première écriture.
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		profile = &domain.Profile{ID: userID}
	}

	if patch.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*patch.DisplayName)
	}
	if patch.Handle != nil {
		handle, err := domain.NormalizeHandle(*patch.Handle)
		if err != nil {
			return nil, err
		}
		profile.Handle = handle
	}
	if patch.AvatarURI != nil {
		profile.AvatarURI = *patch.AvatarURI
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.CoverURI != nil {
		profile.CoverURI = *patch.CoverURI
	}
	if patch.CoverPosition != nil {
		profile.CoverPosition = *patch.CoverPosition
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Search(ctx context.Context, query, selfID string, limit int) ([]*domain.Profile, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query), selfID, limit)
}

func (s *profileService) Exists(ctx context.Context, userID string) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

func (s *profileService) ListCandidates(ctx context.Context, excludeID string, limit int) ([]string, error) {
	return s.repo.ListIDs(ctx, excludeID, limit)
}
