package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidHandle   = errors.New("handle cannot be empty")
)

// Profile est la fiche publique d'un utilisateur. L'id vient du
// fournisseur d'identité ; le profil ne fait que le référencer.
type Profile struct {
	ID            string
	DisplayName   string
	Handle        string // toujours préfixé "@"
	AvatarURI     string
	Bio           string
	CoverURI      string
	CoverPosition string // valeur CSS object-position, rendue telle quelle
	UpdatedAt     time.Time
}

// ProfilePatch : mise à jour partielle. nil = champ inchangé.
type ProfilePatch struct {
	DisplayName   *string
	Handle        *string
	AvatarURI     *string
	Bio           *string
	CoverURI      *string
	CoverPosition *string
}

// NormalizeHandle nettoie un handle saisi : ni espaces ni '@' internes,
// préfixe '@' unique.
func NormalizeHandle(raw string) (string, error) {
	clean := strings.NewReplacer("@", "", " ", "").Replace(strings.TrimSpace(raw))
	if clean == "" {
		return "", ErrInvalidHandle
	}
	return "@" + clean, nil
}
