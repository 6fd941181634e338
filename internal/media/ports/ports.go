package ports

import (
	"context"
	"io"
)

// Driven Port : stockage binaire des médias (avatars, couvertures,
// images de posts).
type BlobStore interface {
	// Upload pousse le contenu du reader et renvoie l'URL publique.
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectName string) error
}
