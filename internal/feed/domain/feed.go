package domain

import (
	"errors"
	"time"

	postdomain "github.com/fellipeca007/GuardaFlix/internal/post/domain"
)

// ErrProfileHidden : le viewer n'a pas d'arête acceptée vers la cible.
var ErrProfileHidden = errors.New("profile is not visible to you")

// AuthorMeta : métadonnées d'affichage de l'auteur, jointes au moment
// de la construction du feed.
type AuthorMeta struct {
	ID          string
	DisplayName string
	Handle      string
	AvatarURI   string
}

// FeedEntry est un view-model éphémère : un post décoré du "liké par
// le viewer" et de l'auteur. Jamais persisté, reconstruit à chaque
// requête.
type FeedEntry struct {
	Post    postdomain.Post
	Author  AuthorMeta
	IsLiked bool
}

// TimelineItem est l'entrée compacte poussée dans le cache de
// timelines lors du fan-out.
type TimelineItem struct {
	PostID    string
	AuthorID  string
	CreatedAt time.Time
}
