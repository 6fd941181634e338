package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- ERREURS DU DOMAINE ---
var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("only the author may do that")
	ErrEmptyContent = errors.New("post content cannot be empty")
)

type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}

// Post est l'entité de publication. LikeCount et Comments sont des
// agrégats dérivés, hydratés à la lecture.
type Post struct {
	ID        string
	AuthorID  string
	Content   string
	ImageURI  string // optionnel
	Sentiment string // optionnel, tag d'humeur ("😍 apaixonado", etc.)
	LikeCount int64
	Comments  []Comment
	CreatedAt time.Time
}

// NewPost valide et construit une publication. L'identité est générée
// ici, pas en base.
func NewPost(authorID, content, imageURI, sentiment string) (*Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && imageURI == "" {
		return nil, ErrEmptyContent
	}
	return &Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Content:   content,
		ImageURI:  imageURI,
		Sentiment: sentiment,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func NewComment(postID, authorID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return &Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}
