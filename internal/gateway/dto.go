package gateway

import (
	"time"

	feeddomain "github.com/fellipeca007/GuardaFlix/internal/feed/domain"
	postdomain "github.com/fellipeca007/GuardaFlix/internal/post/domain"
	profiledomain "github.com/fellipeca007/GuardaFlix/internal/profile/domain"
)

// DTOs JSON du gateway. Le domaine ne porte pas de tags de
// sérialisation : le mapping se fait ici, à la frontière.

type profileDTO struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"displayName"`
	Handle        string    `json:"handle"`
	AvatarURI     string    `json:"avatarUri,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	CoverURI      string    `json:"coverUri,omitempty"`
	CoverPosition string    `json:"coverPosition,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toProfileDTO(p *profiledomain.Profile) profileDTO {
	return profileDTO{
		ID:            p.ID,
		DisplayName:   p.DisplayName,
		Handle:        p.Handle,
		AvatarURI:     p.AvatarURI,
		Bio:           p.Bio,
		CoverURI:      p.CoverURI,
		CoverPosition: p.CoverPosition,
		UpdatedAt:     p.UpdatedAt,
	}
}

type commentDTO struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type postDTO struct {
	ID        string       `json:"id"`
	AuthorID  string       `json:"authorId"`
	Content   string       `json:"content"`
	ImageURI  string       `json:"imageUri,omitempty"`
	Sentiment string       `json:"sentiment,omitempty"`
	LikeCount int64        `json:"likeCount"`
	Comments  []commentDTO `json:"comments"`
	CreatedAt time.Time    `json:"createdAt"`
}

func toPostDTO(p *postdomain.Post) postDTO {
	comments := make([]commentDTO, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, commentDTO{
			ID:        c.ID,
			AuthorID:  c.AuthorID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return postDTO{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Content:   p.Content,
		ImageURI:  p.ImageURI,
		Sentiment: p.Sentiment,
		LikeCount: p.LikeCount,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}

func toPostDTOs(posts []*postdomain.Post) []postDTO {
	out := make([]postDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p))
	}
	return out
}

type authorDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Handle      string `json:"handle"`
	AvatarURI   string `json:"avatarUri,omitempty"`
}

type feedEntryDTO struct {
	Post    postDTO   `json:"post"`
	Author  authorDTO `json:"author"`
	IsLiked bool      `json:"isLiked"`
}

func toFeedEntryDTOs(entries []*feeddomain.FeedEntry) []feedEntryDTO {
	out := make([]feedEntryDTO, 0, len(entries))
	for _, e := range entries {
		post := e.Post
		out = append(out, feedEntryDTO{
			Post: toPostDTO(&post),
			Author: authorDTO{
				ID:          e.Author.ID,
				DisplayName: e.Author.DisplayName,
				Handle:      e.Author.Handle,
				AvatarURI:   e.Author.AvatarURI,
			},
			IsLiked: e.IsLiked,
		})
	}
	return out
}
