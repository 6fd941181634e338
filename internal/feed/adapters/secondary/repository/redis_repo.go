package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fellipeca007/GuardaFlix/internal/feed/domain"
	"github.com/fellipeca007/GuardaFlix/internal/feed/ports"
)

// timelineCap : nombre max d'items gardés par timeline (économie RAM).
const timelineCap = 500

// RedisTimelineCache stocke une timeline par utilisateur dans un
// Sorted Set, scoré par date de création du post.
type RedisTimelineCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTimelineCache(client *redis.Client) ports.TimelineCache {
	return &RedisTimelineCache{
		client: client,
		ttl:    24 * 30 * time.Hour, // on ne garde pas l'infini en RAM
	}
}

func timelineKey(userID string) string {
	return fmt.Sprintf("timeline:%s", userID)
}

func (r *RedisTimelineCache) AddToTimelines(ctx context.Context, userIDs []string, item *domain.TimelineItem) error {
	pipe := r.client.Pipeline()

	// Format du membre : "author-uuid/post-uuid" (les uuids ne
	// contiennent pas de '/').
	member := item.AuthorID + "/" + item.PostID
	score := float64(item.CreatedAt.Unix())

	for _, uid := range userIDs {
		key := timelineKey(uid)
		pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: member})
		// Capping : on ne garde que les timelineCap plus récents.
		pipe.ZRemRangeByRank(ctx, key, 0, int64(-timelineCap-1))
		pipe.Expire(ctx, key, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: add to timelines: %w", err)
	}
	return nil
}

func (r *RedisTimelineCache) GetTimeline(ctx context.Context, userID string, limit int64) ([]*domain.TimelineItem, error) {
	results, err := r.client.ZRevRangeWithScores(ctx, timelineKey(userID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: get timeline: %w", err)
	}

	items := make([]*domain.TimelineItem, 0, len(results))
	for _, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		authorID, postID, found := strings.Cut(member, "/")
		if !found {
			// Donnée corrompue ou ancien format : on saute.
			continue
		}
		items = append(items, &domain.TimelineItem{
			PostID:    postID,
			AuthorID:  authorID,
			CreatedAt: time.Unix(int64(z.Score), 0),
		})
	}
	return items, nil
}
