package services

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// ListingCache holds the per-owner category listing keys. The rule that
// keeps it correct: drop the owner's key before an owned read and again
// right after a committed write, so a stale entry can never win a race
// against the write.
type ListingCache struct {
	redis *redis.Client
}

func NewListingCache(redisClient *redis.Client) *ListingCache {
	return &ListingCache{redis: redisClient}
}

func ownerKey(owner string) string {
	return fmt.Sprintf("categories:%s", owner)
}

func (c *ListingCache) InvalidateOwner(ctx context.Context, owner string) {
	if err := c.redis.Del(ctx, ownerKey(owner)).Err(); err != nil {
		log.Printf("Failed to invalidate listing cache for %s: %v", owner, err)
	}
}
