package googleauth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/londonslush-leads/internal/logger"
)

// TokenCache stores access tokens by service-account email. A failing cache
// behaves like an empty one.
type TokenCache interface {
	Get(ctx context.Context, key string) (Token, bool)
	Set(ctx context.Context, key string, tok Token)
}

type MemoryCache struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{tokens: make(map[string]Token)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Token, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tok, ok := c.tokens[key]
	return tok, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, tok Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[key] = tok
}

// RedisCache shares tokens between replicas so each one does not mint its own.
type RedisCache struct {
	client *redis.Client
	prefix string
	log    logger.Logger
	now    func() time.Time
}

func NewRedisCache(client *redis.Client, log logger.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "leadsync:google-token:",
		log:    log,
		now:    time.Now,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Token, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return Token{}, false
	}
	if err != nil {
		c.log.Warn("token cache read failed", map[string]interface{}{"error": err.Error()})
		return Token{}, false
	}

	var tok Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		c.log.Warn("token cache entry unreadable", map[string]interface{}{"error": err.Error()})
		return Token{}, false
	}
	return tok, true
}

func (c *RedisCache) Set(ctx context.Context, key string, tok Token) {
	ttl := tok.ExpiresAt.Sub(c.now())
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(tok)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		c.log.Warn("token cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
