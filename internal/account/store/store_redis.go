package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"bankapi/internal/account/models"
	txctx "bankapi/pkg/platform/tx"
)

const accountKeyPrefix = "account:number:"

// Cached decorates a Store with a Redis read-through cache keyed by account
// number. Balance updates evict the cached entry; cache errors fall back to
// the underlying store.
type Cached struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// CachedOption configures a Cached store.
type CachedOption func(*Cached)

func WithCacheTTL(ttl time.Duration) CachedOption {
	return func(c *Cached) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CachedOption {
	return func(c *Cached) {
		c.logger = logger
	}
}

func NewCached(next Store, client *redis.Client, opts ...CachedOption) *Cached {
	c := &Cached{
		next:   next,
		client: client,
		ttl:    time.Minute,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Cached) Create(ctx context.Context, account *models.Account) error {
	return c.next.Create(ctx, account)
}

func (c *Cached) FindBySortCodeAndNumber(ctx context.Context, sortCode, accountNumber string) (*models.Account, error) {
	if cached, ok := c.get(ctx, accountNumber); ok && cached.SortCode == sortCode {
		return cached, nil
	}
	account, err := c.next.FindBySortCodeAndNumber(ctx, sortCode, accountNumber)
	if err != nil {
		return nil, err
	}
	c.put(ctx, account)
	return account, nil
}

func (c *Cached) FindByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	if cached, ok := c.get(ctx, accountNumber); ok {
		return cached, nil
	}
	account, err := c.next.FindByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	c.put(ctx, account)
	return account, nil
}

// UpdateBalance evicts once the surrounding transaction commits, so a reader
// racing the update cannot repopulate the cache with the old balance.
func (c *Cached) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	if err := c.next.UpdateBalance(ctx, id, balance); err != nil {
		return err
	}
	txctx.AfterCommit(ctx, func(ctx context.Context) { c.evict(ctx, id) })
	return nil
}

// evict drops every entry pointing at id; the cache is keyed by number.
func (c *Cached) evict(ctx context.Context, id uuid.UUID) {
	keys, err := c.client.SMembers(ctx, idIndexKey(id)).Result()
	if err != nil {
		c.logger.WarnContext(ctx, "account cache index read failed", "account_id", id, "error", err)
		return
	}
	keys = append(keys, idIndexKey(id))
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WarnContext(ctx, "account cache eviction failed", "account_id", id, "error", err)
	}
}

func (c *Cached) get(ctx context.Context, accountNumber string) (*models.Account, bool) {
	raw, err := c.client.Get(ctx, accountKeyPrefix+accountNumber).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "account cache read failed", "error", err)
		}
		return nil, false
	}
	var account models.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		c.logger.WarnContext(ctx, "account cache entry corrupt", "error", err)
		return nil, false
	}
	return &account, true
}

func (c *Cached) put(ctx context.Context, account *models.Account) {
	raw, err := json.Marshal(account)
	if err != nil {
		return
	}
	key := accountKeyPrefix + account.AccountNumber
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, raw, c.ttl)
		pipe.SAdd(ctx, idIndexKey(account.ID), key)
		pipe.Expire(ctx, idIndexKey(account.ID), c.ttl)
		return nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "account cache write failed", "error", err)
	}
}

func idIndexKey(id uuid.UUID) string {
	return "account:id:" + id.String()
}
