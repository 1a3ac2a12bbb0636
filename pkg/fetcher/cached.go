package fetcher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/logger"
)

// Cache TTLs, sized to how quickly each source goes stale.
const (
	UserProfileTTL  = time.Hour
	SubscriptionTTL = 15 * time.Minute
	MetricsTTL      = 5 * time.Minute
)

// CachedUserSource adds read-through caching for user profiles. Child and
// family lookups pass through uncached; they are cheap and change often.
type CachedUserSource struct {
	UserSource
	kv  KV
	log *slog.Logger
}

// NewCachedUserSource wraps src with profile caching over kv.
func NewCachedUserSource(src UserSource, kv KV, log *slog.Logger) *CachedUserSource {
	if log == nil {
		log = logger.Discard()
	}
	return &CachedUserSource{UserSource: src, kv: kv, log: log}
}

func (c *CachedUserSource) UserProfile(ctx context.Context, userID string) (emailctx.UserProfile, error) {
	key := "user:" + userID

	var cached emailctx.UserProfile
	if readCache(ctx, c.kv, c.log, key, &cached) {
		return cached, nil
	}

	profile, err := c.UserSource.UserProfile(ctx, userID)
	if err != nil {
		return emailctx.UserProfile{}, err
	}

	writeCache(ctx, c.kv, c.log, key, profile, UserProfileTTL)
	return profile, nil
}

// CachedSubscriptionSource adds read-through caching for billing state.
type CachedSubscriptionSource struct {
	SubscriptionSource
	kv  KV
	log *slog.Logger
}

// NewCachedSubscriptionSource wraps src with subscription caching over kv.
func NewCachedSubscriptionSource(src SubscriptionSource, kv KV, log *slog.Logger) *CachedSubscriptionSource {
	if log == nil {
		log = logger.Discard()
	}
	return &CachedSubscriptionSource{SubscriptionSource: src, kv: kv, log: log}
}

func (c *CachedSubscriptionSource) Subscription(ctx context.Context, customerID string) (emailctx.Subscription, error) {
	key := "subscription:" + customerID

	var cached emailctx.Subscription
	if readCache(ctx, c.kv, c.log, key, &cached) {
		return cached, nil
	}

	sub, err := c.SubscriptionSource.Subscription(ctx, customerID)
	if err != nil {
		return emailctx.Subscription{}, err
	}

	writeCache(ctx, c.kv, c.log, key, sub, SubscriptionTTL)
	return sub, nil
}

// CachedActivitySource adds read-through caching for reading activity.
// Achievement lookups pass through uncached.
type CachedActivitySource struct {
	ActivitySource
	kv  KV
	log *slog.Logger
}

// NewCachedActivitySource wraps src with activity metric caching over kv.
func NewCachedActivitySource(src ActivitySource, kv KV, log *slog.Logger) *CachedActivitySource {
	if log == nil {
		log = logger.Discard()
	}
	return &CachedActivitySource{ActivitySource: src, kv: kv, log: log}
}

func (c *CachedActivitySource) ReadingActivity(ctx context.Context, userID, childID string) (emailctx.ReadingActivity, error) {
	scope := childID
	if scope == "" {
		scope = "all"
	}
	key := "metrics:" + userID + ":" + scope

	var cached emailctx.ReadingActivity
	if readCache(ctx, c.kv, c.log, key, &cached) {
		return cached, nil
	}

	activity, err := c.ActivitySource.ReadingActivity(ctx, userID, childID)
	if err != nil {
		return emailctx.ReadingActivity{}, err
	}

	writeCache(ctx, c.kv, c.log, key, activity, MetricsTTL)
	return activity, nil
}

// readCache treats every cache failure as a miss.
func readCache(ctx context.Context, kv KV, log *slog.Logger, key string, dst any) bool {
	if kv == nil {
		return false
	}

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Warn("cache read failed", slog.String("key", key), logger.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn("cache entry corrupt", slog.String("key", key), logger.Error(err))
		return false
	}
	return true
}

// writeCache failures are logged and swallowed; a cold cache is not an error.
func writeCache(ctx context.Context, kv KV, log *slog.Logger, key string, value any, ttl time.Duration) {
	if kv == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn("cache encode failed", slog.String("key", key), logger.Error(err))
		return
	}
	if err := kv.Set(ctx, key, raw, ttl); err != nil {
		log.Warn("cache write failed", slog.String("key", key), logger.Error(err))
	}
}
