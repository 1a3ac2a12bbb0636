package fetcher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/fetcher"
)

func TestStatic_Deterministic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := fetcher.NewStatic()

	first, err := s.UserProfile(ctx, "usr_1")
	require.NoError(t, err)
	second, err := s.UserProfile(ctx, "usr_1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "usr_1", first.UserID)
	assert.Equal(t, "child_001", first.PrimaryChildID)
}

func TestStatic_UnknownUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := &fetcher.Static{KnownUsers: map[string]bool{"usr_known": true}}

	_, err := s.UserProfile(ctx, "usr_known")
	require.NoError(t, err)

	_, err = s.UserProfile(ctx, "usr_stranger")
	assert.ErrorIs(t, err, fetcher.ErrNotFound)

	_, err = s.UserProfile(ctx, "")
	assert.ErrorIs(t, err, fetcher.ErrNotFound)
}

func TestStatic_SetCoversEverySource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	set := fetcher.NewStaticSet()

	_, err := set.Users.FamilyData(ctx, "usr_1")
	require.NoError(t, err)

	sub, err := set.Subscriptions.Subscription(ctx, "cus_1")
	require.NoError(t, err)
	assert.Equal(t, "Sprout", sub.Name)

	activity, err := set.Activity.ReadingActivity(ctx, "usr_1", "child_001")
	require.NoError(t, err)
	assert.Equal(t, 5, activity.ReadingStreak)

	_, err = set.Engagement.EngagementMetrics(ctx, "usr_1")
	require.NoError(t, err)

	recs, err := set.Stories.Recommendations(ctx, "child_001", 2)
	require.NoError(t, err)
	assert.Len(t, recs.SuggestedStories, 2)

	last, err := set.Stories.LastStory(ctx, "child_001")
	require.NoError(t, err)
	assert.Equal(t, "The Magical Forest", last.StoryTitle)
}

func TestMemoryKV(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := fetcher.NewMemoryKV()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", []byte("v"), 0))
	got, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryKV_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := fetcher.NewMemoryKV()

	require.NoError(t, kv.Set(ctx, "k", []byte("v"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

// countingUserSource records how often the upstream is hit.
type countingUserSource struct {
	fetcher.UserSource
	calls int
	err   error
}

func (c *countingUserSource) UserProfile(ctx context.Context, userID string) (emailctx.UserProfile, error) {
	c.calls++
	if c.err != nil {
		return emailctx.UserProfile{}, c.err
	}
	return c.UserSource.UserProfile(ctx, userID)
}

func TestCachedUserSource_ReadThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	upstream := &countingUserSource{UserSource: fetcher.NewStatic()}
	cached := fetcher.NewCachedUserSource(upstream, fetcher.NewMemoryKV(), nil)

	first, err := cached.UserProfile(ctx, "usr_1")
	require.NoError(t, err)
	second, err := cached.UserProfile(ctx, "usr_1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.calls)

	// A different user misses the cache.
	_, err = cached.UserProfile(ctx, "usr_2")
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedUserSource_ErrorNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	upstream := &countingUserSource{UserSource: fetcher.NewStatic(), err: errors.New("upstream down")}
	cached := fetcher.NewCachedUserSource(upstream, fetcher.NewMemoryKV(), nil)

	_, err := cached.UserProfile(ctx, "usr_1")
	require.Error(t, err)

	upstream.err = nil
	_, err = cached.UserProfile(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

// failingKV rejects every operation.
type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, fetcher.ErrCacheUnavailable
}

func (failingKV) Set(context.Context, string, []byte, time.Duration) error {
	return fetcher.ErrCacheUnavailable
}

func TestCachedUserSource_CacheFailureIsAMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	upstream := &countingUserSource{UserSource: fetcher.NewStatic()}
	cached := fetcher.NewCachedUserSource(upstream, failingKV{}, nil)

	profile, err := cached.UserProfile(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "usr_1", profile.UserID)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedUserSource_CorruptEntryIsAMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := fetcher.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "user:usr_1", []byte("{not json"), 0))

	upstream := &countingUserSource{UserSource: fetcher.NewStatic()}
	cached := fetcher.NewCachedUserSource(upstream, kv, nil)

	_, err := cached.UserProfile(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedSubscriptionSource_ReadThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := fetcher.NewMemoryKV()
	cached := fetcher.NewCachedSubscriptionSource(fetcher.NewStatic(), kv, nil)

	first, err := cached.Subscription(ctx, "cus_1")
	require.NoError(t, err)

	raw, ok, err := kv.Get(ctx, "subscription:cus_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, raw)

	second, err := cached.Subscription(ctx, "cus_1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCachedActivitySource_ScopesKeyByChild(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := fetcher.NewMemoryKV()
	cached := fetcher.NewCachedActivitySource(fetcher.NewStatic(), kv, nil)

	_, err := cached.ReadingActivity(ctx, "usr_1", "child_001")
	require.NoError(t, err)
	_, err = cached.ReadingActivity(ctx, "usr_1", "")
	require.NoError(t, err)

	_, ok, _ := kv.Get(ctx, "metrics:usr_1:child_001")
	assert.True(t, ok)
	_, ok, _ = kv.Get(ctx, "metrics:usr_1:all")
	assert.True(t, ok)
}
