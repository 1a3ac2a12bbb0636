package fetcher

import (
	"context"

	"github.com/storybud/emailkit/pkg/emailctx"
)

// UserSource provides account, child and family records.
type UserSource interface {
	UserProfile(ctx context.Context, userID string) (emailctx.UserProfile, error)
	ChildProfile(ctx context.Context, childID, userID string) (emailctx.ChildProfile, error)
	FamilyData(ctx context.Context, userID string) (emailctx.FamilyData, error)
}

// SubscriptionSource provides billing state for a payment customer.
type SubscriptionSource interface {
	Subscription(ctx context.Context, customerID string) (emailctx.Subscription, error)
}

// ActivitySource provides reading behavior and earned achievements.
type ActivitySource interface {
	ReadingActivity(ctx context.Context, userID, childID string) (emailctx.ReadingActivity, error)
	Achievements(ctx context.Context, userID, childID string) (emailctx.AchievementData, error)
}

// EngagementSource provides product analytics signals.
type EngagementSource interface {
	EngagementMetrics(ctx context.Context, userID string) (emailctx.EngagementMetrics, error)
}

// StorySource provides story records and personalized recommendations.
type StorySource interface {
	StoryDetails(ctx context.Context, storyID string) (*emailctx.StoryMetadata, error)
	LastStory(ctx context.Context, childID string) (*emailctx.StoryMetadata, error)
	Recommendations(ctx context.Context, childID string, limit int) (emailctx.Recommendations, error)
}

// Set groups one implementation of every source for handoff to the email
// service.
type Set struct {
	Users         UserSource
	Subscriptions SubscriptionSource
	Activity      ActivitySource
	Engagement    EngagementSource
	Stories       StorySource
}
