package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/storybud/emailkit/pkg/emailctx"
)

// Static serves deterministic records for every source interface. The same
// ID always yields the same data, which makes it the backing store for
// tests, local development and template previews.
//
// Known IDs carry a fully populated household; unknown user IDs return
// ErrNotFound so failure paths stay testable.
type Static struct {
	// KnownUsers restricts UserProfile to the listed IDs when non-empty.
	// An empty map accepts every ID.
	KnownUsers map[string]bool
}

// NewStatic returns a Static accepting every user ID.
func NewStatic() *Static {
	return &Static{}
}

// NewStaticSet returns a Set with a single Static behind every interface.
func NewStaticSet() Set {
	s := NewStatic()
	return Set{
		Users:         s,
		Subscriptions: s,
		Activity:      s,
		Engagement:    s,
		Stories:       s,
	}
}

func (s *Static) UserProfile(_ context.Context, userID string) (emailctx.UserProfile, error) {
	if userID == "" {
		return emailctx.UserProfile{}, fmt.Errorf("%w: empty user id", ErrNotFound)
	}
	if len(s.KnownUsers) > 0 && !s.KnownUsers[userID] {
		return emailctx.UserProfile{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	return emailctx.UserProfile{
		UserID:             userID,
		UserName:           "Sarah Johnson",
		UserEmail:          "sarah@example.com",
		FirstName:          "Sarah",
		LastName:           "Johnson",
		AccountCreatedDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		LastLoginDate:      time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		Timezone:           "America/New_York",
		PreferredLanguage:  "en",
		ReferralCode:       "SARAH2024",
		StripeCustomerID:   "cus_" + userID,
		PrimaryChildID:     "child_001",
	}, nil
}

func (s *Static) ChildProfile(_ context.Context, childID, userID string) (emailctx.ChildProfile, error) {
	return emailctx.ChildProfile{
		ChildID:        childID,
		ChildName:      "Emma",
		ChildAge:       7,
		BirthDate:      time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC),
		Interests:      []string{"dragons", "space", "friendship", "animals"},
		ReadingLevel:   "intermediate",
		FavoriteThemes: []string{"adventure", "fantasy", "mystery"},
		AvatarURL:      "https://example.com/avatar.png",
		ParentUserID:   userID,
	}, nil
}

func (s *Static) FamilyData(ctx context.Context, userID string) (emailctx.FamilyData, error) {
	first, err := s.ChildProfile(ctx, "child_001", userID)
	if err != nil {
		return emailctx.FamilyData{}, err
	}
	second, err := s.ChildProfile(ctx, "child_002", userID)
	if err != nil {
		return emailctx.FamilyData{}, err
	}
	second.ChildName = "Liam"
	second.ChildAge = 5

	return emailctx.FamilyData{
		FamilyMembersCount: 3,
		ChildProfiles:      []emailctx.ChildProfile{first, second},
		SharedStoriesCount: 15,
		FavoriteCoauthor:   "Grandma",
		FamilyReadingGoal:  "5",
		FamilyAchievements: []string{"Family Reader", "Story Sharers"},
		SiblingsNames:      []string{"Liam"},
	}, nil
}

func (s *Static) Subscription(_ context.Context, customerID string) (emailctx.Subscription, error) {
	return emailctx.Subscription{
		SubscriptionID:       "sub_" + customerID,
		Name:                 "Sprout",
		Price:                "$9.99",
		Status:               "active",
		NextBillingDate:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		RenewalDate:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		DaysUntilRenewal:     18,
		CreditsRemaining:     42,
		CreditsUsedThisMonth: 8,
		MonthlyCreditsLimit:  50,
		LifetimeValue:        89.91,
		StripeCustomerID:     customerID,
		PaymentMethodLast4:   "4242",
	}, nil
}

func (s *Static) ReadingActivity(_ context.Context, userID, childID string) (emailctx.ReadingActivity, error) {
	return emailctx.ReadingActivity{
		TotalStoriesCreated:       15,
		TotalStoriesCompleted:     12,
		ReadingStreak:             5,
		LongestStreak:             9,
		AverageReadingTime:        12,
		TotalReadingTime:          180,
		LastStoryDate:             time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		DaysSinceLastStory:        3,
		PeakReadingHour:           "7 PM",
		WeeklyReadingGoal:         3,
		WeeklyReadingProgress:     2,
		StoriesStartedNotFinished: 1,
		FavoriteReadingDay:        "Sunday",
	}, nil
}

func (s *Static) Achievements(_ context.Context, userID, childID string) (emailctx.AchievementData, error) {
	return emailctx.AchievementData{
		BadgesEarned:            []string{"Story Explorer", "Week Warrior"},
		TotalBadgeCount:         2,
		NextMilestone:           "20 Stories Completed",
		ProgressToNextMilestone: 60,
		StoriesUntilNextBadge:   5,
		ReadingLevelProgress:    45,
		CurrentLevel:            "Story Explorer",
		NextLevel:               "Book Adventurer",
		RecentAchievements: []emailctx.Achievement{
			{Name: "Week Warrior", Icon: "🔥", Date: "Last week"},
		},
	}, nil
}

func (s *Static) EngagementMetrics(_ context.Context, userID string) (emailctx.EngagementMetrics, error) {
	return emailctx.EngagementMetrics{
		DaysSinceLastLogin:     2,
		FavoriteStoryTheme:     "Adventure",
		MostActiveDay:          "Sunday",
		MostActiveTime:         "evening",
		EmailOpenRate:          0.62,
		EmailClickRate:         0.18,
		AppSessionsThisWeek:    6,
		AverageSessionDuration: 14,
		StoriesSharedCount:     4,
		ReferralCount:          1,
	}, nil
}

func (s *Static) StoryDetails(_ context.Context, storyID string) (*emailctx.StoryMetadata, error) {
	if storyID == "" {
		return nil, fmt.Errorf("%w: empty story id", ErrNotFound)
	}

	return &emailctx.StoryMetadata{
		StoryID:           storyID,
		StoryTitle:        "The Dragon's Space Adventure",
		StoryTheme:        "Adventure",
		StoryPreviewText:  "Emma and her dragon friend blast off to the stars.",
		ReadingTime:       "10 minutes",
		AgeRange:          "5-7",
		CreatedDate:       time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		StoryLink:         "https://storybud.com/stories/" + storyID,
		KeyLesson:         "Courage grows when friends stick together.",
		EducationalTopics: []string{"space", "teamwork"},
		CharacterNames:    []string{"Emma", "Sparky"},
		IsCompleted:       false,
		CompletionPercentage: 40,
	}, nil
}

func (s *Static) LastStory(_ context.Context, childID string) (*emailctx.StoryMetadata, error) {
	return &emailctx.StoryMetadata{
		StoryID:       "story_latest_" + childID,
		StoryTitle:    "The Magical Forest",
		StoryTheme:    "Fantasy",
		ReadingTime:   "8 minutes",
		AgeRange:      "5-7",
		CreatedDate:   time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		CompletedDate: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		StoryLink:     "https://storybud.com/stories/story_latest_" + childID,
		IsCompleted:   true,
		IsFavorite:    true,
	}, nil
}

func (s *Static) Recommendations(ctx context.Context, childID string, limit int) (emailctx.Recommendations, error) {
	child, err := s.ChildProfile(ctx, childID, "")
	if err != nil {
		return emailctx.Recommendations{}, err
	}

	suggestions := []emailctx.SuggestedStory{
		{Title: "The dragons Adventure", Emoji: "🌟", Description: "Explore the world of dragons in this exciting journey"},
		{Title: "adventure Mystery", Emoji: "🔍", Description: "Solve puzzles and uncover secrets about adventure"},
		{Title: "The Brave space Explorer", Emoji: "🚀", Description: "Discover new worlds through space and courage"},
	}
	if limit > 0 && limit < len(suggestions) {
		suggestions = suggestions[:limit]
	}

	return emailctx.Recommendations{
		RecommendedThemes:      child.FavoriteThemes,
		TrendingStoryTypes:     []string{"Underwater Adventures", "Dinosaur Discovery"},
		AgeAppropriateTopics:   []string{"Mystery", "Science", "Sports", "Fantasy", "Problem-Solving"},
		SuggestedStories:       suggestions,
		PersonalizedCategories: []string{"Dragon Tales", "Space Exploration", "Animal Adventures"},
		NextStoryIdeas:         []string{"A mystery in the dragon kingdom", "Emma's first space walk"},
	}, nil
}
