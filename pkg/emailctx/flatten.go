package emailctx

import (
	"fmt"
	"strings"
	"time"
)

// Variables is the flat, string-keyed projection of a Context used for
// template rendering. Values may be nil before fallback resolution.
type Variables map[string]any

// String returns the stringified value for key, or "" when the key is absent
// or nil.
func (v Variables) String(key string) string {
	val, ok := v[key]
	if !ok || val == nil {
		return ""
	}
	if s, isStr := val.(string); isStr {
		return s
	}
	return fmt.Sprint(val)
}

// Has reports whether key holds a non-nil, non-empty value.
func (v Variables) Has(key string) bool {
	val, ok := v[key]
	if !ok || val == nil {
		return false
	}
	if s, isStr := val.(string); isStr {
		return s != ""
	}
	return true
}

// Clone returns a shallow copy so enrichment stages can build on a mapping
// without mutating their input.
func (v Variables) Clone() Variables {
	out := make(Variables, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Flatten projects the context into template variables. The projection is
// pure and total: the same context always yields the same mapping, and every
// declared key is present even when its value is nil. Array-valued profile
// fields are comma-joined; optional story aggregates resolve null-safely to
// nil rather than panicking.
func (c *Context) Flatten() Variables {
	vars := Variables{
		// User variables
		"user_name":              c.User.UserName,
		"user_email":             c.User.UserEmail,
		"first_name":             c.User.FirstName,
		"last_name":              c.User.LastName,
		"referral_code":          c.User.ReferralCode,
		"referred_friends_count": c.User.ReferredFriendsCount,
		"account_anniversary":    timeOrNil(c.User.AccountAnniversary),

		// Child variables
		"child_name":         c.Child.ChildName,
		"child_age":          positiveOrNil(c.Child.ChildAge),
		"child_interests":    strings.Join(c.Child.Interests, ", "),
		"reading_level":      c.Child.ReadingLevel,
		"favorite_character": c.Child.FavoriteCharacter,
		"favorite_themes":    strings.Join(c.Child.FavoriteThemes, ", "),

		// Subscription variables
		"subscription_name":         c.Subscription.Name,
		"subscription_price":        c.Subscription.Price,
		"subscription_status":       c.Subscription.Status,
		"trial_days_remaining":      c.Subscription.TrialDaysRemaining,
		"next_billing_date":         timeOrNil(c.Subscription.NextBillingDate),
		"subscription_renewal_date": firstTime(c.Subscription.RenewalDate, c.Subscription.NextBillingDate),
		"days_until_renewal":        firstInt(c.Subscription.DaysUntilRenewal, c.Subscription.TrialDaysRemaining),
		"credits_remaining":         c.Subscription.CreditsRemaining,
		"credits_used_this_month":   c.Subscription.CreditsUsedThisMonth,
		"discount_amount":           c.Subscription.DiscountAmount,
		"discount_percentage":       positiveOrNil(c.Subscription.DiscountPercentage),
		"active_promo_code":         c.Subscription.ActivePromoCode,

		// Activity variables; count keys carry declared aliases which must
		// always resolve to identical values.
		"stories_created":              c.Activity.TotalStoriesCreated,
		"stories_created_count":        c.Activity.TotalStoriesCreated,
		"stories_completed":            c.Activity.TotalStoriesCompleted,
		"stories_read_count":           c.Activity.TotalStoriesCompleted,
		"total_stories_completed":      c.Activity.TotalStoriesCompleted,
		"reading_streak":               c.Activity.ReadingStreak,
		"longest_streak":               c.Activity.LongestStreak,
		"avg_reading_time":             c.Activity.AverageReadingTime,
		"total_reading_time":           c.Activity.TotalReadingTime,
		"last_story_date":              timeOrNil(c.Activity.LastStoryDate),
		"days_since_last_story":        positiveOrNil(c.Activity.DaysSinceLastStory),
		"peak_reading_hour":            c.Activity.PeakReadingHour,
		"stories_started_not_finished": c.Activity.StoriesStartedNotFinished,
		"reading_goal_progress":        c.Activity.WeeklyReadingProgress,
		"weekly_reading_goal":          c.Activity.WeeklyReadingGoal,
		"weekly_reading_progress":      c.Activity.WeeklyReadingProgress,

		// Achievement variables
		"badges_earned":            strings.Join(c.Achievements.BadgesEarned, ", "),
		"total_badges":             c.Achievements.TotalBadgeCount,
		"next_milestone":           c.Achievements.NextMilestone,
		"milestone_achieved":       firstAchievementName(c.Achievements.RecentAchievements),
		"stories_until_next_badge": c.Achievements.StoriesUntilNextBadge,
		"reading_level_progress":   c.Achievements.ReadingLevelProgress,
		"current_level":            c.Achievements.CurrentLevel,

		// Engagement variables
		"favorite_story_theme": c.Engagement.FavoriteStoryTheme,

		// Recommendations
		"recommended_themes":     c.Recommendations.RecommendedThemes,
		"trending_story_types":   c.Recommendations.TrendingStoryTypes,
		"age_appropriate_topics": c.Recommendations.AgeAppropriateTopics,
		"recommended_stories":    c.Recommendations.SuggestedStories,

		// Family variables
		"family_members_count": c.Family.FamilyMembersCount,
		"shared_stories_count": c.Family.SharedStoriesCount,
		"favorite_coauthor":    c.Family.FavoriteCoauthor,
		"siblings_names":       strings.Join(c.Family.SiblingsNames, ", "),

		// Navigation links keep their camelCase contract names.
		"mainCtaLink":       c.Links.MainCTALink,
		"createStoryLink":   c.Links.CreateStoryLink,
		"browseStoriesLink": c.Links.BrowseStoriesLink,
		"profileLink":       c.Links.ProfileLink,
		"settingsLink":      c.Links.SettingsLink,
		"feedbackLink":      c.Links.FeedbackLink,
		"upgradeLink":       c.Links.UpgradeLink,
		"unsubscribeLink":   c.Links.UnsubscribeLink,
		"logoUrl":           c.Links.LogoURL,

		// Special occasions
		"isBirthday":    c.Occasions.IsBirthday,
		"birthdayDate":  timeOrNil(c.Occasions.BirthdayDate),
		"holidayName":   c.Occasions.HolidayName,
		"seasonalTheme": c.Occasions.SeasonalTheme,
	}

	// Current/last story variables resolve null-safely: when the aggregate
	// is absent, the keys are present with nil values.
	vars["story_title"] = storyField(c.CurrentStory, func(s *StoryMetadata) any { return s.StoryTitle })
	vars["last_story_title"] = storyField(c.LastStory, func(s *StoryMetadata) any { return s.StoryTitle })
	vars["story_preview_text"] = storyField(c.CurrentStory, func(s *StoryMetadata) any { return s.StoryPreviewText })
	vars["story_theme"] = storyField(c.CurrentStory, func(s *StoryMetadata) any { return s.StoryTheme })
	vars["story_thumbnail"] = storyField(c.CurrentStory, func(s *StoryMetadata) any { return s.StoryThumbnail })
	vars["reading_time"] = storyField(c.CurrentStory, func(s *StoryMetadata) any { return s.ReadingTime })
	vars["key_lesson"] = storyField(c.CurrentStory, func(s *StoryMetadata) any { return s.KeyLesson })
	vars["story_link"] = storyField(c.CurrentStory, func(s *StoryMetadata) any { return s.StoryLink })
	vars["story_completion_percentage"] = storyField(c.CurrentStory, func(s *StoryMetadata) any { return s.CompletionPercentage })

	return vars
}

func storyField(s *StoryMetadata, get func(*StoryMetadata) any) any {
	if s == nil {
		return nil
	}
	return get(s)
}

func timeOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func firstTime(a, b time.Time) any {
	if !a.IsZero() {
		return a
	}
	return timeOrNil(b)
}

func positiveOrNil(n int) any {
	if n <= 0 {
		return nil
	}
	return n
}

func firstInt(a, b int) int {
	if a > 0 {
		return a
	}
	return b
}

func firstAchievementName(achievements []Achievement) any {
	if len(achievements) == 0 {
		return nil
	}
	return achievements[0].Name
}
