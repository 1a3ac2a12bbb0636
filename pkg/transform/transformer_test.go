package transform_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/fallback"
	"github.com/storybud/emailkit/pkg/transform"
)

func fixedClock(t time.Time) fallback.Clock {
	return func() time.Time { return t }
}

func newTransformer(opts ...transform.Option) *transform.Transformer {
	base := []transform.Option{
		transform.WithRand(rand.New(rand.NewSource(1))),
	}
	return transform.New(fallback.New(), append(base, opts...)...)
}

func richContext() *emailctx.Context {
	return emailctx.New(emailctx.Context{
		User: emailctx.UserProfile{
			UserID:    "usr_123",
			UserName:  "Sarah",
			UserEmail: "sarah@example.com",
		},
		Child: emailctx.ChildProfile{
			ChildName:    "Emma",
			ChildAge:     7,
			Interests:    []string{"dragons", "space"},
			ReadingLevel: "intermediate",
		},
		Subscription: emailctx.Subscription{
			Name:               "Sprout",
			Price:              "$9.99",
			Status:             "active",
			TrialDaysRemaining: 1,
		},
		Activity: emailctx.ReadingActivity{
			TotalStoriesCreated:   12,
			TotalStoriesCompleted: 10,
			ReadingStreak:         5,
			TotalReadingTime:      120,
			WeeklyReadingGoal:     3,
			WeeklyReadingProgress: 2,
			DaysSinceLastStory:    45,
		},
		LastStory: &emailctx.StoryMetadata{
			StoryTitle: "The Dragon's Space Adventure",
		},
	})
}

func TestTransform_TrialLastDay(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(richContext(), "trial_welcome")

	assert.Equal(t, "Last day of your free trial!", vars["trial_message"])
	assert.Equal(t, "high", vars["trial_urgency"])
	assert.Contains(t, vars.String("trial_benefits"), "Unlimited personalized stories")
}

func TestTransform_TrialUrgencyBuckets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		days        int
		urgency     string
		wantMessage string
	}{
		{1, "high", "Last day of your free trial!"},
		{3, "high", "3 days left in your free trial"},
		{5, "medium", "5 days left in your free trial"},
		{7, "low", "7 days left in your free trial"},
	}

	for _, tt := range tests {
		tr := newTransformer()
		ctx := emailctx.New(emailctx.Context{
			Subscription: emailctx.Subscription{TrialDaysRemaining: tt.days},
		})
		vars := tr.Transform(ctx, "trial_welcome")

		assert.Equal(t, tt.urgency, vars["trial_urgency"], "days=%d", tt.days)
		assert.Equal(t, tt.wantMessage, vars["trial_message"], "days=%d", tt.days)
	}
}

func TestTransform_WelcomeHeadline(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(richContext(), "onboarding_welcome")

	assert.Equal(t, "Welcome to StoryBud, Sarah!", vars["welcome_headline"])
	assert.Equal(t, "Let's create magical stories together", vars["welcome_subheadline"])

	steps, ok := vars["getting_started_steps"].([]transform.Step)
	require.True(t, ok)
	require.Len(t, steps, 3)
	assert.Equal(t, "Add Your Child", steps[0].Title)
}

func TestTransform_StreakBuckets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		streak int
		want   string
	}{
		{0, "Start your reading streak today!"},
		{2, "2 day streak! Keep it going!"},
		{5, "Amazing 5 day streak! Can you reach a week?"},
		{10, "Incredible 10 day streak! You're a reading champion!"},
	}

	for _, tt := range tests {
		tr := newTransformer()
		ctx := emailctx.New(emailctx.Context{
			Activity: emailctx.ReadingActivity{ReadingStreak: tt.streak},
		})
		vars := tr.Transform(ctx, "storytime_email")

		assert.Equal(t, tt.want, vars["challenge_message"], "streak=%d", tt.streak)
	}
}

func TestTransform_MotivationalMessageFromPool(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(richContext(), "storytime_email")

	assert.Contains(t, []string{
		"Every story is a new adventure!",
		"Reading together creates memories that last forever.",
		"You're building a lifelong love of reading!",
		"Great readers are made one story at a time.",
	}, vars["motivational_message"])
}

func TestTransform_WeeklyStats(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(richContext(), "retention_weekly")

	assert.Equal(t, 67, vars["progress_percentage"])
	assert.Equal(t, 1, vars["stories_remaining"])
	assert.Equal(t, "Halfway there!", vars["weekly_status"])
	assert.Equal(t, "#F59E0B", vars["weekly_status_color"])

	segments, ok := vars["progress_segments"].([]transform.Segment)
	require.True(t, ok)
	require.Len(t, segments, 10)
	assert.True(t, segments[5].Filled)
	assert.Equal(t, "#8B5CF6", segments[5].Color)
	assert.False(t, segments[6].Filled)
	assert.Equal(t, "#E5E7EB", segments[6].Color)
}

func TestTransform_WeeklyGoalAchieved(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	ctx := emailctx.New(emailctx.Context{
		Activity: emailctx.ReadingActivity{WeeklyReadingGoal: 3, WeeklyReadingProgress: 5},
	})
	vars := tr.Transform(ctx, "retention_weekly")

	assert.Equal(t, 100, vars["progress_percentage"])
	assert.Equal(t, 0, vars["stories_remaining"])
	assert.Equal(t, "Goal achieved! 🎉", vars["weekly_status"])
}

func TestTransform_MonthlyReport(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	ctx := emailctx.New(emailctx.Context{
		Activity: emailctx.ReadingActivity{
			TotalStoriesCompleted: 4,
			TotalReadingTime:      120,
		},
	})
	vars := tr.Transform(ctx, "retention_monthly")

	summary, ok := vars["monthly_summary"].(transform.MonthlySummary)
	require.True(t, ok)
	assert.Equal(t, "4 stories", summary.Stories)
	assert.Equal(t, "2 hours", summary.Time)
	assert.Equal(t, "30 minutes", summary.Average)

	achievements, ok := vars["recent_achievements"].([]emailctx.Achievement)
	require.True(t, ok)
	require.Len(t, achievements, 1)
	assert.Equal(t, "Active Reader", achievements[0].Name)
}

func TestTransform_MonthlyReportSingleStory(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	ctx := emailctx.New(emailctx.Context{
		Activity: emailctx.ReadingActivity{TotalStoriesCompleted: 1, TotalReadingTime: 15},
	})
	vars := tr.Transform(ctx, "retention_monthly")

	summary, ok := vars["monthly_summary"].(transform.MonthlySummary)
	require.True(t, ok)
	assert.Equal(t, "1 story", summary.Stories)
	assert.Equal(t, "15 minutes", summary.Average)
}

func TestTransform_BirthdayMessage(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(richContext(), "birthday_story")

	assert.Equal(t, "Happy 7th Birthday, Emma!", vars["birthday_headline"])
	assert.Equal(t, "7 years old", vars["birthday_years_old"])

	rewards, ok := vars["birthday_rewards"].([]transform.Reward)
	require.True(t, ok)
	require.Len(t, rewards, 3)
	assert.Equal(t, "100 bonus story credits", rewards[0].Reward)
}

func TestTransform_BirthdayAgeDefault(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(emailctx.New(emailctx.Context{}), "birthday_story")

	// Unknown age flattens to nil, picks up the birthday override of 7.
	assert.Equal(t, "Happy 7th Birthday, your little reader!", vars["birthday_headline"])
	assert.Equal(t, "7 years old", vars["birthday_years_old"])
}

func TestTransform_ReengagementBuckets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		days int
		want string
	}{
		{45, "We've missed you!"},
		{20, "Ready for a new adventure?"},
		{5, "Continue the adventure!"},
		{0, "Continue the adventure!"}, // unknown gap falls back to "some time"
	}

	for _, tt := range tests {
		tr := newTransformer()
		ctx := emailctx.New(emailctx.Context{
			Activity: emailctx.ReadingActivity{DaysSinceLastStory: tt.days},
		})
		vars := tr.Transform(ctx, "churn_recovery")

		assert.Equal(t, tt.want, vars["reengagement_headline"], "days=%d", tt.days)
	}
}

func TestTransform_SpecialOfferExpiry(t *testing.T) {
	t.Parallel()

	sent := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := newTransformer(transform.WithClock(fixedClock(sent)))
	vars := tr.Transform(richContext(), "churn_recovery")

	offer, ok := vars["special_offer"].(transform.SpecialOffer)
	require.True(t, ok)
	assert.Equal(t, "Welcome Back Offer", offer.Headline)
	assert.Equal(t, "50% off", offer.Discount)
	assert.Equal(t, "WELCOME50", offer.Code)
	assert.Equal(t, "January 8, 2026", offer.Expires)
}

func TestTransform_StoryReview(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(richContext(), "story_completion")

	assert.Equal(t, `How was "The Dragon's Space Adventure"?`, vars["story_review_intro"])
	assert.Equal(t, "Your feedback helps us create better stories", vars["feedback_prompt"])
	// Discussion question defaults come from the fallback table, not the rule.
	assert.Equal(t, "What was your favorite part of the adventure and why?", vars["question_1"])
}

func TestTransform_ContextualNeverOverwritesResolved(t *testing.T) {
	t.Parallel()

	// A caller-registered fallback resolves in the fallback pass and must
	// survive the contextual derivation pass untouched.
	resolver := fallback.New(fallback.WithFallbacks(map[string]any{
		"child_name_possessive": "the Johnson family's",
	}))
	tr := transform.New(resolver, transform.WithRand(rand.New(rand.NewSource(1))))

	vars := tr.Transform(richContext(), "storytime_email")
	assert.Equal(t, "the Johnson family's", vars["child_name_possessive"])

	// Without a resolved value the derivation fills the gap as before.
	vars = newTransformer().Transform(richContext(), "storytime_email")
	assert.Equal(t, "Emma's", vars["child_name_possessive"])
}

func questionlessResolver() *fallback.Resolver {
	return fallback.New(fallback.WithFallbacks(map[string]any{
		"question_1": nil,
		"question_2": nil,
		"question_3": nil,
	}))
}

func TestTransform_DiscussionQuestionsFromPool(t *testing.T) {
	t.Parallel()

	pool := []string{
		"What was your favorite part of the story?",
		"Which character did you like the most and why?",
		"What would you do if you were the main character?",
		"What lesson did you learn from the story?",
		"How did the story make you feel?",
	}

	tr := transform.New(questionlessResolver(), transform.WithRand(rand.New(rand.NewSource(7))))
	vars := tr.Transform(richContext(), "story_completion")

	picked := []string{
		vars.String("question_1"),
		vars.String("question_2"),
		vars.String("question_3"),
	}
	seen := map[string]bool{}
	for i, q := range picked {
		assert.Contains(t, pool, q, "question_%d", i+1)
		assert.False(t, seen[q], "question repeated: %s", q)
		seen[q] = true
	}

	// Same seed, same selection.
	again := transform.New(questionlessResolver(), transform.WithRand(rand.New(rand.NewSource(7)))).
		Transform(richContext(), "story_completion")
	assert.Equal(t, picked, []string{
		again.String("question_1"),
		again.String("question_2"),
		again.String("question_3"),
	})
}

func TestTransform_NextStoryRecommendationsFromContext(t *testing.T) {
	t.Parallel()

	resolver := fallback.New(fallback.WithFallbacks(map[string]any{
		"suggested_story_1_title": nil,
	}))
	tr := transform.New(resolver, transform.WithRand(rand.New(rand.NewSource(1))))

	ctx := richContext()
	ctx.Recommendations.SuggestedStories = []emailctx.SuggestedStory{
		{Title: "The Moon Garden", Description: "Grow wonders under the stars", Emoji: "🌙"},
		{},
	}

	vars := tr.Transform(ctx, "story_completion")

	assert.Equal(t, "The Moon Garden", vars["suggested_story_1_title"])
	assert.Equal(t, "Grow wonders under the stars", vars["suggested_story_1_desc"])
	assert.Equal(t, "🌙", vars["story_1_emoji"])

	// A story with no metadata picks up the numbered defaults.
	assert.Equal(t, "Adventure 2", vars["suggested_story_2_title"])
	assert.Equal(t, "A new exciting adventure", vars["suggested_story_2_desc"])
	assert.Equal(t, "⭐", vars["story_2_emoji"])

	// The context offered two stories; the third slot keeps its fallback.
	assert.Equal(t, "The Butterfly Garden Mystery", vars["suggested_story_3_title"])
}

func TestTransform_PartialTemplateNameMatches(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(richContext(), "trial_welcome_v2_experiment")

	assert.Equal(t, "Last day of your free trial!", vars["trial_message"])

	cfg := tr.Config("trial_welcome_v2_experiment")
	require.NotNil(t, cfg)
	assert.Equal(t, "trial_welcome", cfg.Name)
	assert.Nil(t, tr.Config("no_such_template"))
}

func TestTransform_Metadata(t *testing.T) {
	t.Parallel()

	sent := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	tr := newTransformer(transform.WithClock(fixedClock(sent)))
	vars := tr.Transform(richContext(), "trial_welcome")

	meta, ok := vars[transform.MetadataKey].(transform.Metadata)
	require.True(t, ok)
	assert.Equal(t, "trial_welcome", meta.TemplateType)
	assert.Equal(t, sent, meta.GeneratedAt)
	assert.Contains(t, []string{"high", "medium", "low"}, meta.DataQuality.Quality)
	assert.GreaterOrEqual(t, meta.DataQuality.Score, 0)
	assert.LessOrEqual(t, meta.DataQuality.Score, 100)
}

func TestTransform_DataQualityRanksRealDataHigher(t *testing.T) {
	t.Parallel()

	tr := newTransformer()

	rich := tr.Transform(richContext(), "trial_welcome")
	sparse := tr.Transform(emailctx.New(emailctx.Context{}), "trial_welcome")

	richMeta := rich[transform.MetadataKey].(transform.Metadata)
	sparseMeta := sparse[transform.MetadataKey].(transform.Metadata)

	assert.Greater(t, richMeta.DataQuality.Score, sparseMeta.DataQuality.Score)
	assert.Less(t, richMeta.DataQuality.FallbackCount, sparseMeta.DataQuality.FallbackCount)
}

func TestTransform_FormatsValuesByConvention(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(richContext(), "retention_monthly")

	// total_reading_time is numeric in the context and formats as a duration.
	assert.Equal(t, "2 hours", vars["total_reading_time"])
	// Count keys pick up thousands grouping.
	assert.Equal(t, "12", vars["stories_created_count"])
}

func TestTransform_UnknownTemplateSkipsRules(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	vars := tr.Transform(richContext(), "totally_unknown")

	assert.False(t, vars.Has("welcome_headline"))
	assert.False(t, vars.Has("trial_message"))
	// Fallbacks and formatting still apply.
	assert.Equal(t, "Sarah", vars["user_name"])
	assert.True(t, vars.Has(transform.MetadataKey))
}
