package transform

import (
	"fmt"
	"math"
	"time"

	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/fallback"
)

// Step is one item in an ordered onboarding checklist.
type Step struct {
	Number      int
	Title       string
	Description string
}

// Segment is one cell of a ten-segment visual progress bar.
type Segment struct {
	Filled bool
	Color  string
}

// MonthlySummary carries the pre-formatted monthly report figures.
type MonthlySummary struct {
	Stories string
	Time    string
	Average string
}

// Reward is a single birthday gift line.
type Reward struct {
	Icon   string
	Reward string
}

// SpecialOffer is the win-back discount block for churn recovery emails.
type SpecialOffer struct {
	Headline string
	Discount string
	Duration string
	Code     string
	Expires  string
}

type ruleFunc func(t *Transformer, vars emailctx.Variables, ctx *emailctx.Context)

// ruleFuncs maps registry rule names to implementations. Rules run in the
// order the template config lists them; later rules may read keys earlier
// rules produced (progress_chart reads progress_percentage from weekly_stats).
var ruleFuncs = map[string]ruleFunc{
	"welcome_message":            ruleWelcomeMessage,
	"getting_started_steps":      ruleGettingStartedSteps,
	"story_details":              ruleStoryDetails,
	"next_steps":                 ruleNextSteps,
	"trial_info":                 ruleTrialInfo,
	"trial_benefits":             ruleTrialBenefits,
	"daily_challenge":            ruleDailyChallenge,
	"motivational_message":       ruleMotivationalMessage,
	"weekly_stats":               ruleWeeklyStats,
	"progress_chart":             ruleProgressChart,
	"monthly_report":             ruleMonthlyReport,
	"achievements":               ruleAchievements,
	"birthday_message":           ruleBirthdayMessage,
	"birthday_gift":              ruleBirthdayGift,
	"reengagement_message":       ruleReengagementMessage,
	"special_offer":              ruleSpecialOffer,
	"story_review":               ruleStoryReview,
	"discussion_questions":       ruleDiscussionQuestions,
	"next_story_recommendations": ruleNextStoryRecommendations,
}

func ruleWelcomeMessage(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	vars["welcome_headline"] = fmt.Sprintf("Welcome to StoryBud, %s!", vars.String("user_name"))
	vars["welcome_subheadline"] = "Let's create magical stories together"
}

func ruleGettingStartedSteps(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	vars["getting_started_steps"] = []Step{
		{Number: 1, Title: "Add Your Child", Description: "Tell us about your little reader"},
		{Number: 2, Title: "Choose a Theme", Description: "Pick from adventure, fantasy, mystery, and more"},
		{Number: 3, Title: "Create Your First Story", Description: "Watch the magic happen in seconds"},
	}
}

func ruleStoryDetails(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	if vars.Has("story_title") {
		vars["story_title_formatted"] = fmt.Sprintf("%q", vars.String("story_title"))
	}
	if vars.Has("reading_time") {
		vars["estimated_read_time"] = fmt.Sprintf("About %s of magical reading", vars.String("reading_time"))
	}
}

func ruleNextSteps(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	vars["next_steps"] = []string{
		"Read the story together at bedtime",
		"Discuss the adventure and lessons learned",
		"Create your next personalized story",
	}
}

func ruleTrialInfo(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	days := fallback.ParseLeadingInt(vars["trial_days_remaining"])
	if days == 0 {
		days = 7
	}

	switch {
	case days <= 3:
		vars["trial_urgency"] = "high"
	case days <= 5:
		vars["trial_urgency"] = "medium"
	default:
		vars["trial_urgency"] = "low"
	}

	if days == 1 {
		vars["trial_message"] = "Last day of your free trial!"
	} else {
		vars["trial_message"] = fmt.Sprintf("%d days left in your free trial", days)
	}
}

func ruleTrialBenefits(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	vars["trial_benefits"] = []string{
		"Unlimited personalized stories",
		"Access to all themes and topics",
		"Save and share stories",
		"Track reading progress",
	}
}

func ruleDailyChallenge(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	streak := fallback.ParseLeadingInt(vars["reading_streak"])

	switch {
	case streak == 0:
		vars["challenge_message"] = "Start your reading streak today!"
	case streak < 3:
		vars["challenge_message"] = fmt.Sprintf("%d day streak! Keep it going!", streak)
	case streak < 7:
		vars["challenge_message"] = fmt.Sprintf("Amazing %d day streak! Can you reach a week?", streak)
	default:
		vars["challenge_message"] = fmt.Sprintf("Incredible %d day streak! You're a reading champion!", streak)
	}
}

var motivationalMessages = []string{
	"Every story is a new adventure!",
	"Reading together creates memories that last forever.",
	"You're building a lifelong love of reading!",
	"Great readers are made one story at a time.",
}

func ruleMotivationalMessage(t *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	vars["motivational_message"] = motivationalMessages[t.intn(len(motivationalMessages))]
}

func ruleWeeklyStats(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	progress := fallback.ParseLeadingInt(vars["weekly_reading_progress"])
	goal := fallback.ParseLeadingInt(vars["weekly_reading_goal"])
	if goal == 0 {
		goal = 3
	}

	pct := int(math.Round(float64(progress) / float64(goal) * 100))
	if pct > 100 {
		pct = 100
	}
	vars["progress_percentage"] = pct

	remaining := goal - progress
	if remaining < 0 {
		remaining = 0
	}
	vars["stories_remaining"] = remaining

	switch {
	case progress >= goal:
		vars["weekly_status"] = "Goal achieved! 🎉"
		vars["weekly_status_color"] = "#10B981"
	case float64(progress) >= float64(goal)*0.5:
		vars["weekly_status"] = "Halfway there!"
		vars["weekly_status_color"] = "#F59E0B"
	default:
		vars["weekly_status"] = "Just getting started"
		vars["weekly_status_color"] = "#8B5CF6"
	}
}

func ruleProgressChart(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	progress := fallback.ParseLeadingInt(vars["progress_percentage"])

	segments := make([]Segment, 10)
	for i := range segments {
		filled := i < progress/10
		color := "#E5E7EB"
		if filled {
			color = "#8B5CF6"
		}
		segments[i] = Segment{Filled: filled, Color: color}
	}
	vars["progress_segments"] = segments
}

func ruleMonthlyReport(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	stories := fallback.ParseLeadingInt(vars["stories_completed"])
	minutes := fallback.ParseLeadingInt(vars["total_reading_time"])

	unit := "stories"
	if stories == 1 {
		unit = "story"
	}

	average := "0 minutes"
	if stories > 0 {
		average = fallback.FormatDuration(float64(minutes) / float64(stories))
	}

	vars["monthly_summary"] = MonthlySummary{
		Stories: fmt.Sprintf("%d %s", stories, unit),
		Time:    fallback.FormatDuration(float64(minutes)),
		Average: average,
	}
}

func ruleAchievements(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	if list, ok := vars["recent_achievements"].([]emailctx.Achievement); ok && len(list) > 0 {
		return
	}
	vars["recent_achievements"] = []emailctx.Achievement{
		{Name: "Active Reader", Icon: "📚", Date: "This month"},
	}
}

func ruleBirthdayMessage(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	age := fallback.ParseLeadingInt(vars["child_age"])
	if age == 0 {
		age = 7
	}

	vars["birthday_headline"] = fmt.Sprintf("Happy %s Birthday, %s!", fallback.Ordinal(age), vars.String("child_name"))
	vars["birthday_years_old"] = fmt.Sprintf("%d years old", age)
}

func ruleBirthdayGift(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	vars["birthday_rewards"] = []Reward{
		{Icon: "🎁", Reward: "100 bonus story credits"},
		{Icon: "🏆", Reward: "Exclusive birthday badge"},
		{Icon: "📚", Reward: "Special birthday story collection"},
	}
}

func ruleReengagementMessage(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	days := fallback.ParseLeadingInt(vars["days_since_last_story"])

	switch {
	case days > 30:
		vars["reengagement_headline"] = "We've missed you!"
		vars["reengagement_message"] = "It's been a while since your last story adventure."
	case days > 14:
		vars["reengagement_headline"] = "Ready for a new adventure?"
		vars["reengagement_message"] = "Your next story is waiting to be created!"
	default:
		vars["reengagement_headline"] = "Continue the adventure!"
		vars["reengagement_message"] = "Pick up where you left off."
	}
}

func ruleSpecialOffer(t *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	vars["special_offer"] = SpecialOffer{
		Headline: "Welcome Back Offer",
		Discount: "50% off",
		Duration: "first month",
		Code:     "WELCOME50",
		Expires:  t.resolver.FormatDate(t.now().Add(7 * 24 * time.Hour)),
	}
}

func ruleStoryReview(_ *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	vars["story_review_intro"] = fmt.Sprintf("How was %q?", vars.String("last_story_title"))
	vars["feedback_prompt"] = "Your feedback helps us create better stories"
}

var discussionQuestionPool = []string{
	"What was your favorite part of the story?",
	"Which character did you like the most and why?",
	"What would you do if you were the main character?",
	"What lesson did you learn from the story?",
	"How did the story make you feel?",
}

// ruleDiscussionQuestions only fires when question_1 is absent, which in
// practice means the resolver's question fallbacks were removed for the
// template; otherwise the fallback questions stand.
func ruleDiscussionQuestions(t *Transformer, vars emailctx.Variables, _ *emailctx.Context) {
	if vars.Has("question_1") {
		return
	}

	order := t.perm(len(discussionQuestionPool))
	vars["question_1"] = discussionQuestionPool[order[0]]
	vars["question_2"] = discussionQuestionPool[order[1]]
	vars["question_3"] = discussionQuestionPool[order[2]]
}

func ruleNextStoryRecommendations(_ *Transformer, vars emailctx.Variables, ctx *emailctx.Context) {
	if vars.Has("suggested_story_1_title") || ctx == nil {
		return
	}

	for i, s := range ctx.Recommendations.SuggestedStories {
		num := i + 1
		title := s.Title
		if title == "" {
			title = fmt.Sprintf("Adventure %d", num)
		}
		desc := s.Description
		if desc == "" {
			desc = "A new exciting adventure"
		}
		emoji := s.Emoji
		if emoji == "" {
			emoji = "⭐"
		}

		vars[fmt.Sprintf("suggested_story_%d_title", num)] = title
		vars[fmt.Sprintf("suggested_story_%d_desc", num)] = desc
		vars[fmt.Sprintf("story_%d_emoji", num)] = emoji
	}
}
