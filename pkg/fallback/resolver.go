package fallback

import (
	"reflect"
	"time"

	"github.com/storybud/emailkit/pkg/emailctx"
)

// Clock supplies the current time; injectable so time-bucketed derivations
// (greetings) are testable.
type Clock func() time.Time

// Resolver holds the authoritative fallback table for every canonical
// template variable, template-specific overrides, and value-formatting rules.
// Lookup never fails: unknown keys resolve to the empty string.
type Resolver struct {
	fallbacks map[string]any
	overrides map[string]map[string]any
	now       Clock
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the time source used for contextual fallbacks.
func WithClock(clock Clock) Option {
	return func(r *Resolver) {
		if clock != nil {
			r.now = clock
		}
	}
}

// WithFallbacks merges caller-supplied entries into the global table. This is
// the extension slot for ad-hoc template variables that are not part of the
// canonical set; existing canonical entries can also be overridden.
func WithFallbacks(extra map[string]any) Option {
	return func(r *Resolver) {
		for k, v := range extra {
			r.fallbacks[k] = v
		}
	}
}

// WithTemplateOverrides merges template-specific override sets keyed by
// template type.
func WithTemplateOverrides(overrides map[string]map[string]any) Option {
	return func(r *Resolver) {
		for tmpl, set := range overrides {
			if r.overrides[tmpl] == nil {
				r.overrides[tmpl] = make(map[string]any, len(set))
			}
			for k, v := range set {
				r.overrides[tmpl][k] = v
			}
		}
	}
}

// New creates a Resolver with the canonical fallback table and the standard
// template override sets.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		fallbacks: defaultFallbacks(),
		overrides: defaultOverrides(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fallback returns the default value for a variable: the template-specific
// override when one is declared for templateType, else the global default,
// else the empty string. It never fails.
func (r *Resolver) Fallback(key, templateType string) any {
	if templateType != "" {
		if set, ok := r.overrides[templateType]; ok {
			if v, ok := set[key]; ok {
				return v
			}
		}
	}
	if v, ok := r.fallbacks[key]; ok && v != nil {
		return v
	}
	return ""
}

// Apply substitutes fallback values for every key known to the global table
// whose current value is invalid (nil, empty string, or empty list). Keys
// present in vars but absent from the table pass through unchanged, which
// supports ad-hoc template variables outside the canonical set. Applying
// twice is a no-op: once a value is valid it is never substituted again.
func (r *Resolver) Apply(vars emailctx.Variables, templateType string) emailctx.Variables {
	result := make(emailctx.Variables, len(r.fallbacks)+len(vars))

	for key := range r.fallbacks {
		if IsInvalid(vars[key]) {
			result[key] = r.Fallback(key, templateType)
		} else {
			result[key] = vars[key]
		}
	}

	for key, value := range vars {
		if _, known := result[key]; !known {
			result[key] = value
		}
	}

	return result
}

// IsInvalid reports whether a value needs fallback substitution: nil, empty
// string, or an empty slice.
func IsInvalid(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice {
		return rv.Len() == 0
	}
	return false
}

// defaultFallbacks is the authoritative variable-name to default-value table.
// A nil value means the variable is known but has no meaningful default; it
// resolves to the empty string.
func defaultFallbacks() map[string]any {
	return map[string]any{
		// User data fallbacks
		"user_name":              "Friend",
		"user_email":             "",
		"first_name":             "",
		"last_name":              "",
		"referral_code":          "STORY123",
		"referred_friends_count": "0",
		"account_anniversary":    nil,

		// Child data fallbacks
		"child_name":         "your little reader",
		"child_age":          nil,
		"child_interests":    "adventures and learning",
		"reading_level":      "beginner",
		"favorite_character": nil,
		"favorite_themes":    "Adventure and Friendship",
		"siblings_names":     "",

		// Subscription fallbacks
		"subscription_name":         "Free Trial",
		"subscription_price":        "$9.99",
		"subscription_status":       "trial",
		"trial_days_remaining":      "7",
		"next_billing_date":         "soon",
		"subscription_renewal_date": "soon",
		"days_until_renewal":        "7",
		"credits_remaining":         "10",
		"credits_used_this_month":   "0",
		"monthly_credits_limit":     "60",
		"discount_amount":           nil,
		"discount_percentage":       nil,
		"active_promo_code":         nil,

		// Activity fallbacks
		"stories_created":              "0",
		"stories_created_count":        "0",
		"stories_completed":            "0",
		"stories_read_count":           "0",
		"total_stories_completed":      "0",
		"reading_streak":               "0",
		"longest_streak":               "0",
		"avg_reading_time":             "15",
		"average_reading_time":         "15 minutes",
		"total_reading_time":           "0",
		"last_story_date":              nil,
		"days_since_last_story":        "a few",
		"peak_reading_hour":            "evening",
		"stories_started_not_finished": "0",
		"weekly_reading_goal":          "3",
		"weekly_reading_progress":      "0",
		"reading_goal_progress":        "0",

		// Story fallbacks
		"story_title":                 "Your Personalized Adventure",
		"last_story_title":            "your latest adventure",
		"story_preview_text":          "An exciting personalized story awaits...",
		"story_theme":                 "Adventure",
		"story_thumbnail":             nil,
		"reading_time":                "10 minutes",
		"key_lesson":                  "the importance of imagination and learning",
		"story_link":                  "#",
		"story_completion_percentage": "0",

		// Achievement fallbacks
		"badges_earned":            "First Steps",
		"total_badges":             "1",
		"next_milestone":           "First Story",
		"milestone_achieved":       nil,
		"stories_until_next_badge": "1",
		"reading_level_progress":   "0",
		"current_level":            "Beginner Reader",
		"next_level":               "Story Explorer",

		// Engagement fallbacks
		"favorite_story_theme": "Adventure",
		"email_open_rate":      "0",
		"email_click_rate":     "0",

		// Family fallbacks
		"family_members_count": "1",
		"shared_stories_count": "0",
		"favorite_coauthor":    nil,

		// Recommendations fallbacks
		"recommended_themes":     []string{"Adventure", "Friendship", "Learning"},
		"trending_story_types":   []string{"Adventure Stories", "Mystery Tales", "Fantasy Journeys"},
		"age_appropriate_topics": []string{"Friendship", "Problem-solving", "Creativity"},
		"recommended_stories":    []emailctx.SuggestedStory{},

		// Story suggestion fallbacks
		"suggested_story_1_title": "The Castle of Kind Hearts",
		"suggested_story_1_desc":  "Help others and discover the magic of kindness",
		"story_1_emoji":           "🏰",
		"suggested_story_2_title": "The Starlight Detective",
		"suggested_story_2_desc":  "Solve mysteries while exploring problem-solving skills",
		"story_2_emoji":           "🌟",
		"suggested_story_3_title": "The Butterfly Garden Mystery",
		"suggested_story_3_desc":  "Discover nature's wonders and environmental awareness",
		"story_3_emoji":           "🦋",

		// Question fallbacks for story completion emails
		"question_1": "What was your favorite part of the adventure and why?",
		"question_2": "How did the main character show courage in the story?",
		"question_3": "If you were in the story, what would you have done differently?",

		// Birthday/occasion fallbacks
		"birthday_story_title": "The Birthday Adventure of Champions",
		"birthday_story_emoji": "🎪",
		"story_preview":        "On their special day, a brave young hero discovers magical adventures...",
		"birthday_theme":       "Celebration & Growth",
		"birthday_gift":        "100 bonus credits + exclusive birthday badge",

		// Link fallbacks
		"main_cta_link":          "#",
		"create_story_link":      "#",
		"browse_stories_link":    "#",
		"create_next_story_link": "#",
		"profile_link":           "#",
		"settings_link":          "#",
		"feedback_link":          "#",
		"upgrade_link":           "#",
		"unsubscribe_link":       "#",
		"birthday_story_link":    "#",
		"claim_gift_link":        "#",
		"save_memory_link":       "#",
		"logo_url":               emailctx.DefaultLogoURL,
	}
}

// defaultOverrides declares template-specific default replacements, keyed by
// template type then variable name.
func defaultOverrides() map[string]map[string]any {
	return map[string]map[string]any{
		"onboarding_welcome": {
			"user_name": "Welcome to StoryBud!",
		},
		"trial_welcome": {
			"subscription_name": "7-Day Free Trial",
		},
		"churn_recovery": {
			"user_name":             "Valued Friend",
			"days_since_last_story": "some time",
		},
		"birthday_story": {
			"child_age":  "7",
			"child_name": "Birthday Star",
		},
	}
}
