package emailkit

import (
	"strings"

	"github.com/storybud/emailkit/pkg/emailctx"
)

// SampleVariables returns representative preview data for templateName.
// The base set covers every template family; birthday and weekly templates
// pick up extra keys.
func SampleVariables(templateName string) emailctx.Variables {
	vars := emailctx.Variables{
		"user_name":            "Sarah",
		"user_email":           "sarah@example.com",
		"child_name":           "Emma",
		"child_age":            7,
		"child_interests":      "dragons, space, and friendship",
		"story_title":          "The Dragon's Space Adventure",
		"last_story_title":     "The Magical Forest",
		"stories_created":      15,
		"stories_completed":    12,
		"reading_streak":       5,
		"subscription_name":    "Sprout",
		"subscription_price":   "$9.99",
		"trial_days_remaining": 3,
		"favorite_story_theme": "Adventure",
		"badges_earned":        "Story Explorer, Week Warrior",
		"next_milestone":       "20 Stories Completed",
	}

	if strings.Contains(templateName, "birthday") {
		vars["child_age"] = 8
		vars["birthday_story_title"] = "Emma's 8th Birthday Spectacular"
	}

	if strings.Contains(templateName, "weekly") {
		vars["weekly_reading_progress"] = 2
		vars["weekly_reading_goal"] = 3
	}

	return vars
}
