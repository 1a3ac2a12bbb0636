package fallback

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatValue applies naming-convention-based formatting to a variable:
//
//   - keys containing "_date" with time values format as long-form dates
//   - keys containing "price" or "amount" format as USD currency
//   - keys containing "_time" with numeric values format as a duration
//   - keys containing "_count" or "total_" format with thousands separators
//   - string-list values join with natural-language conjunction rules
//
// Anything else passes through unchanged.
func (r *Resolver) FormatValue(key string, value any) any {
	if strings.Contains(key, "_date") {
		if t, ok := value.(time.Time); ok {
			return r.FormatDate(t)
		}
	}

	if strings.Contains(key, "price") || strings.Contains(key, "amount") {
		return FormatCurrency(value)
	}

	// Duration formatting only fires for truly numeric values: string
	// durations like "15 minutes" are already display-ready.
	if strings.Contains(key, "_time") {
		switch v := value.(type) {
		case int:
			return FormatDuration(float64(v))
		case int64:
			return FormatDuration(float64(v))
		case float64:
			return FormatDuration(v)
		}
	}

	if strings.Contains(key, "_count") || strings.Contains(key, "total_") {
		return FormatNumber(value)
	}

	if list, ok := value.([]string); ok {
		return JoinList(list)
	}

	return value
}

// FormatDate renders a date for display ("January 2, 2006"). The zero time
// formats as "soon" so renewal-style variables read naturally when unknown.
func (r *Resolver) FormatDate(t time.Time) string {
	if t.IsZero() {
		return "soon"
	}
	return t.Format("January 2, 2006")
}

// FormatCurrency renders a value as USD. Strings already carrying a leading
// dollar sign pass through; everything else is parsed as a number
// (unparseable values read as zero).
func FormatCurrency(value any) string {
	if s, ok := value.(string); ok && strings.HasPrefix(s, "$") {
		return s
	}

	num, _ := asNumber(value)
	return usPrinter.Sprintf("$%v", number.Decimal(num,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatDuration renders a minute count as human-readable text, e.g.
// "45 minutes" or "1 hour 5 minutes".
func FormatDuration(minutes float64) string {
	if minutes == 0 {
		return "0 minutes"
	}

	if minutes < 60 {
		rounded := int(math.Round(minutes))
		return fmt.Sprintf("%d %s", rounded, pluralUnit("minute", minutes))
	}

	hours := int(minutes) / 60
	mins := int(minutes) % 60

	if mins == 0 {
		return fmt.Sprintf("%d %s", hours, pluralUnit("hour", float64(hours)))
	}

	return fmt.Sprintf("%d %s %d %s",
		hours, pluralUnit("hour", float64(hours)),
		mins, pluralUnit("minute", float64(mins)))
}

// FormatNumber renders an integer with locale thousands separators.
// Non-numeric values read as their leading integer, or zero.
func FormatNumber(value any) string {
	n := ParseLeadingInt(value)
	return usPrinter.Sprintf("%v", number.Decimal(n))
}

// JoinList joins items with natural-language conjunction rules: zero items
// yield the empty string, one item stands alone, two join with "and", and
// longer lists use the serial comma.
func JoinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// ParseLeadingInt extracts the leading integer from a value the way loose
// numeric template data arrives: ints and floats pass through, strings parse
// their leading digit run ("15 minutes" reads as 15), anything else is zero.
func ParseLeadingInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		s := strings.TrimSpace(v)
		neg := false
		if strings.HasPrefix(s, "-") {
			neg = true
			s = s[1:]
		} else if strings.HasPrefix(s, "+") {
			s = s[1:]
		}
		n := 0
		seen := false
		for _, r := range s {
			if r < '0' || r > '9' {
				break
			}
			n = n*10 + int(r-'0')
			seen = true
		}
		if !seen {
			return 0
		}
		if neg {
			return -n
		}
		return n
	default:
		return 0
	}
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func pluralUnit(unit string, n float64) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
