package render

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/fallback"
)

var filterRe = regexp.MustCompile(`^(\w+)(?::(.+))?$`)

// applyFilter applies one filter from a placeholder expression, e.g.
// "uppercase" or `default:"fallback"`. Unknown filters pass the value
// through untouched.
func applyFilter(value any, filter string) any {
	match := filterRe.FindStringSubmatch(filter)
	if match == nil {
		return value
	}
	name, arg := match[1], parseFilterArg(match[2])

	switch name {
	case "default":
		if value == nil || value == "" {
			return arg
		}
		return value

	case "uppercase":
		return strings.ToUpper(stringify(value))

	case "lowercase":
		return strings.ToLower(stringify(value))

	case "capitalize":
		return capitalize(stringify(value))

	case "truncate":
		length := fallback.ParseLeadingInt(arg)
		if length == 0 {
			length = 50
		}
		return truncate(stringify(value), length)

	case "date":
		return formatDate(value, arg)

	case "possessive":
		return fallback.Possessive(stringify(value))

	case "pluralize":
		return pluralize(value, arg)

	default:
		return value
	}
}

// parseFilterArg strips a single level of surrounding quotes.
func parseFilterArg(arg string) string {
	if len(arg) >= 2 {
		if (arg[0] == '"' && arg[len(arg)-1] == '"') ||
			(arg[0] == '\'' && arg[len(arg)-1] == '\'') {
			return arg[1 : len(arg)-1]
		}
	}
	return arg
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length <= 3 {
		return "..."
	}
	return string(runes[:length-3]) + "..."
}

// formatDate renders time values; non-date values pass through so a filter
// on already-formatted data is harmless.
func formatDate(value any, format string) any {
	if value == nil || value == "" {
		return ""
	}

	t, ok := value.(time.Time)
	if !ok {
		s, isStr := value.(string)
		if !isStr {
			return value
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return value
		}
		t = parsed
	}

	switch format {
	case "short":
		return t.Format("1/2/2006")
	case "long":
		return t.Format("Monday, January 2, 2006")
	case "time":
		return t.Format("3:04:05 PM")
	default:
		return t.Format("January 2, 2006")
	}
}

// pluralize picks a word form by the numeric value: "1" with
// pluralize:"story,stories" yields "story". The plural form defaults to the
// singular plus "s".
func pluralize(value any, arg string) string {
	parts := strings.SplitN(arg, ",", 2)
	singular := parts[0]
	plural := singular + "s"
	if len(parts) == 2 && parts[1] != "" {
		plural = parts[1]
	}

	if fallback.ParseLeadingInt(value) == 1 {
		return singular
	}
	return plural
}

// lookup resolves a dotted path against the variable map, descending through
// nested maps and exported struct fields. Any missing segment yields nil.
func lookup(vars emailctx.Variables, path string) any {
	var value any = map[string]any(vars)

	for _, key := range strings.Split(path, ".") {
		if value == nil {
			return nil
		}

		switch v := value.(type) {
		case map[string]any:
			value = v[key]
		case emailctx.Variables:
			value = v[key]
		default:
			value = structField(value, key)
		}
	}

	return value
}

// structField reads an exported field by name, case-insensitively, so
// templates can write {{monthly_summary.stories}} against Go structs.
func structField(value any, name string) any {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	field := rv.FieldByNameFunc(func(f string) bool {
		return strings.EqualFold(f, name)
	})
	if !field.IsValid() || !field.CanInterface() {
		return nil
	}
	return field.Interface()
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
