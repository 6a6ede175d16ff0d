package usecase

import (
	"html/template"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	starFilled = "★"
	starEmpty  = "☆"
	maxStars   = 5
)

// HelperRegistry is the fixed set of presentation helpers available to
// templates. It is built once at startup and shared read-only; FuncMap
// hands out a copy so callers cannot mutate it.
type HelperRegistry struct {
	funcs template.FuncMap
}

func NewHelperRegistry() *HelperRegistry {
	policy := bluemonday.UGCPolicy()
	return &HelperRegistry{funcs: template.FuncMap{
		"hasItems":   HasItems,
		"last":       IsLast,
		"eq":         Equal,
		"capitalize": Capitalize,
		"skillStars": SkillStars,
		"richText": func(s string) template.HTML {
			return template.HTML(policy.Sanitize(s))
		},
	}}
}

func (r *HelperRegistry) FuncMap() template.FuncMap {
	out := make(template.FuncMap, len(r.funcs))
	for k, v := range r.funcs {
		out[k] = v
	}
	return out
}

// HasItems reports whether v is a non-empty slice, array or map.
func HasItems(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	default:
		return false
	}
}

// IsLast reports whether index i is the final element of seq.
func IsLast(i int, seq any) bool {
	rv := reflect.ValueOf(seq)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return i == rv.Len()-1
	default:
		return true
	}
}

// Equal compares two template values. Overrides the builtin eq so that
// mismatched kinds compare false instead of failing execution.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// SkillStars renders a 0-5 level as five glyphs. Levels are clamped to the
// range, so negative input renders five empty stars and anything above 5
// renders five filled ones.
func SkillStars(level int) string {
	if level < 0 {
		level = 0
	}
	if level > maxStars {
		level = maxStars
	}
	return strings.Repeat(starFilled, level) + strings.Repeat(starEmpty, maxStars-level)
}
