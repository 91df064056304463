package interpolation

import (
	"strconv"
	"strings"
)

// fallbackName replaces expressions that reduce to nothing.
const fallbackName = "param"

// maxSuggestedKeyLen bounds values that may double as their own key.
const maxSuggestedKeyLen = 20

// Param records the expression behind one placeholder of a converted value.
type Param struct {
	// Name is the placeholder name, without braces.
	Name string
	// Expr is the original expression source.
	Expr string
	Kind Kind
}

// Result is the outcome of Convert.
type Result struct {
	// Value is the text with every expression replaced by {name}.
	Value string
	// SuggestedKey is a usable resource key, or empty when the caller must
	// obtain one some other way.
	SuggestedKey string
	// Params lists placeholders in order of appearance.
	Params []Param
}

// Convert rewrites embedded expressions in text into named placeholders and
// proposes a key for the result.
func Convert(text string) Result {
	var (
		b      strings.Builder
		params []Param
		counts = make(map[string]int)
	)

	for _, tok := range Scan(text) {
		if tok.Kind == Text {
			b.WriteString(text[tok.Start:tok.End])
			continue
		}

		base := GenerateName(tok.Expr)
		counts[base]++
		name := base
		if n := counts[base]; n > 1 {
			name = base + strconv.Itoa(n)
		}

		b.WriteByte('{')
		b.WriteString(name)
		b.WriteByte('}')
		params = append(params, Param{Name: name, Expr: tok.Expr, Kind: tok.Kind})
	}

	value := b.String()
	return Result{
		Value:        value,
		SuggestedKey: SuggestKey(value),
		Params:       params,
	}
}

// GenerateName derives a placeholder name from an expression.
//
//	"order.totalPrice" -> "totalPrice"
//	"1st"              -> "var1st"
//	"Name"             -> "name"
func GenerateName(expr string) string {
	name := sanitize(expr)
	if name == "" {
		name = fallbackName
	}
	if isDigit(name[0]) {
		name = "var" + name
	}
	if strings.Contains(name, ".") {
		segments := strings.Split(name, ".")
		name = segments[len(segments)-1]
		// a trailing dot or numeric member leaves nothing usable
		if name == "" {
			name = fallbackName
		}
		if isDigit(name[0]) {
			name = "var" + name
		}
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func sanitize(expr string) string {
	var b strings.Builder
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if isIdentPart(c) || c == '.' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// SuggestKey returns the lower-cased value when it is short and made only of
// ASCII letters and underscores, otherwise an empty string.
func SuggestKey(value string) string {
	if value == "" || len(value) >= maxSuggestedKeyLen {
		return ""
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '_' && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
			return ""
		}
	}
	return strings.ToLower(value)
}
