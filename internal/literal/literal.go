package literal

import "strings"

// Style identifies the delimiter form of a string literal.
type Style int

const (
	// StyleNone marks text that carries no recognized delimiters.
	StyleNone Style = iota
	StyleTripleDouble
	StyleTripleSingle
	StyleRawDouble
	StyleRawSingle
	StyleDouble
	StyleSingle
)

type delimiter struct {
	style  Style
	open   string
	close  string
	minLen int
}

// delimiters is ordered by match priority.
var delimiters = []delimiter{
	{StyleTripleDouble, `"""`, `"""`, 6},
	{StyleTripleSingle, `'''`, `'''`, 6},
	{StyleRawDouble, `r"`, `"`, 3},
	{StyleRawSingle, `r'`, `'`, 3},
	{StyleDouble, `"`, `"`, 2},
	{StyleSingle, `'`, `'`, 2},
}

func (s Style) String() string {
	switch s {
	case StyleTripleDouble:
		return "triple-double"
	case StyleTripleSingle:
		return "triple-single"
	case StyleRawDouble:
		return "raw-double"
	case StyleRawSingle:
		return "raw-single"
	case StyleDouble:
		return "double"
	case StyleSingle:
		return "single"
	default:
		return "none"
	}
}

// Wrap surrounds text with the delimiters of the style.
func (s Style) Wrap(text string) string {
	for _, d := range delimiters {
		if d.style == s {
			return d.open + text + d.close
		}
	}
	return text
}

// Raw reports whether escapes and interpolation are disabled for the style.
func (s Style) Raw() bool {
	return s == StyleRawDouble || s == StyleRawSingle
}

// Detect returns the delimiter style of raw, or StyleNone.
func Detect(raw string) Style {
	if len(raw) < 2 {
		return StyleNone
	}
	for _, d := range delimiters {
		if len(raw) >= d.minLen && strings.HasPrefix(raw, d.open) && strings.HasSuffix(raw, d.close) {
			return d.style
		}
	}
	return StyleNone
}

// Strip removes the literal delimiters from raw and returns the interior.
// Unrecognized input is returned unchanged.
func Strip(raw string) string {
	style := Detect(raw)
	for _, d := range delimiters {
		if d.style == style {
			return raw[len(d.open) : len(raw)-len(d.close)]
		}
	}
	return raw
}

// SourceLiteral is a literal selected in a source file.
type SourceLiteral struct {
	// Raw is the literal text including delimiters.
	Raw string
	// Text is Raw without delimiters.
	Text string
	// Style is the detected delimiter form.
	Style Style
	// Start and End are byte offsets of Raw in the source, End exclusive.
	Start int
	End   int
}

// New builds a SourceLiteral for the raw text found at [start, end).
func New(raw string, start, end int) SourceLiteral {
	return SourceLiteral{
		Raw:   raw,
		Text:  Strip(raw),
		Style: Detect(raw),
		Start: start,
		End:   end,
	}
}

// Len returns the span length in bytes.
func (l SourceLiteral) Len() int {
	return l.End - l.Start
}
