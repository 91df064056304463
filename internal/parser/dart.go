package parser

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"intl-extract/internal/literal"
	"intl-extract/internal/textutil"
)

// DartParser finds string literals in Dart source. It is a lexical scan,
// not a Dart parser: comments and nested interpolation are skipped, and
// everything else is taken at face value.
type DartParser struct{}

func NewDartParser() *DartParser { return &DartParser{} }

func (p *DartParser) CanParse(ext string) bool {
	return ext == ".dart"
}

// directives whose string arguments are URIs, never UI text.
var directives = []string{"import", "export", "part", "library"}

func (p *DartParser) Parse(filePath string) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open dart file: %w", err)
	}

	result := p.ParseSource(string(data))
	result.FilePath = filePath
	return result, nil
}

// ParseSource scans src held in memory.
func (p *DartParser) ParseSource(src string) *ParseResult {
	result := &ParseResult{
		FileType: "dart",
		Source:   src,
	}

	s := &dartScanner{src: src}
	for _, span := range s.literals() {
		lit := literal.New(src[span.start:span.end], span.start, span.end)
		if !textutil.IsTranslatable(lit.Text) || inDirective(src, span.start) {
			continue
		}
		result.Literals = append(result.Literals, ExtractedLiteral{
			SourceLiteral: lit,
			Line:          strings.Count(src[:span.start], "\n") + 1,
		})
	}

	return result
}

func (p *DartParser) Reconstruct(result *ParseResult, replacements map[int]string) ([]byte, error) {
	byStart := make(map[int]ExtractedLiteral, len(result.Literals))
	for _, lit := range result.Literals {
		byStart[lit.Start] = lit
	}

	starts := make([]int, 0, len(replacements))
	for start := range replacements {
		if _, ok := byStart[start]; !ok {
			return nil, fmt.Errorf("no literal at offset %d in %s", start, result.FilePath)
		}
		starts = append(starts, start)
	}

	// Replace back to front so earlier offsets stay valid.
	sort.Sort(sort.Reverse(sort.IntSlice(starts)))

	out := result.Source
	for _, start := range starts {
		lit := byStart[start]
		out = out[:lit.Start] + replacements[start] + out[lit.End:]
	}

	return []byte(out), nil
}

// inDirective reports whether the line holding pos starts with a directive.
func inDirective(src string, pos int) bool {
	lineStart := strings.LastIndexByte(src[:pos], '\n') + 1
	line := strings.TrimSpace(src[lineStart:pos])
	for _, d := range directives {
		if strings.HasPrefix(line, d+" ") || line == d {
			return true
		}
	}
	return false
}

type span struct {
	start, end int
}

type dartScanner struct {
	src string
	out []span
}

func (s *dartScanner) literals() []span {
	s.scanCode(0, false)
	return s.out
}

// scanCode walks code from pos. Inside an interpolation it stops after the
// closing brace and returns the position past it; nested literals found
// there are not reported.
func (s *dartScanner) scanCode(pos int, nested bool) int {
	depth := 0
	for pos < len(s.src) {
		c := s.src[pos]
		switch {
		case c == '/' && strings.HasPrefix(s.src[pos:], "//"):
			pos = s.skipLineComment(pos)
		case c == '/' && strings.HasPrefix(s.src[pos:], "/*"):
			pos = s.skipBlockComment(pos)
		case c == '{':
			depth++
			pos++
		case c == '}':
			if nested && depth == 0 {
				return pos + 1
			}
			depth--
			pos++
		case c == '\'' || c == '"' || (c == 'r' && s.rawPrefix(pos)):
			end, ok := s.scanString(pos)
			if ok && !nested {
				s.out = append(s.out, span{pos, end})
			}
			if end <= pos {
				end = pos + 1
			}
			pos = end
		case isWordByte(c):
			for pos < len(s.src) && isWordByte(s.src[pos]) {
				pos++
			}
		default:
			pos++
		}
	}
	return pos
}

func (s *dartScanner) rawPrefix(pos int) bool {
	if pos+1 >= len(s.src) || (s.src[pos+1] != '\'' && s.src[pos+1] != '"') {
		return false
	}
	return pos == 0 || !isWordByte(s.src[pos-1])
}

// scanString returns the end offset of the literal starting at pos.
func (s *dartScanner) scanString(pos int) (int, bool) {
	raw := false
	i := pos
	if s.src[i] == 'r' {
		raw = true
		i++
	}

	quote := s.src[i]
	delim := string(quote)
	if strings.HasPrefix(s.src[i:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}
	i += len(delim)
	multiline := len(delim) == 3

	for i < len(s.src) {
		c := s.src[i]
		switch {
		case strings.HasPrefix(s.src[i:], delim):
			return i + len(delim), true
		case c == '\n' && !multiline:
			return i, false
		case c == '\\' && !raw:
			i += 2
		case c == '$' && !raw && i+1 < len(s.src) && s.src[i+1] == '{':
			i = s.scanCode(i+2, true)
		default:
			i++
		}
	}
	return len(s.src), false
}

func (s *dartScanner) skipLineComment(pos int) int {
	if i := strings.IndexByte(s.src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(s.src)
}

// skipBlockComment handles nested /* */ as Dart does.
func (s *dartScanner) skipBlockComment(pos int) int {
	depth := 0
	for pos < len(s.src) {
		switch {
		case strings.HasPrefix(s.src[pos:], "/*"):
			depth++
			pos += 2
		case strings.HasPrefix(s.src[pos:], "*/"):
			depth--
			pos += 2
			if depth == 0 {
				return pos
			}
		default:
			pos++
		}
	}
	return pos
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
