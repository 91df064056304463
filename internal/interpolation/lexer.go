package interpolation

// Sigil introduces an embedded expression in source text.
const Sigil = '$'

// Kind tags a token produced by Scan.
type Kind int

const (
	// Text is literal text between expressions.
	Text Kind = iota
	// BracedExpression is `${expr}`.
	BracedExpression
	// BareIdentifier is `$name`.
	BareIdentifier
)

func (k Kind) String() string {
	switch k {
	case BracedExpression:
		return "braced"
	case BareIdentifier:
		return "bare"
	default:
		return "text"
	}
}

// Token is one lexical unit of a literal body.
type Token struct {
	Kind Kind
	// Start and End are byte offsets into the scanned text, End exclusive.
	Start int
	End   int
	// Expr is the expression source without sigil or braces. Empty for Text.
	Expr string
}

// Scan splits text into Text, BracedExpression and BareIdentifier tokens,
// left to right in a single pass. At each sigil the braced form is tried
// first, then the bare form; a sigil matching neither stays in a Text token.
func Scan(text string) []Token {
	var tokens []Token
	textStart := 0

	flush := func(end int) {
		if end > textStart {
			tokens = append(tokens, Token{Kind: Text, Start: textStart, End: end})
		}
	}

	for i := 0; i < len(text); {
		if text[i] != Sigil {
			i++
			continue
		}

		if end, ok := scanBraced(text, i); ok {
			flush(i)
			tokens = append(tokens, Token{Kind: BracedExpression, Start: i, End: end, Expr: text[i+2 : end-1]})
			i = end
			textStart = end
			continue
		}

		if end, ok := scanBare(text, i); ok {
			flush(i)
			tokens = append(tokens, Token{Kind: BareIdentifier, Start: i, End: end, Expr: text[i+1 : end]})
			i = end
			textStart = end
			continue
		}

		i++
	}
	flush(len(text))

	return tokens
}

// scanBraced matches `${...}` at pos with balanced braces and a non-empty body.
func scanBraced(text string, pos int) (int, bool) {
	if pos+1 >= len(text) || text[pos+1] != '{' {
		return 0, false
	}

	depth := 0
	for i := pos + 1; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if i == pos+2 {
					return 0, false
				}
				return i + 1, true
			}
		}
	}
	return 0, false
}

// scanBare matches `$` followed by [a-zA-Z_]\w* at pos.
func scanBare(text string, pos int) (int, bool) {
	i := pos + 1
	if i >= len(text) || !isIdentStart(text[i]) {
		return 0, false
	}
	for i++; i < len(text) && isIdentPart(text[i]); i++ {
	}
	return i, true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
