package parser

import "intl-extract/internal/literal"

// ExtractedLiteral is a translatable string literal found in a source file.
type ExtractedLiteral struct {
	literal.SourceLiteral
	// Line is the 1-based line of the literal start.
	Line int
}

// ParseResult holds parsing output for a single file.
type ParseResult struct {
	// FilePath is the path of the parsed file.
	FilePath string
	// FileType is the detected type (dart).
	FileType string
	// Source is the file content the offsets refer to.
	Source string
	// Literals are the extracted string literals in source order.
	Literals []ExtractedLiteral
}

// Parser is the interface for source file scanners.
type Parser interface {
	// CanParse returns true if this parser handles the given file extension.
	CanParse(ext string) bool
	// Parse extracts translatable literals from a file.
	Parse(filePath string) (*ParseResult, error)
	// Reconstruct rebuilds the source with literals replaced. replacements
	// is keyed by literal start offset.
	Reconstruct(result *ParseResult, replacements map[int]string) ([]byte, error)
}
