package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"intl-extract/internal/interpolation"
	"intl-extract/internal/literal"
	"intl-extract/internal/resource"
	"intl-extract/internal/synchronizer"
	"intl-extract/internal/textutil"
)

var (
	// ErrCancelled is returned when the user abandons an extraction.
	ErrCancelled = errors.New("extraction cancelled")
	// ErrInvalidKey is returned for keys that cannot name a message.
	ErrInvalidKey = errors.New("invalid resource key")
)

var keyPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidKey reports whether key can be used as a resource key.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Entry is one literal on its way into the resource files.
type Entry struct {
	// Original is the literal as written in source, delimiters included.
	Original string
	// Key may be edited by the caller before the entry is applied.
	Key   string
	Value string
	// Params maps placeholders back to source expressions.
	Params []interpolation.Param
	// Anchor is the span of the literal in its source file.
	Anchor literal.SourceLiteral
	// Reused is set when Key already holds Value in the resource files.
	Reused bool
}

// NewEntry converts a literal into an entry with the suggested key.
func NewEntry(lit literal.SourceLiteral) *Entry {
	res := interpolation.Convert(lit.Text)
	return &Entry{
		Original: lit.Raw,
		Key:      res.SuggestedKey,
		Value:    res.Value,
		Params:   res.Params,
		Anchor:   lit,
	}
}

// Prompter is the user-facing side of a single extraction.
type Prompter interface {
	// AskKey returns the key to use for value, prefilled with suggested.
	// ok is false when the user cancels.
	AskKey(ctx context.Context, value, suggested string) (key string, ok bool)
	// ConfirmOverwrite asks whether an existing key may be replaced.
	ConfirmOverwrite(ctx context.Context, key string) bool
}

// Outcome reports a single extraction.
type Outcome struct {
	Entry *Entry
	// Written is the synchronizer count. Zero means the source must not be
	// touched.
	Written int
	// Replacement is the source text to put in place of the literal, empty
	// when Written is zero.
	Replacement string
}

// Extractor drives extractions against a resource file set.
type Extractor struct {
	sync  *synchronizer.Synchronizer
	codec resource.Codec
	log   zerolog.Logger
}

// New creates an Extractor.
func New(sync *synchronizer.Synchronizer, codec resource.Codec, logger zerolog.Logger) *Extractor {
	return &Extractor{
		sync:  sync,
		codec: codec,
		log:   logger.With().Str("component", "extract").Logger(),
	}
}

// ExtractOne moves a single literal into the resource files.
//
// The key is prefilled from the lookup scope when a message with the same
// value exists, otherwise from the converter suggestion, and confirmed with
// the prompter. Keeping a key found by value never asks to overwrite it.
func (e *Extractor) ExtractOne(ctx context.Context, set resource.Set, lit literal.SourceLiteral, prompt Prompter) (Outcome, error) {
	entry := NewEntry(lit)
	out := Outcome{Entry: entry}

	if set.Empty() {
		e.log.Warn().Msg("No resource files configured")
		return out, nil
	}

	prefill := entry.Key
	matched, found := e.sync.FindKeyByValue(set.LookupScope(), entry.Value)
	found = found && ValidKey(matched)
	if found {
		prefill = matched
	}

	key, ok := prompt.AskKey(ctx, entry.Value, prefill)
	if !ok {
		return out, ErrCancelled
	}
	key = strings.TrimSpace(key)
	if !ValidKey(key) {
		return out, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	entry.Key = key
	entry.Reused = found && key == matched

	confirm := prompt.ConfirmOverwrite
	if entry.Reused {
		confirm = nil
	}

	out.Written = e.sync.Write(ctx, set.Files, entry.Key, entry.Value, confirm)
	if out.Written > 0 {
		out.Replacement = Replacement(set.ClassName, entry)
	}

	e.log.Info().
		Str("key", entry.Key).
		Str("value", textutil.Truncate(entry.Value, 40)).
		Int("written", out.Written).
		Msg("Extracted literal")

	return out, nil
}

// Replacement returns the source expression that reads entry from the
// generated class, passing placeholder expressions as arguments.
func Replacement(className string, entry *Entry) string {
	var b strings.Builder
	b.WriteString(className)
	b.WriteString(".current.")
	b.WriteString(entry.Key)
	if len(entry.Params) == 0 {
		return b.String()
	}

	args := make([]string, len(entry.Params))
	for i, p := range entry.Params {
		args[i] = strings.TrimSpace(p.Expr)
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(args, ", "))
	b.WriteByte(')')
	return b.String()
}
