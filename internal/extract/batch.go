package extract

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"

	"intl-extract/internal/literal"
	"intl-extract/internal/resource"
	"intl-extract/internal/synchronizer"
)

const (
	fallbackKey = "text"
	maxKeyWords = 5
)

// Plan turns literals into entries with unique keys, without writing.
//
// Keys come from the lookup scope when the value is already present there,
// then from the converter suggestion, then from the words of the value.
// Literals with the same value share one entry key. A candidate that is
// taken by a different value gets a numeric suffix.
func (e *Extractor) Plan(set resource.Set, lits []literal.SourceLiteral) []*Entry {
	existing := e.snapshot(set.Files)
	scope := set.LookupScope()

	byValue := make(map[string]string)
	taken := make(map[string]string)

	entries := make([]*Entry, 0, len(lits))
	for _, lit := range lits {
		entry := NewEntry(lit)
		entries = append(entries, entry)

		if key, ok := byValue[entry.Value]; ok {
			entry.Key = key
			entry.Reused = isReused(existing, key, entry.Value)
			continue
		}

		// metadata keys such as @@locale may hold plain strings too
		if key, ok := e.sync.FindKeyByValue(scope, entry.Value); ok && ValidKey(key) {
			entry.Key = key
			entry.Reused = isReused(existing, key, entry.Value)
		} else {
			if entry.Key == "" {
				entry.Key = KeyFromValue(entry.Value)
			}
			entry.Key = uniqueKey(entry.Key, entry.Value, existing, taken)
			entry.Reused = isReused(existing, entry.Key, entry.Value)
		}

		byValue[entry.Value] = entry.Key
		taken[entry.Key] = entry.Value
	}

	return entries
}

// Apply writes planned entries to every file of set. Existing keys are
// never replaced. The result is the synchronizer count.
func (e *Extractor) Apply(ctx context.Context, set resource.Set, entries []*Entry) int {
	pairs := make([]synchronizer.Pair, 0, len(entries))
	for _, entry := range entries {
		if !ValidKey(entry.Key) {
			e.log.Warn().Str("key", entry.Key).Msg("Skipping entry with invalid key")
			continue
		}
		pairs = append(pairs, synchronizer.Pair{Key: entry.Key, Value: entry.Value})
	}
	if len(pairs) == 0 {
		return 0
	}
	return e.sync.WriteBatch(ctx, set.Files, pairs)
}

// KeyFromValue derives a lowerCamelCase key from the first words of value.
// Placeholders count as words. Values without ASCII words yield "text".
func KeyFromValue(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool {
		return r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	if len(words) > maxKeyWords {
		words = words[:maxKeyWords]
	}

	key := strcase.ToLowerCamel(strings.Join(words, " "))
	switch {
	case key == "":
		return fallbackKey
	case key[0] >= '0' && key[0] <= '9':
		return fallbackKey + strcase.ToCamel(key)
	}
	return key
}

// snapshot returns the union of keys in files with the value from the first
// file that holds each key. Unreadable files contribute nothing.
func (e *Extractor) snapshot(files []*resource.File) map[string]string {
	out := make(map[string]string)
	for _, f := range files {
		m, err := f.Load(e.codec)
		if err != nil {
			e.log.Debug().Err(err).Str("file", f.Path()).Msg("Snapshot read failed")
		}
		if m == nil {
			continue
		}
		for _, k := range m.Keys() {
			if _, ok := out[k]; ok {
				continue
			}
			v, _ := m.Get(k)
			out[k] = v
		}
	}
	return out
}

func isReused(existing map[string]string, key, value string) bool {
	v, ok := existing[key]
	return ok && v == value
}

// uniqueKey returns base, or base followed by the lowest free number from 2,
// such that the key is free or already maps to value.
func uniqueKey(base, value string, existing, taken map[string]string) string {
	free := func(key string) bool {
		if v, ok := taken[key]; ok && v != value {
			return false
		}
		if v, ok := existing[key]; ok && v != value {
			return false
		}
		return true
	}

	if free(base) {
		return base
	}
	for n := 2; ; n++ {
		if key := base + strconv.Itoa(n); free(key) {
			return key
		}
	}
}
