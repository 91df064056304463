package synchronizer

import (
	"context"

	"github.com/rs/zerolog"

	"intl-extract/internal/resource"
)

// ConfirmFunc decides whether an existing key may be overwritten. It may
// block on user interaction; file state is read again after it returns.
type ConfirmFunc func(ctx context.Context, key string) bool

// Pair is one key/value to add in a batch.
type Pair struct {
	Key   string
	Value string
}

// Synchronizer merges key/value pairs into a set of resource files.
// It only works on the files it is given and never looks for others.
type Synchronizer struct {
	codec resource.Codec
	log   zerolog.Logger
}

// New creates a Synchronizer.
func New(codec resource.Codec, logger zerolog.Logger) *Synchronizer {
	return &Synchronizer{
		codec: codec,
		log:   logger.With().Str("component", "synchronizer").Logger(),
	}
}

// Write stores key=value in every target and returns how many files were
// written.
//
// When key already exists in any target, confirm decides whether to
// overwrite. If it declines (or confirm is nil), no file is touched and
// len(targets) is returned: the caller goes on with the existing key. The
// count alone therefore does not prove that files changed. If ctx is done
// once the decision returns, nothing is written and 0 is returned.
func (s *Synchronizer) Write(ctx context.Context, targets []*resource.File, key, value string, confirm ConfirmFunc) int {
	if len(targets) == 0 {
		return 0
	}

	if s.KeyExists(targets, key) {
		overwrite := confirm != nil && confirm(ctx, key)
		if ctx.Err() != nil {
			s.log.Info().Str("key", key).Msg("Write cancelled")
			return 0
		}
		if !overwrite {
			s.log.Info().Str("key", key).Msg("Key exists, keeping current entries")
			return len(targets)
		}
	}

	written := 0
	for _, f := range targets {
		err := f.Update(s.codec, "Extract "+key, func(m *resource.Messages) bool {
			m.Set(key, value)
			return true
		}, s.malformed(f))
		if err != nil {
			s.log.Error().Err(err).Str("file", f.Path()).Str("key", key).Msg("Failed to write resource file")
			continue
		}
		written++
	}

	s.log.Debug().Str("key", key).Int("written", written).Int("targets", len(targets)).Msg("Write complete")
	return written
}

// WriteBatch adds every pair whose key is absent from a target. Existing keys
// are never overwritten. Each file is loaded and persisted once; it counts
// as written when the persist succeeds, however many pairs were new.
func (s *Synchronizer) WriteBatch(ctx context.Context, targets []*resource.File, pairs []Pair) int {
	if ctx.Err() != nil {
		return 0
	}

	written := 0
	for _, f := range targets {
		added := 0
		err := f.Update(s.codec, "Extract strings", func(m *resource.Messages) bool {
			for _, p := range pairs {
				if m.Add(p.Key, p.Value) {
					added++
				}
			}
			return true
		}, s.malformed(f))
		if err != nil {
			s.log.Error().Err(err).Str("file", f.Path()).Msg("Failed to write resource file")
			continue
		}
		written++
		s.log.Debug().Str("file", f.Path()).Int("added", added).Int("skipped", len(pairs)-added).Msg("Batch merged")
	}

	return written
}

// KeyExists reports whether key is present in any target. Unreadable or
// malformed files count as empty.
func (s *Synchronizer) KeyExists(targets []*resource.File, key string) bool {
	for _, f := range targets {
		m, err := f.Load(s.codec)
		if err != nil {
			s.log.Warn().Err(err).Str("file", f.Path()).Msg("Treating unreadable resource file as empty")
		}
		if m != nil && m.Has(key) {
			return true
		}
	}
	return false
}

// FindKeyByValue returns the first key of scope whose value equals value.
// Only the single given file is searched; see resource.Set.LookupScope.
func (s *Synchronizer) FindKeyByValue(scope *resource.File, value string) (string, bool) {
	if scope == nil {
		return "", false
	}
	m, err := scope.Load(s.codec)
	if err != nil {
		s.log.Warn().Err(err).Str("file", scope.Path()).Msg("Treating unreadable lookup file as empty")
	}
	if m == nil {
		return "", false
	}
	return m.FindKey(value)
}

func (s *Synchronizer) malformed(f *resource.File) func(error) {
	return func(err error) {
		s.log.Warn().Err(err).Str("file", f.Path()).Msg("Resource file is malformed, rewriting from empty map")
	}
}
