package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intl-extract/internal/literal"
	"intl-extract/internal/resource"
	"intl-extract/internal/synchronizer"
)

type stubPrompter struct {
	key       string
	cancel    bool
	overwrite bool

	suggested string
	asked     []string
}

func (p *stubPrompter) AskKey(_ context.Context, _, suggested string) (string, bool) {
	p.suggested = suggested
	if p.cancel {
		return "", false
	}
	if p.key == "" {
		return suggested, true
	}
	return p.key, true
}

func (p *stubPrompter) ConfirmOverwrite(_ context.Context, key string) bool {
	p.asked = append(p.asked, key)
	return p.overwrite
}

func newTestExtractor() *Extractor {
	codec := resource.DefaultCodec
	return New(synchronizer.New(codec, zerolog.Nop()), codec, zerolog.Nop())
}

func newSet(t *testing.T, docs ...string) resource.Set {
	t.Helper()
	dir := t.TempDir()
	set := resource.Set{ClassName: "S"}
	for i, doc := range docs {
		path := filepath.Join(dir, []string{"intl_en.arb", "intl_de.arb", "intl_fr.arb"}[i])
		require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
		set.Files = append(set.Files, resource.NewFile(path, nil))
	}
	return set
}

func lit(raw string) literal.SourceLiteral {
	return literal.New(raw, 10, 10+len(raw))
}

func valueOf(t *testing.T, f *resource.File, key string) (string, bool) {
	t.Helper()
	m, err := f.Load(resource.DefaultCodec)
	require.NoError(t, err)
	return m.Get(key)
}

func TestExtractOneWritesAndReplaces(t *testing.T) {
	set := newSet(t, "{}", "{}")
	p := &stubPrompter{key: "greeting"}

	out, err := newTestExtractor().ExtractOne(context.Background(), set, lit(`'Hello $name'`), p)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Written)
	assert.Equal(t, "S.current.greeting(name)", out.Replacement)
	assert.Equal(t, "Hello {name}", out.Entry.Value)
	for _, f := range set.Files {
		v, ok := valueOf(t, f, "greeting")
		assert.True(t, ok)
		assert.Equal(t, "Hello {name}", v)
	}
}

func TestExtractOnePrefillsSuggestedKey(t *testing.T) {
	set := newSet(t, "{}")
	p := &stubPrompter{}

	out, err := newTestExtractor().ExtractOne(context.Background(), set, lit(`"Cancel"`), p)
	require.NoError(t, err)

	assert.Equal(t, "cancel", p.suggested)
	assert.Equal(t, "S.current.cancel", out.Replacement)
}

func TestExtractOnePrefillsKeyFoundByValue(t *testing.T) {
	set := newSet(t, `{"okButton":"OK"}`)
	p := &stubPrompter{}

	out, err := newTestExtractor().ExtractOne(context.Background(), set, lit(`'OK'`), p)
	require.NoError(t, err)

	assert.Equal(t, "okButton", p.suggested)
	assert.True(t, out.Entry.Reused)
	assert.Empty(t, p.asked)
	// keeping the matched key declines the overwrite: no file is touched
	assert.Equal(t, 1, out.Written)
	assert.Equal(t, "S.current.okButton", out.Replacement)
}

func TestExtractOneCancelled(t *testing.T) {
	set := newSet(t, "{}")
	before, err := os.ReadFile(set.Files[0].Path())
	require.NoError(t, err)

	out, err := newTestExtractor().ExtractOne(context.Background(), set, lit(`'Hi'`), &stubPrompter{cancel: true})

	assert.ErrorIs(t, err, ErrCancelled)
	assert.Zero(t, out.Written)
	assert.Empty(t, out.Replacement)
	after, err := os.ReadFile(set.Files[0].Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExtractOneRejectsInvalidKey(t *testing.T) {
	set := newSet(t, "{}")

	_, err := newTestExtractor().ExtractOne(context.Background(), set, lit(`'Hi'`), &stubPrompter{key: "not a key"})

	assert.True(t, errors.Is(err, ErrInvalidKey))
}

func TestExtractOneAsksBeforeOverwrite(t *testing.T) {
	set := newSet(t, `{"title":"Old"}`)

	p := &stubPrompter{key: "title", overwrite: true}
	out, err := newTestExtractor().ExtractOne(context.Background(), set, lit(`'New'`), p)
	require.NoError(t, err)

	assert.Equal(t, []string{"title"}, p.asked)
	assert.Equal(t, 1, out.Written)
	v, _ := valueOf(t, set.Files[0], "title")
	assert.Equal(t, "New", v)
}

func TestExtractOneDeclinedOverwriteStillReplaces(t *testing.T) {
	set := newSet(t, `{"title":"Old"}`)

	p := &stubPrompter{key: "title"}
	out, err := newTestExtractor().ExtractOne(context.Background(), set, lit(`'New'`), p)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Written)
	assert.Equal(t, "S.current.title", out.Replacement)
	v, _ := valueOf(t, set.Files[0], "title")
	assert.Equal(t, "Old", v)
}

func TestExtractOneEmptySet(t *testing.T) {
	out, err := newTestExtractor().ExtractOne(context.Background(), resource.Set{ClassName: "S"}, lit(`'Hi'`), &stubPrompter{})
	require.NoError(t, err)
	assert.Zero(t, out.Written)
	assert.Empty(t, out.Replacement)
}

func TestReplacement(t *testing.T) {
	tests := []struct {
		raw  string
		key  string
		want string
	}{
		{`'Plain'`, "plain", "L10n.current.plain"},
		{`'Hi $name'`, "hi", "L10n.current.hi(name)"},
		{`'${a} and ${a}'`, "pair", "L10n.current.pair(a, a)"},
		{`'${user.name} has ${ items.length } items'`, "count", "L10n.current.count(user.name, items.length)"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			e := NewEntry(lit(tt.raw))
			e.Key = tt.key
			assert.Equal(t, tt.want, Replacement("L10n", e))
		})
	}
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey("helloWorld"))
	assert.True(t, ValidKey("_private2"))
	assert.False(t, ValidKey(""))
	assert.False(t, ValidKey("2fa"))
	assert.False(t, ValidKey("with space"))
	assert.False(t, ValidKey("dotted.key"))
}
