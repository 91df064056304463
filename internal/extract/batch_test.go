package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intl-extract/internal/literal"
	"intl-extract/internal/resource"
)

func keys(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}

func TestPlanKeys(t *testing.T) {
	set := newSet(t, `{"okButton":"OK","title":"Something else"}`)

	entries := newTestExtractor().Plan(set, []literal.SourceLiteral{
		lit(`'OK'`),
		lit(`'Title'`),
		lit(`'Welcome back, $name!'`),
		lit(`'Title'`),
		lit(`'Weiter'`),
		lit(`'日本語'`),
		lit(`'中文'`),
	})

	assert.Equal(t, []string{
		"okButton",
		"title2",
		"welcomeBackName",
		"title2",
		"weiter",
		"text",
		"text2",
	}, keys(entries))
	assert.True(t, entries[0].Reused)
	assert.False(t, entries[1].Reused)
}

func TestPlanReusesKeyHoldingSameValue(t *testing.T) {
	set := newSet(t, "{}", `{"cancel":"Cancel"}`)
	set.Lookup = set.Files[0]

	entries := newTestExtractor().Plan(set, []literal.SourceLiteral{lit(`"Cancel"`)})

	require.Len(t, entries, 1)
	assert.Equal(t, "cancel", entries[0].Key)
	assert.True(t, entries[0].Reused)
}

func TestApplyIsAdditive(t *testing.T) {
	set := newSet(t, `{"title":"Old"}`, "{}")
	x := newTestExtractor()

	entries := []*Entry{
		{Key: "title", Value: "New"},
		{Key: "save", Value: "Save"},
		{Key: "bad key", Value: "Ignored"},
	}

	n := x.Apply(context.Background(), set, entries)
	assert.Equal(t, 2, n)

	v, _ := valueOf(t, set.Files[0], "title")
	assert.Equal(t, "Old", v)
	v, _ = valueOf(t, set.Files[1], "title")
	assert.Equal(t, "New", v)
	for _, f := range set.Files {
		v, ok := valueOf(t, f, "save")
		assert.True(t, ok)
		assert.Equal(t, "Save", v)
		_, ok = valueOf(t, f, "bad key")
		assert.False(t, ok)
	}
}

func TestApplyNothingToWrite(t *testing.T) {
	set := newSet(t, "{}")
	assert.Zero(t, newTestExtractor().Apply(context.Background(), set, nil))
	assert.Zero(t, newTestExtractor().Apply(context.Background(), resource.Set{}, []*Entry{{Key: "a", Value: "A"}}))
}

func TestKeyFromValue(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"Hello world", "helloWorld"},
		{"Sign in to {appName} now, please. Thanks!", "signInToAppNameNow"},
		{"404 not found", "text404NotFound"},
		{"¡Hola!", "hola"},
		{"...", "text"},
		{"", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFromValue(tt.value))
		})
	}
}

func TestPlanIgnoresMetadataKeys(t *testing.T) {
	set := newSet(t, `{"@@locale":"en"}`)

	entries := newTestExtractor().Plan(set, []literal.SourceLiteral{lit(`'en'`)})

	require.Len(t, entries, 1)
	assert.Equal(t, "en", entries[0].Key)
	assert.False(t, entries[0].Reused)
}
