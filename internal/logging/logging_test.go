package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	f, err := os.Create(filepath.Join(t.TempDir(), "log.json"))
	require.NoError(t, err)
	defer f.Close()

	Setup("warn", "json", f)
	log.Info().Msg("hidden")
	log.Warn().Str("file", "intl_en.arb").Msg("shown")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"file":"intl_en.arb"`)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestSetupUnknownLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)
	defer f.Close()

	Setup("loud", "console", f)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
