package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"INTL_RESOURCE_DIR", "INTL_CLASS_NAME", "INTL_LOOKUP_FILE", "INTL_MAIN_LOCALE", "WORKER_COUNT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	chdir(t, t.TempDir())

	cfg := Load()

	assert.Equal(t, "", cfg.ResourceDir)
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("INTL_RESOURCE_DIR", "assets/i18n")
	t.Setenv("INTL_CLASS_NAME", "L")
	t.Setenv("INTL_LOOKUP_FILE", "intl_en.arb")
	t.Setenv("WORKER_COUNT", "3")
	chdir(t, t.TempDir())

	cfg := Load()

	assert.Equal(t, "assets/i18n", cfg.ResourceDir)
	assert.Equal(t, "L", cfg.ClassName)
	assert.Equal(t, "intl_en.arb", cfg.LookupFile)
	assert.Equal(t, 3, cfg.WorkerCount)
}

func TestGetEnvIntInvalid(t *testing.T) {
	t.Setenv("WORKER_COUNT", "many")
	assert.Equal(t, 8, getEnvInt("WORKER_COUNT", 8))
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
