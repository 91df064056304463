package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTranslatable(t *testing.T) {
	assert.True(t, IsTranslatable("Cancel"))
	assert.True(t, IsTranslatable("你好"))
	assert.True(t, IsTranslatable("${count} items"))
	assert.False(t, IsTranslatable(""))
	assert.False(t, IsTranslatable("  42 % "))
	assert.False(t, IsTranslatable("${}"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "你好...", Truncate("你好世界", 2))
}
