package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePersonality_FallbackAndClamp(t *testing.T) {
	// unknown style falls back to the default family
	assert.Equal(t, ResolvePersonality("default", 3), ResolvePersonality("no-such-style", 3))
	assert.Equal(t, ResolvePersonality("default", 3), ResolvePersonality("", 3))

	// out-of-range levels clamp instead of panicking
	assert.Equal(t, ResolvePersonality("tsundere", 1), ResolvePersonality("tsundere", -4))
	assert.Equal(t, ResolvePersonality("tsundere", 6), ResolvePersonality("tsundere", 99))

	// case-insensitive lookup
	assert.Equal(t, ResolvePersonality("yandere", 2), ResolvePersonality("YANDERE", 2))
}

func TestResolvePersonality_EscalatesWithBond(t *testing.T) {
	for _, style := range Styles() {
		seen := map[string]bool{}
		for level := 1; level <= 6; level++ {
			fragment := ResolvePersonality(style, level)
			assert.NotEmptyf(t, fragment, "%s level %d", style, level)
			assert.Falsef(t, seen[fragment], "%s level %d repeats a fragment", style, level)
			seen[fragment] = true
		}
	}
}

func TestKnownStyle(t *testing.T) {
	assert.True(t, KnownStyle("default"))
	assert.True(t, KnownStyle("Kuudere"))
	assert.False(t, KnownStyle("zombie"))
}

func TestSystemPromptReflectsBond(t *testing.T) {
	rec := newUserRecord()
	rec.Style = "tsundere"

	low := systemPrompt(rec, "tester")
	rec.Bond = 100
	high := systemPrompt(rec, "tester")

	assert.NotEqual(t, low, high)
	assert.Contains(t, low, "tester")
	assert.Contains(t, low, "Aiko")
}
