package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanReply(t *testing.T) {
	assert.Equal(t, "hello!", cleanReply("  hello!  "))
	assert.Equal(t, "after thinking", cleanReply("<think>internal chain</think>after thinking"))
	assert.Equal(t, "unquoted", cleanReply(`"unquoted"`))
	assert.Equal(t, "curly", cleanReply("“curly”"))

	// only symmetric wrapping is stripped
	assert.Equal(t, `"half quoted`, cleanReply(`"half quoted`))

	long := strings.Repeat("a", 4000)
	out := cleanReply(long)
	assert.True(t, strings.HasSuffix(out, "[truncated]"))
	assert.Less(t, len(out), 3000)
}

func TestIsGarbageResponse(t *testing.T) {
	assert.True(t, isGarbageResponse("<HTML><body>error</body>"))
	assert.True(t, isGarbageResponse("Not Allowed"))
	assert.True(t, isGarbageResponse("  hi  "))
	assert.False(t, isGarbageResponse("a perfectly fine reply"))
}

func TestNewProviderSelection(t *testing.T) {
	p, err := NewProvider("pollinations", "openai")
	assert.NoError(t, err)
	assert.NotNil(t, p)

	p, err = NewProvider("", "openai")
	assert.NoError(t, err)
	assert.NotNil(t, p)

	p, err = NewProvider("g4f", "gpt-4")
	assert.NoError(t, err)
	assert.NotNil(t, p)

	_, err = NewProvider("unknown-engine", "x")
	assert.Error(t, err)
}
