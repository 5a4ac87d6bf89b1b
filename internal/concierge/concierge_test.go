package concierge

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutKeyReturnsNil(t *testing.T) {
	c, err := New(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNilConciergeIsSafe(t *testing.T) {
	var c *Concierge

	c.Close()

	_, err := c.Ask(context.Background(), "my brakes squeal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestPromptEmbedsMessage(t *testing.T) {
	p := Prompt("do you fit tyres on a BMW M4?")

	assert.Contains(t, p, `You are "Alexis"`)
	assert.Contains(t, p, "Loughborough, LE11 5DF")
	assert.Contains(t, p, "User Query: do you fit tyres on a BMW M4?")
	assert.True(t, strings.HasSuffix(p, "do you fit tyres on a BMW M4?"))
}

func TestAPIKeyPrefersGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GOOGLE_API_KEY", "fallback")
	assert.Equal(t, "g-key", APIKey())

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "fallback", APIKey())
}
