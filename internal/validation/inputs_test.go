package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidProjectName(t *testing.T) {
	valid := []string{"my-app", "My App", "hono_api", "@scope", "app.v2", strings.Repeat("a", 214)}
	for _, name := range valid {
		t.Run("valid "+name[:min(len(name), 16)], func(t *testing.T) {
			assert.NoError(t, IsValidProjectName(name))
		})
	}

	invalid := []string{"", "   ", ".", "..", "a/b", `a\b`, "a:b", "what?", "tab\there", strings.Repeat("a", 215)}
	for _, name := range invalid {
		t.Run("invalid "+name[:min(len(name), 16)], func(t *testing.T) {
			assert.Error(t, IsValidProjectName(name))
		})
	}
}

func TestIsValidTemplateName(t *testing.T) {
	assert.NoError(t, IsValidTemplateName("cloudflare-workers"))
	assert.NoError(t, IsValidTemplateName("x-basic"))
	assert.EqualError(t, IsValidTemplateName("express"), "invalid template selected: express")
}
