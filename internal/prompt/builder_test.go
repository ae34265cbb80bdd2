package prompt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(DefaultLabelMaxLength)
	screen := schemas.ScreenContext{Activity: "com.example.app/.auth.LoginActivity"}
	actions := []schemas.Action{
		{Kind: schemas.KindTap, Text: "Login"},
		{Kind: schemas.KindScroll, Direction: "down"},
		schemas.NewBackAction(),
	}

	got := b.Build(screen, actions)

	assert.Contains(t, got, "Current Activity: LoginActivity\n")
	assert.NotContains(t, got, "com.example.app")
	assert.Contains(t, got, "Prioritize interactive elements")
	assert.Contains(t, got, "Prefer unexplored UI elements")
	assert.Contains(t, got, "Avoid excessive BACK actions")
	assert.Contains(t, got, "progress through the app's features systematically")
	assert.Contains(t, got, "Respond with ONLY the number of the action to take (0-2).")
	assert.True(t, strings.HasSuffix(got, "Selected action number:"))

	// The enumerated block lists every action once, in order.
	start := strings.Index(got, "Available Actions:\n")
	require.NotEqual(t, -1, start)
	block := got[start+len("Available Actions:\n"):]
	block = block[:strings.Index(block, "\n\n")]

	want := []string{"0. Touch 'Login'", "1. Scroll DOWN", "2. Press BACK"}
	if diff := cmp.Diff(want, strings.Split(block, "\n")); diff != "" {
		t.Errorf("action block mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_SingleAction(t *testing.T) {
	got := NewBuilder(0).Build(schemas.ScreenContext{Activity: "MainActivity"}, []schemas.Action{schemas.NewBackAction()})
	assert.Contains(t, got, "(0-0)")
	assert.Contains(t, got, "0. Press BACK")
}

func TestActivityName(t *testing.T) {
	testCases := map[string]string{
		"com.example/.ui.LoginActivity":           "LoginActivity",
		"com.example/com.example.ui.MainActivity": "MainActivity",
		"com.example.SettingsActivity":            "SettingsActivity",
		"MainActivity":                            "MainActivity",
		"":                                        "Unknown",
		"com.example/":                            "Unknown",
	}
	for in, want := range testCases {
		assert.Equal(t, want, ActivityName(in), "input %q", in)
	}
}
