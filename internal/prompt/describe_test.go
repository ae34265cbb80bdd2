package prompt

import (
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

func TestDescribe(t *testing.T) {
	long := "Create a new account with your email address"

	testCases := []struct {
		name     string
		action   schemas.Action
		index    int
		expected string
	}{
		{
			name:     "tap with label",
			action:   schemas.Action{Kind: schemas.KindTap, Text: "Login"},
			expected: "0. Touch 'Login'",
		},
		{
			name:     "tap with label and distinct description",
			action:   schemas.Action{Kind: schemas.KindTap, Text: "OK", ContentDescription: "Confirm dialog"},
			index:    4,
			expected: "4. Touch 'OK' (Confirm dialog)",
		},
		{
			name:     "tap description equal to label is not repeated",
			action:   schemas.Action{Kind: schemas.KindTap, Text: "Search", ContentDescription: " Search "},
			expected: "0. Touch 'Search'",
		},
		{
			name:     "tap label truncated to thirty runes",
			action:   schemas.Action{Kind: schemas.KindTap, Text: long},
			expected: "0. Touch 'Create a new account with your...'",
		},
		{
			name:     "tap description only",
			action:   schemas.Action{Kind: schemas.KindTap, ContentDescription: "Navigate up"},
			expected: "0. Touch (Navigate up)",
		},
		{
			name:     "tap falls back to resource id segment",
			action:   schemas.Action{Kind: schemas.KindTap, ResourceID: "com.example:id/fab_add", ClassName: "android.widget.ImageButton"},
			expected: "0. Touch [fab_add]",
		},
		{
			name:     "tap resource id without separator",
			action:   schemas.Action{Kind: schemas.KindTap, ResourceID: "fab_add"},
			expected: "0. Touch [fab_add]",
		},
		{
			name:     "tap falls back to simple class name",
			action:   schemas.Action{Kind: schemas.KindTap, ClassName: "android.widget.ImageButton"},
			expected: "0. Touch <ImageButton>",
		},
		{
			name:     "tap with nothing",
			action:   schemas.Action{Kind: schemas.KindTap},
			expected: "0. Touch <Unknown>",
		},
		{
			name:     "whitespace-only label counts as empty",
			action:   schemas.Action{Kind: schemas.KindTap, Text: "   ", ClassName: "android.view.View"},
			expected: "0. Touch <View>",
		},
		{
			name:     "scroll with direction and container",
			action:   schemas.Action{Kind: schemas.KindScroll, Direction: "up", ClassName: "androidx.recyclerview.widget.RecyclerView"},
			index:    2,
			expected: "2. Scroll UP in RecyclerView",
		},
		{
			name:     "scroll defaults to down",
			action:   schemas.Action{Kind: schemas.KindScroll},
			expected: "0. Scroll DOWN",
		},
		{
			name:     "set text with existing content",
			action:   schemas.Action{Kind: schemas.KindSetText, Text: "alice@example.com"},
			expected: "0. Enter text in 'alice@example.com'",
		},
		{
			name:     "set text on empty field",
			action:   schemas.Action{Kind: schemas.KindSetText},
			expected: "0. Enter text in input field",
		},
		{
			name:     "key press",
			action:   schemas.NewBackAction(),
			index:    7,
			expected: "7. Press BACK",
		},
		{
			name:     "unnamed key press",
			action:   schemas.Action{Kind: schemas.KindKey},
			expected: "0. Press KEY",
		},
		{
			name:     "other reports type name",
			action:   schemas.Action{Kind: schemas.KindOther, TypeName: "SwipeEvent"},
			expected: "0. SwipeEvent",
		},
		{
			name:     "other without type name reports kind",
			action:   schemas.Action{Kind: schemas.KindOther},
			expected: "0. other",
		},
		{
			name:     "intent renders through the other rule",
			action:   schemas.NewStartAppAction("com.example"),
			expected: "0. IntentEvent",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Describe(tc.action, tc.index))
		})
	}
}

func TestPhrase_TapWithoutLabelIsUnknown(t *testing.T) {
	assert.Equal(t, "Touch <Unknown>", NewDescriber(DefaultLabelMaxLength).Phrase(schemas.Action{Kind: schemas.KindTap}))
}

func TestDescribe_NoNullMarkersOrControlCharacters(t *testing.T) {
	actions := []schemas.Action{
		{Kind: schemas.KindTap},
		{Kind: schemas.KindTap, Text: "Line one\nLine two\tTabbed\r"},
		{Kind: schemas.KindTap, ContentDescription: "\x00\x07bell"},
		{Kind: schemas.KindScroll, ClassName: "android.widget."},
		{Kind: schemas.KindSetText, Text: "\n"},
		{Kind: schemas.KindKey, KeyName: "\t"},
		{Kind: schemas.KindOther},
		{Kind: schemas.ActionKind(99)},
	}

	for i, a := range actions {
		got := Describe(a, i)
		for _, marker := range []string{"None", "null", "<nil>"} {
			assert.NotContains(t, got, marker)
		}
		assert.False(t, strings.ContainsFunc(got, unicode.IsControl), "control character in %q", got)
	}
}

func TestDescriber_CustomLabelLength(t *testing.T) {
	d := NewDescriber(5)
	assert.Equal(t, "Touch 'Setti...'", d.Phrase(schemas.Action{Kind: schemas.KindTap, Text: "Settings"}))

	// Multi-byte labels are cut on rune boundaries.
	assert.Equal(t, "Touch 'héllo...'", d.Phrase(schemas.Action{Kind: schemas.KindTap, Text: "héllo wörld"}))
}

func TestDescriber_EnumeratesSet(t *testing.T) {
	d := NewDescriber(0)
	set := []schemas.Action{
		{Kind: schemas.KindTap, Text: "Login"},
		{Kind: schemas.KindScroll, Direction: "down"},
		schemas.NewBackAction(),
	}

	var got []string
	for i, a := range set {
		got = append(got, d.Describe(a, i))
	}

	want := []string{"0. Touch 'Login'", "1. Scroll DOWN", "2. Press BACK"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("descriptions mismatch (-want +got):\n%s", diff)
	}
}
