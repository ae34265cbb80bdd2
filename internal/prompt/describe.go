// File: internal/prompt/describe.go
package prompt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

const (
	// DefaultLabelMaxLength is the rune limit applied to labels and accessibility text.
	DefaultLabelMaxLength = 30
	ellipsis              = "..."
	unknownType           = "Unknown"
)

// Describer renders actions as short, single-line phrases.
type Describer struct {
	labelMaxLength int
}

// NewDescriber returns a Describer truncating labels at labelMaxLength runes.
// Non-positive values select DefaultLabelMaxLength.
func NewDescriber(labelMaxLength int) Describer {
	if labelMaxLength <= 0 {
		labelMaxLength = DefaultLabelMaxLength
	}
	return Describer{labelMaxLength: labelMaxLength}
}

// Describe renders the action at position index, e.g. "0. Touch 'Login'".
func Describe(action schemas.Action, index int) string {
	return NewDescriber(DefaultLabelMaxLength).Describe(action, index)
}

// Describe renders the action at position index, e.g. "0. Touch 'Login'".
func (d Describer) Describe(action schemas.Action, index int) string {
	return fmt.Sprintf("%d. %s", index, d.Phrase(action))
}

// Phrase renders the action without its index.
func (d Describer) Phrase(action schemas.Action) string {
	switch action.Kind {
	case schemas.KindTap:
		return "Touch " + d.target(action)
	case schemas.KindScroll:
		return d.scroll(action)
	case schemas.KindSetText:
		return d.setText(action)
	case schemas.KindKey:
		return "Press " + orDefault(clean(action.KeyName), "KEY")
	case schemas.KindIntent, schemas.KindOther:
		return d.other(action)
	default:
		return d.other(action)
	}
}

func (d Describer) target(action schemas.Action) string {
	text := clean(action.Text)
	desc := clean(action.ContentDescription)

	var parts []string
	if text != "" {
		parts = append(parts, "'"+d.truncate(text)+"'")
	}
	if desc != "" && desc != text {
		parts = append(parts, "("+d.truncate(desc)+")")
	}
	if len(parts) == 0 {
		if rid := clean(action.ResourceID); rid != "" {
			parts = append(parts, "["+lastSegment(rid, "/")+"]")
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "<"+simpleTypeName(action.ClassName)+">")
	}
	return strings.Join(parts, " ")
}

func (d Describer) scroll(action schemas.Action) string {
	direction := strings.ToUpper(orDefault(clean(action.Direction), "DOWN"))
	if name := lastSegment(clean(action.ClassName), "."); name != "" {
		return fmt.Sprintf("Scroll %s in %s", direction, name)
	}
	return "Scroll " + direction
}

func (d Describer) setText(action schemas.Action) string {
	if text := clean(action.Text); text != "" {
		return fmt.Sprintf("Enter text in '%s'", text)
	}
	return "Enter text in input field"
}

func (d Describer) other(action schemas.Action) string {
	if name := clean(action.TypeName); name != "" {
		return name
	}
	return action.Kind.String()
}

// truncate cuts s to the label limit in runes, appending an ellipsis.
func (d Describer) truncate(s string) string {
	if utf8.RuneCountInString(s) <= d.labelMaxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:d.labelMaxLength]) + ellipsis
}

// clean replaces control characters with spaces and trims the result.
func clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func simpleTypeName(className string) string {
	return orDefault(lastSegment(clean(className), "."), unknownType)
}

// lastSegment returns the part of s after the final sep.
func lastSegment(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
