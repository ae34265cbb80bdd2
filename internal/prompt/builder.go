// File: internal/prompt/builder.go
package prompt

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

const preamble = "You are an AI agent testing an Android application. Your goal is to thoroughly explore the app's functionality by selecting the most promising UI actions."

const guidance = `Guidelines for selection:
- Prioritize interactive elements (buttons, inputs) over navigation
- Prefer unexplored UI elements when possible
- Avoid excessive BACK actions that might exit the app
- Try to progress through the app's features systematically`

// Builder composes the exploration prompt sent to the model.
type Builder struct {
	describer Describer
}

// NewBuilder returns a Builder whose action labels are cut at labelMaxLength runes.
func NewBuilder(labelMaxLength int) *Builder {
	return &Builder{describer: NewDescriber(labelMaxLength)}
}

// Describer exposes the describer used for the enumerated actions.
func (b *Builder) Describer() Describer { return b.describer }

// Build renders the screen identity, one enumerated line per action, the
// exploration guidance, and an instruction to answer with a bare index.
func (b *Builder) Build(screen schemas.ScreenContext, actions []schemas.Action) string {
	var sb strings.Builder

	sb.WriteString(preamble)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Current Activity: %s\n\n", ActivityName(screen.Activity))

	sb.WriteString("Available Actions:\n")
	for i, action := range actions {
		sb.WriteString(b.describer.Describe(action, i))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	sb.WriteString(guidance)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Respond with ONLY the number of the action to take (0-%d).\n", len(actions)-1)
	sb.WriteString("Do not include any explanation or other text.\n\n")
	sb.WriteString("Selected action number:")

	return sb.String()
}

// ActivityName strips the package qualifier from a component name:
// "com.example/.ui.LoginActivity" and "com.example.ui.LoginActivity" both
// yield "LoginActivity".
func ActivityName(activity string) string {
	name := lastSegment(clean(activity), "/")
	name = lastSegment(name, ".")
	return orDefault(name, unknownType)
}
