// internal/agent/models.go
package agent

import (
	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

// AppState is the lifecycle state of the application under exploration,
// derived from its depth in the activity stack.
type AppState string

const (
	StateAbsent     AppState = "ABSENT"     // The application is not running.
	StateBackground AppState = "BACKGROUND" // Running, but another application is in front.
	StateForeground AppState = "FOREGROUND" // The application owns the screen.
)

// ClassifyDepth maps an activity stack depth onto an AppState: negative is
// absent, positive is background, zero is foreground.
func ClassifyDepth(depth int) AppState {
	switch {
	case depth < 0:
		return StateAbsent
	case depth > 0:
		return StateBackground
	default:
		return StateForeground
	}
}

// DeviceState is the engine's view of the UI-discovery collaborator for one
// step. *schemas.Snapshot implements it.
type DeviceState interface {
	// Screen returns the current screen context.
	Screen() schemas.ScreenContext
	// PossibleActions returns the candidate actions for the current screen.
	// The engine appends to the returned slice, so implementations must not
	// hand out a slice that aliases their own storage.
	PossibleActions() []schemas.Action
}
