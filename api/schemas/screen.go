package schemas

// -- Observation Schemas --

// ScreenContext identifies the current screen and where the target
// application sits in the activity stack.
type ScreenContext struct {
	// Activity is the display identity of the foreground component, usually a
	// fully qualified activity name such as "com.example/.ui.LoginActivity".
	Activity string `json:"activity"`
	// Depth is 0 when the application is in the foreground, > 0 when it is
	// backgrounded at that stack depth, and < 0 when it is absent.
	Depth int `json:"depth"`
	// Package is the target application's package, used for lifecycle intents.
	Package string `json:"package,omitempty"`
}

// Snapshot is one step's observation as recorded by the UI-discovery
// collaborator. It is the unit of the JSONL trace format.
type Snapshot struct {
	Step    int           `json:"step"`
	Context ScreenContext `json:"screen"`
	Actions []Action      `json:"actions"`
}

// Screen returns the screen context of the snapshot.
func (s *Snapshot) Screen() ScreenContext { return s.Context }

// PossibleActions returns a copy of the recorded actions so callers may
// append to it without aliasing the snapshot.
func (s *Snapshot) PossibleActions() []Action {
	out := make([]Action, len(s.Actions), len(s.Actions)+1)
	copy(out, s.Actions)
	return out
}
