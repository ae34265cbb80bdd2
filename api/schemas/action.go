package schemas

import (
	"fmt"
	"strings"
)

// -- Action Schemas --

// ActionKind identifies which variant of Action a value holds. The set is
// closed: every switch over ActionKind in this module is expected to cover
// all of the constants below.
type ActionKind int

const (
	KindOther ActionKind = iota
	KindTap
	KindScroll
	KindSetText
	KindKey
	KindIntent
)

var actionKindNames = map[ActionKind]string{
	KindOther:   "other",
	KindTap:     "tap",
	KindScroll:  "scroll",
	KindSetText: "set_text",
	KindKey:     "key",
	KindIntent:  "intent",
}

// String returns the wire name of the kind.
func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k ActionKind) MarshalText() ([]byte, error) {
	if _, ok := actionKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown action kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// KindOther so that traces produced by newer drivers still load.
func (k *ActionKind) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, n := range actionKindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	switch name {
	case "touch", "click":
		*k = KindTap
	case "type", "text", "input":
		*k = KindSetText
	case "keypress", "key_press":
		*k = KindKey
	default:
		*k = KindOther
	}
	return nil
}

// IntentType distinguishes the two application lifecycle intents the
// exploration state machine can emit.
type IntentType string

const (
	IntentStart IntentType = "start"
	IntentStop  IntentType = "stop"
)

// KeyBack is the key name of the universal navigate-back action.
const KeyBack = "BACK"

// Action is one UI action available on the current screen. Actions are
// produced by the UI-discovery collaborator each step and treated as
// immutable values; only the fields relevant to Kind are populated.
type Action struct {
	Kind ActionKind `json:"kind"`

	// Text is the element's label (tap) or its current contents (set_text).
	Text string `json:"text,omitempty"`
	// ContentDescription is the accessibility description of the element.
	ContentDescription string `json:"content_description,omitempty"`
	// ResourceID is the element identifier, e.g. "com.example:id/login".
	ResourceID string `json:"resource_id,omitempty"`
	// ClassName is the fully qualified element type, e.g. "android.widget.Button".
	ClassName string `json:"class,omitempty"`

	Direction string `json:"direction,omitempty"`
	KeyName   string `json:"key,omitempty"`

	// TypeName is the collaborator's own name for the event type. It is the
	// only thing reported for actions of KindOther.
	TypeName string `json:"type_name,omitempty"`

	Intent  IntentType `json:"intent,omitempty"`
	Package string     `json:"package,omitempty"`
}

// NewBackAction returns the navigate-back key press appended to every action set.
func NewBackAction() Action {
	return Action{Kind: KindKey, KeyName: KeyBack, TypeName: "KeyEvent"}
}

// NewStartAppAction returns an intent that (re)starts the target application.
func NewStartAppAction(pkg string) Action {
	return Action{Kind: KindIntent, Intent: IntentStart, Package: pkg, TypeName: "IntentEvent"}
}

// NewStopAppAction returns an intent that force-stops the target application.
func NewStopAppAction(pkg string) Action {
	return Action{Kind: KindIntent, Intent: IntentStop, Package: pkg, TypeName: "IntentEvent"}
}

// IsBack reports whether the action is the navigate-back key press.
func (a Action) IsBack() bool {
	return a.Kind == KindKey && strings.EqualFold(a.KeyName, KeyBack)
}
