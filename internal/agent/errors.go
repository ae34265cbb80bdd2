// internal/agent/errors.go
package agent

import "errors"

// ErrNoActionsAvailable is logged when a step offers no candidate actions at
// all. The engine still returns navigate-back in that case.
var ErrNoActionsAvailable = errors.New("no actions available for the current screen")
