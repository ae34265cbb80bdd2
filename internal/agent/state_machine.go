// internal/agent/state_machine.go
package agent

import (
	"go.uber.org/zap"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/config"
)

// StateMachine keeps the application under exploration in the foreground.
// It is evaluated once per step before any model query and may override the
// step with a lifecycle correction. It is not safe for concurrent use; the
// engine serializes access.
type StateMachine struct {
	maxRestarts         int
	maxStepsOutside     int
	maxStepsOutsideKill int
	appPackage          string

	restarts     int
	stepsOutside int

	logger *zap.Logger
}

// NewStateMachine builds a state machine from the explorer thresholds.
// Non-positive thresholds fall back to the defaults.
func NewStateMachine(cfg config.ExplorerConfig, logger *zap.Logger) *StateMachine {
	sm := &StateMachine{
		maxRestarts:         cfg.MaxRestarts,
		maxStepsOutside:     cfg.MaxStepsOutside,
		maxStepsOutsideKill: cfg.MaxStepsOutsideKill,
		appPackage:          cfg.AppPackage,
		logger:              logger.Named("state_machine"),
	}
	if sm.maxRestarts <= 0 {
		sm.maxRestarts = config.DefaultMaxRestarts
	}
	if sm.maxStepsOutside <= 0 {
		sm.maxStepsOutside = config.DefaultMaxStepsOutside
	}
	if sm.maxStepsOutsideKill <= 0 {
		sm.maxStepsOutsideKill = config.DefaultMaxStepsOutsideKill
	}
	return sm
}

// Evaluate classifies the screen and returns the corrective action for this
// step, if any.
func (sm *StateMachine) Evaluate(screen schemas.ScreenContext) (schemas.Action, bool) {
	pkg := screen.Package
	if pkg == "" {
		pkg = sm.appPackage
	}

	switch ClassifyDepth(screen.Depth) {
	case StateAbsent:
		sm.restarts++
		if sm.restarts > sm.maxRestarts {
			// Keep restarting; repeated crashes are reported, never fatal.
			sm.logger.Warn("Application restarted more times than expected",
				zap.Int("restarts", sm.restarts),
				zap.Int("max_restarts", sm.maxRestarts))
		}
		sm.logger.Info("Application absent, starting it", zap.String("package", pkg), zap.Int("restarts", sm.restarts))
		return schemas.NewStartAppAction(pkg), true

	case StateBackground:
		sm.stepsOutside++
		if sm.stepsOutside > sm.maxStepsOutsideKill {
			sm.logger.Info("Application stuck in background, force-stopping it",
				zap.String("package", pkg), zap.Int("steps_outside", sm.stepsOutside))
			sm.stepsOutside = 0
			return schemas.NewStopAppAction(pkg), true
		}
		if sm.stepsOutside > sm.maxStepsOutside {
			sm.logger.Info("Application in background, navigating back",
				zap.Int("steps_outside", sm.stepsOutside))
			return schemas.NewBackAction(), true
		}
		return schemas.Action{}, false

	default:
		sm.restarts = 0
		sm.stepsOutside = 0
		return schemas.Action{}, false
	}
}

// Restarts returns the restart counter.
func (sm *StateMachine) Restarts() int { return sm.restarts }

// StepsOutside returns the consecutive background step counter.
func (sm *StateMachine) StepsOutside() int { return sm.stepsOutside }
