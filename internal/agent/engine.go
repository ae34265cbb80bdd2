// internal/agent/engine.go
package agent

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/config"
	"github.com/xkilldash9x/guided-explorer/internal/llmutil"
	"github.com/xkilldash9x/guided-explorer/internal/prompt"
)

// globalRand draws from the process-wide math/rand/v2 source, which is safe
// for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Engine chooses one action per exploration step. It consults the state
// machine first and only queries the model when no lifecycle correction
// applies. Decide never fails: every inference failure degrades to a
// uniformly random pick from the step's action set.
//
// One Engine serves one exploration session. Decide is expected to be called
// sequentially; Stats and Summary may be read from other goroutines.
type Engine struct {
	sessionID    string
	client       schemas.LLMClient
	builder      *prompt.Builder
	stateMachine *StateMachine
	rng          llmutil.IntSource
	timeout      time.Duration
	options      schemas.GenerationOptions
	logger       *zap.Logger

	mu    sync.Mutex
	step  int
	stats schemas.EngineStats
}

// EngineOption configures optional Engine collaborators.
type EngineOption func(*Engine)

// WithRandSource replaces the random source used for fallbacks.
func WithRandSource(rng llmutil.IntSource) EngineOption {
	return func(e *Engine) { e.rng = rng }
}

// WithSessionID sets the session identifier instead of generating one.
func WithSessionID(id string) EngineOption {
	return func(e *Engine) { e.sessionID = id }
}

// NewEngine wires a decision engine around client.
func NewEngine(client schemas.LLMClient, llmCfg config.LLMModelConfig, explorerCfg config.ExplorerConfig, logger *zap.Logger, opts ...EngineOption) *Engine {
	timeout := llmCfg.APITimeout
	if timeout <= 0 {
		timeout = config.DefaultAPITimeout
	}

	e := &Engine{
		client:       client,
		builder:      prompt.NewBuilder(explorerCfg.LabelMaxLength),
		stateMachine: NewStateMachine(explorerCfg, logger),
		rng:          globalRand{},
		timeout:      timeout,
		options: schemas.GenerationOptions{
			Temperature: llmCfg.Temperature,
			MaxTokens:   llmCfg.MaxTokens,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sessionID == "" {
		e.sessionID = uuid.NewString()
	}
	e.logger = logger.Named("engine").With(zap.String("session_id", e.sessionID))
	return e
}

// SessionID returns the identifier of this exploration session.
func (e *Engine) SessionID() string { return e.sessionID }

// Decide returns the action to perform for the current step.
func (e *Engine) Decide(ctx context.Context, state DeviceState) schemas.DecisionResult {
	screen := state.Screen()

	e.mu.Lock()
	e.step++
	step := e.step
	corrective, ok := e.stateMachine.Evaluate(screen)
	e.stats.Restarts = e.stateMachine.Restarts()
	e.stats.ConsecutiveBackground = e.stateMachine.StepsOutside()
	if ok {
		e.stats.CorrectiveActions++
	}
	e.mu.Unlock()

	if ok {
		return e.record(schemas.DecisionResult{
			Step:   step,
			Action: corrective,
			Index:  -1,
			Source: schemas.SourceCorrective,
		})
	}

	actions := append(state.PossibleActions(), schemas.NewBackAction())
	if len(actions) == 0 {
		// Unreachable while navigate-back is always appended.
		e.logger.Error("Cannot query model", zap.Int("step", step), zap.Error(ErrNoActionsAvailable))
		return e.record(schemas.DecisionResult{
			Step:   step,
			Action: schemas.NewBackAction(),
			Index:  -1,
			Source: schemas.SourceNoActions,
		})
	}

	userPrompt := e.builder.Build(screen, actions)
	e.logger.Debug("Built prompt", zap.Int("step", step), zap.Int("actions", len(actions)), zap.Int("prompt_len", len(userPrompt)))

	reply, err := e.query(ctx, userPrompt)
	if err != nil {
		kind := schemas.FailureKindOf(err)
		e.logger.Warn("Inference query failed, choosing a random action",
			zap.Int("step", step),
			zap.String("failure", string(kind)),
			zap.Error(err))

		e.mu.Lock()
		e.stats.FailedQueries++
		e.stats.RandomFallbacks++
		e.mu.Unlock()

		index := e.rng.IntN(len(actions))
		return e.record(schemas.DecisionResult{
			Step:    step,
			Action:  actions[index],
			Index:   index,
			Total:   len(actions),
			Source:  schemas.SourceFailureFallback,
			Failure: kind,
		})
	}

	e.logger.Debug("Model reply", zap.Int("step", step), zap.String("reply", llmutil.Truncate(reply, 200)))

	index, forced := llmutil.ExtractActionIndex(reply, len(actions), e.rng)
	source := schemas.SourceModel

	e.mu.Lock()
	e.stats.SuccessfulQueries++
	if forced {
		e.stats.RandomFallbacks++
		e.stats.ForcedFallbacks++
		source = schemas.SourceForcedFallback
	}
	e.mu.Unlock()

	if forced {
		e.logger.Warn("Could not extract a valid action index from reply, choosing a random action",
			zap.Int("step", step),
			zap.String("reply", llmutil.Truncate(reply, 200)),
			zap.Int("index", index))
	}

	return e.record(schemas.DecisionResult{
		Step:   step,
		Action: actions[index],
		Index:  index,
		Total:  len(actions),
		Source: source,
		Raw:    reply,
	})
}

// query runs one inference call bounded by the engine timeout. A panic in
// the client is converted to a FailureServiceError.
func (e *Engine) query(ctx context.Context, userPrompt string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Inference client panicked",
				zap.Any("panic_value", r),
				zap.String("stack", string(debug.Stack())))
			reply = ""
			err = schemas.NewInferenceError(schemas.FailureServiceError, fmt.Sprintf("inference client panicked: %v", r), nil)
		}
	}()

	qctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	return e.client.Generate(qctx, schemas.GenerationRequest{
		UserPrompt: userPrompt,
		Options:    e.options,
	})
}

// record fills in the description and logs the decision's provenance.
func (e *Engine) record(res schemas.DecisionResult) schemas.DecisionResult {
	res.Description = e.builder.Describer().Phrase(res.Action)
	e.logger.Info("Action selected",
		zap.Int("step", res.Step),
		zap.String("source", string(res.Source)),
		zap.Bool("random", res.Source.IsRandom()),
		zap.Int("index", res.Index),
		zap.Int("total", res.Total),
		zap.String("action", res.Description))
	return res
}

// Stats returns a snapshot of the session counters.
func (e *Engine) Stats() schemas.EngineStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Summary reports the query statistics of the session so far.
func (e *Engine) Summary() schemas.Summary {
	stats := e.Stats()
	total := stats.SuccessfulQueries + stats.FailedQueries

	var rate float64
	if total > 0 {
		rate = float64(stats.SuccessfulQueries) / float64(total) * 100
	}
	return schemas.Summary{
		SessionID:    e.sessionID,
		TotalQueries: total,
		Successful:   stats.SuccessfulQueries,
		SuccessRate:  rate,
		Failed:       stats.FailedQueries,
		Fallbacks:    stats.RandomFallbacks,
	}
}

// Stop logs the session summary and releases the inference client.
func (e *Engine) Stop() schemas.Summary {
	summary := e.Summary()
	e.logger.Info("Exploration session finished",
		zap.Int("total_queries", summary.TotalQueries),
		zap.Int("successful", summary.Successful),
		zap.String("success_rate", fmt.Sprintf("%.1f%%", summary.SuccessRate)),
		zap.Int("failed", summary.Failed),
		zap.Int("random_fallbacks", summary.Fallbacks))

	if err := e.client.Close(); err != nil {
		e.logger.Warn("Failed to close inference client", zap.Error(err))
	}
	return summary
}
