package scenario

import (
	"context"

	"github.com/Miyamura80/appctl/internal/engine"
)

// Result aggregates a scenario execution. StepResults always holds one
// entry per declared step; the overall status is only ever Pass or Fail.
type Result struct {
	Name          string                   `json:"name,omitempty"`
	OverallStatus engine.Status            `json:"overall_status"`
	StepResults   []engine.ExecutionResult `json:"step_results"`
}

// Run executes the scenario's steps strictly in order with no short-circuit
// on failure: every declared step is attempted exactly once.
//
// The overall status starts at Pass and is monotonically demoted to Fail
// when a call step's status misses its expectation or a probe step ends in
// anything other than Pass or Skip. A step's own result is stored verbatim
// regardless of the expectation outcome.
func Run(ctx context.Context, s *Scenario, app *engine.AppContext, registry *engine.Registry) Result {
	overall := engine.StatusPass
	stepResults := make([]engine.ExecutionResult, 0, len(s.Steps))

	for i, step := range s.Steps {
		var result engine.ExecutionResult
		switch step.Kind {
		case StepCall:
			// TimeoutMS is carried from the document but deliberately not
			// enforced here.
			result = registry.Execute(step.Call.Call, step.Call.Args, app)
			if string(result.Status) != step.Call.ExpectStatus {
				app.Logger.Warn("scenario step status mismatch",
					"step", i,
					"expected", step.Call.ExpectStatus,
					"actual", string(result.Status),
				)
				overall = engine.StatusFail
			}
		case StepProbe:
			result = engine.RunProbe(ctx, step.Probe.Probe, app)
			if result.Status != engine.StatusPass && result.Status != engine.StatusSkip {
				overall = engine.StatusFail
			}
		}
		stepResults = append(stepResults, result)
	}

	return Result{
		Name:          s.Name,
		OverallStatus: overall,
		StepResults:   stepResults,
	}
}
