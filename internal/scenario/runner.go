package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/gammazero/workerpool"

	"github.com/sglre6355/accord/internal/accord"
	"github.com/sglre6355/accord/internal/accord/embedverify"
)

// EngineFactory starts a fresh engine for one scenario.
type EngineFactory func(ctx context.Context) (*accord.Engine, error)

// Result is the outcome of one scenario.
type Result struct {
	Scenario *Scenario
	Err      error

	// Step is the 1-based index of the failed step, or 0.
	Step     int
	Duration time.Duration
}

// Passed reports whether every step succeeded.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Runner runs scenarios concurrently, each against its own engine.
type Runner struct {
	factory EngineFactory
	workers int
	logger  *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers sets how many scenarios run at once.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner drawing engines from factory.
func NewRunner(factory EngineFactory, opts ...RunnerOption) *Runner {
	r := &Runner{
		factory: factory,
		workers: 1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run runs every scenario and returns their results in input order.
func (r *Runner) Run(ctx context.Context, scenarios []*Scenario) []Result {
	results := make([]Result, len(scenarios))

	pool := workerpool.New(r.workers)
	for i, sc := range scenarios {
		pool.Submit(func() {
			results[i] = r.runScenario(ctx, sc)
		})
	}
	pool.StopWait()

	return results
}

func (r *Runner) runScenario(ctx context.Context, sc *Scenario) Result {
	start := time.Now()
	result := Result{Scenario: sc}
	defer func() {
		result.Duration = time.Since(start)
	}()

	engine, err := r.factory(ctx)
	if err != nil {
		result.Err = fmt.Errorf("failed to start engine: %w", err)
		return result
	}
	defer func() {
		if err := engine.Close(); err != nil {
			r.logger.Warn("failed to close engine", "scenario", sc.Name, "error", err)
		}
	}()

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			result.Err, result.Step = err, i+1
			return result
		}
		if err := runStep(ctx, engine, step); err != nil {
			result.Err, result.Step = err, i+1
			r.logger.Debug("scenario failed", "scenario", sc.Name, "step", i+1, "kind", step.Kind(), "error", err)
			return result
		}
	}

	r.logger.Debug("scenario passed", "scenario", sc.Name, "steps", len(sc.Steps))
	return result
}

func runStep(ctx context.Context, engine *accord.Engine, step Step) error {
	switch step.Kind() {
	case "command":
		return runCommand(ctx, engine, step)

	case "click":
		resp, err := engine.GetResponse(responseIndex(step.Response))
		if err != nil {
			return err
		}
		sel := accord.ByLabel(step.Click.Label)
		if index, ok := step.Click.Index.Get(); ok {
			sel = accord.ByIndex(index)
		}
		if resp.GetButton(sel).IsAbsent() {
			return fmt.Errorf("%w: %s", ErrNoButton, step.Click)
		}
		return resp.ActivateButton(ctx, sel)

	case "modal_input":
		resp, err := modalResponse(engine, step.Response)
		if err != nil {
			return err
		}
		for _, name := range sortedKeys(step.ModalInput) {
			if _, ok := resp.Modal.Field(name); !ok {
				return fmt.Errorf("%w: modal has no field %q", ErrInvalidStep, name)
			}
			resp.ModalInput(name, step.ModalInput[name])
		}
		return nil

	case "submit_modal":
		resp, err := modalResponse(engine, step.Response)
		if err != nil {
			return err
		}
		return resp.SubmitModal(ctx)

	case "expect":
		return check(engine, step.Expect)
	}
	return ErrInvalidStep
}

func runCommand(ctx context.Context, engine *accord.Engine, step Step) error {
	opts := []accord.CommandOption{accord.Args(step.Args...)}
	for _, name := range sortedKeys(step.Options) {
		opts = append(opts, accord.Named(name, step.Options[name]))
	}

	err := engine.AppCommand(ctx, step.Command, opts...)
	switch {
	case step.ExpectError == "":
		return err
	case err == nil:
		return fmt.Errorf("%w: expected error %q, got none", ErrExpectationFailed, step.ExpectError)
	case err.Error() != step.ExpectError:
		return fmt.Errorf("%w: expected error %q, got %q", ErrExpectationFailed, step.ExpectError, err.Error())
	}
	return nil
}

func responseIndex(index *int) int {
	if index == nil {
		return -1
	}
	return *index
}

func modalResponse(engine *accord.Engine, index *int) (*accord.Response, error) {
	resp, err := engine.GetResponse(responseIndex(index))
	if err != nil {
		return nil, err
	}
	if resp.Modal == nil {
		return nil, ErrNoModal
	}
	return resp, nil
}

func check(engine *accord.Engine, exp *Expectation) error {
	if n := exp.Count; n != nil {
		if got := len(engine.Responses()); got != *n {
			return fmt.Errorf("%w: expected %d responses, got %d", ErrExpectationFailed, *n, got)
		}
	}
	if exp.Content == nil && exp.Ephemeral == nil && exp.Embed == nil {
		return nil
	}

	resp, err := engine.GetResponse(responseIndex(exp.Index))
	if err != nil {
		return err
	}

	if want := exp.Content; want != nil && resp.Content != *want {
		return fmt.Errorf("%w: expected content %q, got %q", ErrExpectationFailed, *want, resp.Content)
	}
	if want := exp.Ephemeral; want != nil && resp.Ephemeral != *want {
		return fmt.Errorf("%w: expected ephemeral %t, got %t", ErrExpectationFailed, *want, resp.Ephemeral)
	}
	if exp.Embed != nil {
		return checkEmbed(resp, exp.Embed)
	}
	return nil
}

func checkEmbed(resp *accord.Response, exp *EmbedExpectation) error {
	var opts []embedverify.Option
	if exp.Title != nil {
		opts = append(opts, embedverify.Title(*exp.Title))
	}
	if exp.Description != nil {
		opts = append(opts, embedverify.Description(*exp.Description))
	}

	v, err := embedverify.New(opts...)
	if err != nil {
		return err
	}
	if exp.Fully {
		err = v.MatchesFully(resp.Embed)
	} else {
		err = v.MatchesConfigured(resp.Embed)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExpectationFailed, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
