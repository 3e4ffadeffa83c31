// Package runner hosts a pair of demonstration tasks whose behavior is shaped entirely by the
// decorators applied to them.
package runner

import (
	"fmt"
	"io"
	"os"

	"taskrunner/internal/decorator"
	"taskrunner/internal/log"
	"taskrunner/internal/metrics"
	"taskrunner/internal/sentry"
)

// task is the shape of both demonstration tasks: no arguments, no result.
type task = decorator.Method[struct{}, struct{}]

// MethodInfo describes the identity of a decorated task.
type MethodInfo struct {
	Name string
	Doc  string
}

// TaskRunnerOpts formalizes the collaborators of a TaskRunner. Nil fields fall back to standard
// output, an error-level console logger, and noop metrics and error reporting.
type TaskRunnerOpts struct {
	Output   io.Writer
	Logger   log.Logger
	Hook     metrics.MethodHook
	Reporter sentry.Reporter
}

// TaskRunner exposes a fast task, decorated with timing, and a slow task, decorated with a fixed
// delay.
type TaskRunner struct {
	out      io.Writer
	logger   log.Logger
	fastTask task
	slowTask task
}

// NewTaskRunner creates a TaskRunner and decorates its tasks.
func NewTaskRunner(opts TaskRunnerOpts) *TaskRunner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = log.NewConsoleLogger(log.Error)
	}
	if opts.Hook == nil {
		opts.Hook = metrics.NewNoopMethodHook()
	}
	if opts.Reporter == nil {
		opts.Reporter = sentry.NewNoopReporter()
	}

	r := &TaskRunner{
		out:    opts.Output,
		logger: opts.Logger,
	}

	r.fastTask = decorator.Report(
		decorator.Timeit(
			decorator.NewMethod(
				"fast_task",
				"A fast task that completes instantly for demonstration.",
				r.fast,
			),
			decorator.TimingOpts{Output: opts.Output, Hook: opts.Hook},
		),
		opts.Reporter,
		opts.Hook,
	)

	r.slowTask = decorator.Report(
		decorator.SlowDown(
			decorator.NewMethod(
				"slow_task",
				"A slow task that requires deliberate slowing down.",
				r.slow,
			),
			decorator.DelayOpts{Hook: opts.Hook},
		),
		opts.Reporter,
		opts.Hook,
	)

	return r
}

// FastTask runs the fast task and reports how long it took.
func (r *TaskRunner) FastTask() error {
	return r.invoke(r.fastTask)
}

// SlowTask runs the slow task after the fixed delay.
func (r *TaskRunner) SlowTask() error {
	return r.invoke(r.slowTask)
}

// Methods lists the identities of the decorated tasks.
func (r *TaskRunner) Methods() []MethodInfo {
	return []MethodInfo{
		{Name: r.fastTask.Name, Doc: r.fastTask.Doc},
		{Name: r.slowTask.Name, Doc: r.slowTask.Doc},
	}
}

func (r *TaskRunner) invoke(t task) error {
	r.logger.Debug("runner: invoking task: name=%s", t.Name)

	if _, err := t.Invoke(struct{}{}); err != nil {
		r.logger.Error("runner: task failed: name=%s err=%v", t.Name, err)
		return err
	}

	r.logger.Debug("runner: task completed: name=%s", t.Name)
	return nil
}

func (r *TaskRunner) fast(struct{}) (struct{}, error) {
	_, err := fmt.Fprintln(r.out, "Fast task is executed.")
	return struct{}{}, err
}

func (r *TaskRunner) slow(struct{}) (struct{}, error) {
	_, err := fmt.Fprintln(r.out, "Slow task is executed.")
	return struct{}{}, err
}
