package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"taskrunner/internal/log"
	"taskrunner/internal/meta"
	"taskrunner/internal/metrics"
	"taskrunner/internal/runner"
	"taskrunner/internal/sentry"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the CLI with the given arguments, writing task output and logs to stdout, and
// returns the process exit code.
func run(args []string, stdout io.Writer) int {
	flags := flag.NewFlagSet("taskrunner", flag.ContinueOnError)
	flags.SetOutput(stdout)

	configPath := flags.String(
		"config",
		os.Getenv("TASKRUNNER_CONFIG"),
		"optional path to the configuration file on disk",
	)
	version := flags.Bool(
		"version",
		false,
		"print the compiled taskrunner version SHA",
	)
	verbosity := flags.String(
		"verbosity",
		"error",
		"desired logging verbosity: one of error, warn, info, debug",
	)
	taskName := flags.String(
		"task",
		"all",
		"task to run: one of fast, slow, all",
	)
	repeat := flags.Int(
		"repeat",
		0,
		"number of times to run each task; overrides the config file when positive",
	)
	list := flags.Bool(
		"list",
		false,
		"list the available tasks and exit",
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// Report the compiled version and exit
	if *version {
		fmt.Fprintf(stdout, "taskrunner/%s\n", meta.VersionSHA)
		return 0
	}

	// Logging configuration; default to log.Error verbosity
	level, _ := log.ParseLevel(*verbosity)
	logger := log.NewWriterLogger(level, stdout)
	logger.Debug("main: initialized logger: level=%v", level)

	// Parse application configuration, if supplied
	config := meta.DefaultConfig()
	if *configPath != "" {
		logger.Debug("main: reading and parsing config: path=%s", *configPath)

		var err error
		if config, err = meta.ParseConfig(*configPath); err != nil {
			logger.Error("main: %v", err)
			return 1
		}
	}

	// Configure error reporting
	reporter := sentry.NewNoopReporter()
	if config.Application != nil && config.Application.SentryDSN != "" {
		var err error
		if reporter, err = sentry.NewRavenReporter(config.Application.SentryDSN, meta.VersionSHA); err != nil {
			logger.Error("main: error configuring sentry: err=%v", err)
			return 1
		}
	}

	// Configure metrics reporting
	hook := metrics.NewNoopMethodHook()
	if config.Metrics != nil && config.Metrics.Statsd != nil {
		logger.Info(
			"main: configuring statsd metrics reporting: addr=%s sample_rate=%f",
			config.Metrics.Statsd.Address,
			config.Metrics.Statsd.SampleRate,
		)

		var err error
		if hook, err = metrics.NewAsyncStatsdMethodHook(
			config.Metrics.Statsd.Address,
			config.Metrics.Statsd.SampleRate,
		); err != nil {
			logger.Error("main: error configuring statsd: err=%v", err)
			return 1
		}
	} else {
		logger.Debug("main: no metrics output engine specified; disabling metrics")
	}

	// Pending metrics are flushed before any return below
	defer func() {
		if err := hook.Close(); err != nil {
			logger.Warn("main: error flushing metrics: err=%v", err)
		}
	}()

	r := runner.NewTaskRunner(runner.TaskRunnerOpts{
		Output:   stdout,
		Logger:   logger,
		Hook:     hook,
		Reporter: reporter,
	})

	if *list {
		for _, method := range r.Methods() {
			fmt.Fprintf(stdout, "%s\t%s\n", method.Name, method.Doc)
		}
		return 0
	}

	var tasks []func() error
	switch *taskName {
	case "fast":
		tasks = []func() error{r.FastTask}
	case "slow":
		tasks = []func() error{r.SlowTask}
	case "all":
		tasks = []func() error{r.FastTask, r.SlowTask}
	default:
		logger.Error("main: unknown task: task=%s", *taskName)
		return 2
	}

	iterations := config.Runner.Repeat
	if *repeat > 0 {
		iterations = *repeat
	}

	logger.Info("main: running tasks: task=%s repeat=%d", *taskName, iterations)

	for i := 0; i < iterations; i++ {
		for _, task := range tasks {
			if err := task(); err != nil {
				return 1
			}
		}
	}

	return 0
}
