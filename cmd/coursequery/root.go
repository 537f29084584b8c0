package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kbukum/coursequery/catalog"
	"github.com/kbukum/coursequery/config"
	"github.com/kbukum/coursequery/eval"
	"github.com/kbukum/coursequery/logger"
	"github.com/kbukum/coursequery/observability"
	"github.com/kbukum/coursequery/version"
)

// app is the state shared by the subcommands once the root command has
// loaded configuration.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configFile string
	envFile    string
	dataset    string
	format     string
	logLevel   string
	stats      bool

	cfg      *Config
	log      *logger.Logger
	cat      *catalog.Catalog
	ev       *eval.Evaluator
	shutdown []func(context.Context) error
}

func newRootCommand(stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{stdout: stdout, stderr: stderr}
	rc := &cobra.Command{
		Use:   "coursequery",
		Short: "Run named queries against a course catalog.",
		Long: `coursequery evaluates lazy, composable queries over a catalog of
authors, courses and tags.

The catalog is the built-in sample unless --dataset names a YAML file.
Configuration is read from config.yml, .env and the environment; flags
override all of them.

` + version.Get().String() + "\n",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rc.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "config file to read from")
	flags.StringVar(&a.envFile, "env-file", "", ".env file to read from")
	flags.StringVarP(&a.dataset, "dataset", "d", "", "YAML dataset to load instead of the sample catalog")
	flags.StringVarP(&a.format, "format", "o", "", "output format: table, plain or yaml")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error or disabled")
	flags.BoolVar(&a.stats, "stats", false, "print evaluation stats after each result")

	rc.AddCommand(newListCommand(a))
	rc.AddCommand(newRunCommand(a))
	rc.AddCommand(newStatsCommand(a))
	rc.AddCommand(newDatasetCommand(a))
	rc.AddCommand(newVersionCommand(a))

	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc, a
}

// execute runs rc and then flushes telemetry. cobra skips post-run hooks
// when a command fails, so the flush cannot live in PersistentPostRunE.
func (a *app) execute(ctx context.Context, rc *cobra.Command) error {
	defer a.teardown(ctx)
	return rc.ExecuteContext(ctx)
}

// setup loads configuration, applies flag overrides, then builds the logger,
// telemetry, catalog and evaluator.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	cfg, err := loadConfig(opts...)
	if err != nil {
		return err
	}
	a.applyFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.NewWithWriter(&cfg.Logging, cfg.Name, a.logWriter())
	logger.SetGlobalLogger(a.log)
	logger.RegisterDefaults(a.log, "config", "catalog", "eval", "observability")
	a.log.Debug("logging configured", logger.Fields("components", logger.Components()))

	if err := a.initTelemetry(cmd.Context()); err != nil {
		return err
	}

	if cmd.Annotations[annotationNeedsCatalog] == "true" {
		if err := a.loadCatalog(); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) applyFlags(flags *pflag.FlagSet, cfg *Config) {
	if flags.Changed("dataset") {
		cfg.Dataset.Path = a.dataset
	}
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("stats") {
		cfg.Output.Stats = a.stats
	}
}

func (a *app) logWriter() io.Writer {
	if a.cfg.Logging.Output == "stdout" {
		return a.stdout
	}
	return a.stderr
}

func (a *app) initTelemetry(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := a.cfg
	opts := []eval.Option{eval.WithLogger(logger.Get("eval"))}

	if cfg.Tracing.Enabled {
		tc := observability.DefaultTracerConfig(cfg.Name)
		tc.ServiceVersion = version.Get().Short()
		tc.Environment = cfg.Environment
		tc.Endpoint = cfg.Tracing.Endpoint
		tc.Insecure = cfg.Tracing.Insecure
		tc.SampleRate = cfg.Tracing.SampleRate
		tp, err := observability.InitTracer(ctx, &tc)
		if err != nil {
			return err
		}
		a.shutdown = append(a.shutdown, tp.Shutdown)
		opts = append(opts, eval.WithTracer(observability.DefaultTracer()))
	}

	if cfg.Metrics.Enabled {
		mc := observability.DefaultMeterConfig(cfg.Name)
		mc.ServiceVersion = version.Get().Short()
		mc.Environment = cfg.Environment
		mc.Endpoint = cfg.Metrics.Endpoint
		mc.Insecure = cfg.Metrics.Insecure
		mc.Interval = cfg.Metrics.Interval
		mp, err := observability.InitMeter(ctx, &mc)
		if err != nil {
			return err
		}
		a.shutdown = append(a.shutdown, mp.Shutdown)
		metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return err
		}
		opts = append(opts, eval.WithMetrics(metrics))
	}

	a.ev = eval.New(opts...)
	return nil
}

func (a *app) loadCatalog() error {
	opts := []catalog.Option{catalog.WithLogger(logger.Get("catalog"))}
	if a.cfg.Dataset.Path == "" {
		a.cat = catalog.Sample()
		return nil
	}
	cat, err := catalog.LoadFile(a.cfg.Dataset.Path, opts...)
	if err != nil {
		return err
	}
	a.cat = cat
	return nil
}

// teardown shuts the telemetry providers down, exporting what they still
// buffer. Shutdown errors are logged, not returned.
func (a *app) teardown(ctx context.Context) {
	for _, fn := range a.shutdown {
		if err := fn(ctx); err != nil {
			a.log.Warn("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}
	a.shutdown = nil
}

// annotationNeedsCatalog marks commands that read the catalog.
const annotationNeedsCatalog = "needs-catalog"

var needsCatalog = map[string]string{annotationNeedsCatalog: "true"}
