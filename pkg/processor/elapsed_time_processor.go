// pkg/processor/elapsed_time.go
package processor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redpanda-data/benthos/v4/public/service"

	"github.com/twinfer/benthos-elapsed-timer/pkg/config"
	"github.com/twinfer/benthos-elapsed-timer/pkg/metrics"
	"github.com/twinfer/benthos-elapsed-timer/pkg/timer"
)

const defaultStage = "elapsed_time"

func configSpec() *service.ConfigSpec {
	return service.NewConfigSpec().
		Categories("Utility").
		Summary("Measures how long a list of child processors takes to process each batch.").
		Description("The elapsed_time processor starts a timer before handing a batch to its child processors and stops it once they return, on every exit path. The elapsed milliseconds are written to message metadata, recorded as metrics and optionally logged.").
		Field(service.NewProcessorListField("processors").
			Description("Child processors whose execution is measured.").
			Default([]any{})).
		Field(service.NewStringField("clock").
			Description("Clock backend: auto picks the native backend of the host, ticks uses a high resolution tick counter, calendar uses time of day.").
			Default("auto").
			LintRule("root in ['auto', 'ticks', 'calendar']")).
		Field(service.NewStringField("metadata_key").
			Description("Metadata key the elapsed milliseconds are written to. Empty disables metadata.").
			Default("elapsed_ms").
			Example("processing_ms")).
		Field(service.NewStringField("metric_name").
			Description("Name of a Prometheus histogram to observe elapsed seconds into, labelled by stage. Empty disables the histogram.").
			Default("").
			Example("elapsed_time_seconds")).
		Field(service.NewStringField("metric_address").
			Description("Listen address serving the metric_name histogram at /metrics in the Prometheus text format. Processors sharing an address share the endpoint. Empty keeps the histogram in the process default registry only.").
			Default("").
			Example("0.0.0.0:9464").
			Advanced()).
		Field(service.NewStringMapField("labels").
			Description("Extra labels attached to the elapsed time metrics.").
			Default(map[string]any{}).
			Advanced()).
		Field(service.NewObjectField("log",
			service.NewBoolField("enabled").
				Description("Log every measurement.").
				Default(false),
			service.NewStringField("level").
				Description("Level of the per-measurement log line.").
				Default("debug").
				LintRule("root in ['trace', 'debug', 'info', 'warn']"),
		).Description("Per-measurement logging.").Advanced()).
		Field(service.NewObjectField("summary",
			service.NewBoolField("enabled").
				Description("Periodically log count, mean, min and max of the measurements.").
				Default(false),
			service.NewDurationField("interval").
				Description("Summary reporting interval.").
				Default("1m"),
		).Description("Periodic summary of measurements.").Advanced())
}

func init() {
	err := service.RegisterBatchProcessor("elapsed_time", configSpec(), func(conf *service.ParsedConfig, mgr *service.Resources) (service.BatchProcessor, error) {
		return newElapsedTimeProcessor(conf, mgr)
	})
	if err != nil {
		panic(err)
	}
}

// Processor measures the execution of its child processors
type Processor struct {
	children  []*service.OwnedProcessor
	config    *config.TimerConfig
	stage     string
	clock     timer.Clock
	logger    *service.Logger
	metrics   *metrics.Manager
	collector *metrics.Collector
	callback  timer.Callback
	registry  *metrics.Registry
	exporter  *metrics.Exporter

	// execute runs the child processors, failures of individual messages are
	// marked on the messages rather than returned
	execute func(context.Context, service.MessageBatch) ([]service.MessageBatch, error)
}

func newElapsedTimeProcessor(conf *service.ParsedConfig, mgr *service.Resources) (*Processor, error) {
	timerConf, err := parseTimerConfig(conf)
	if err != nil {
		return nil, err
	}

	timerConf.ApplyDefaults()
	if err := timerConf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid elapsed_time config: %w", err)
	}

	children, err := conf.FieldProcessorList("processors")
	if err != nil {
		return nil, fmt.Errorf("failed to parse processors: %w", err)
	}

	return newProcessor(timerConf, children, mgr, prometheus.DefaultRegisterer, prometheus.DefaultGatherer, metrics.GetGlobalRegistry())
}

func newProcessor(
	timerConf *config.TimerConfig,
	children []*service.OwnedProcessor,
	mgr *service.Resources,
	promReg prometheus.Registerer,
	gatherer prometheus.Gatherer,
	registry *metrics.Registry,
) (*Processor, error) {
	clock, err := timer.ClockByName(timerConf.Clock)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve clock: %w", err)
	}

	stage := mgr.Label()
	if stage == "" {
		stage = defaultStage
	}

	labels := metrics.NewLabels(defaultStage).WithStage(stage).WithClock(timerConf.Clock)
	for k, v := range timerConf.Labels {
		labels.WithExtra(k, v)
	}

	p := &Processor{
		children: children,
		config:   timerConf,
		stage:    stage,
		clock:    clock,
		logger:   mgr.Logger(),
		metrics:  metrics.NewManager(mgr, labels),
		registry: registry,
	}
	p.execute = p.executeChildren

	callbacks := []timer.Callback{p.metrics.Recorder()}

	if timerConf.MetricName != "" {
		vec, err := metrics.RegisterElapsedHistogramVec(promReg, timerConf.MetricName, "stage")
		if err != nil {
			return nil, err
		}
		callbacks = append(callbacks, metrics.HistogramCallback(vec.WithLabelValues(stage)))

		if timerConf.MetricAddress != "" {
			if p.exporter, err = metrics.AcquireExporter(timerConf.MetricAddress, gatherer, p.logger); err != nil {
				return nil, err
			}
		}
	}

	if timerConf.Log.Enabled {
		callbacks = append(callbacks, p.logMeasurement)
	}

	if timerConf.Summary.Enabled {
		p.collector = metrics.NewCollector(stage, p.logger, timerConf.Summary.Interval)
		if err := registry.Register(p.collector); err != nil {
			p.logger.Warnf("Elapsed time summary for stage %s not registered: %v", stage, err)
		}
		go p.collector.Start(context.Background())
		callbacks = append(callbacks, p.collector.Callback())
	}

	p.callback = metrics.Fanout(callbacks...)
	return p, nil
}

// ProcessBatch runs the child processors inside a scoped measurement
func (p *Processor) ProcessBatch(ctx context.Context, batch service.MessageBatch) ([]service.MessageBatch, error) {
	var elapsed float64
	results, err := p.measure(ctx, batch, func(ms float64) { elapsed = ms })
	if err != nil {
		return nil, fmt.Errorf("child processors of stage %s failed after %.3fms: %w", p.stage, elapsed, err)
	}

	if p.config.MetadataKey != "" {
		value := strconv.FormatFloat(elapsed, 'f', 3, 64)
		for _, b := range results {
			for _, msg := range b {
				msg.MetaSet(p.config.MetadataKey, value)
			}
		}
	}

	return results, nil
}

func (p *Processor) measure(ctx context.Context, batch service.MessageBatch, capture timer.Callback) ([]service.MessageBatch, error) {
	defer timer.BeginWith(timer.NewWithClock(p.clock), metrics.Fanout(capture, p.callback), p.metrics.ScopedOptions()...).End()
	return p.execute(ctx, batch)
}

func (p *Processor) executeChildren(ctx context.Context, batch service.MessageBatch) ([]service.MessageBatch, error) {
	return service.ExecuteProcessors(ctx, p.children, batch)
}

func (p *Processor) logMeasurement(ms float64) {
	format := "Stage %s took %.3fms"
	switch p.config.Log.Level {
	case "trace":
		p.logger.Tracef(format, p.stage, ms)
	case "info":
		p.logger.Infof(format, p.stage, ms)
	case "warn":
		p.logger.Warnf(format, p.stage, ms)
	default:
		p.logger.Debugf(format, p.stage, ms)
	}
}

// Close shuts down the child processors and the summary collector
func (p *Processor) Close(ctx context.Context) error {
	if p.collector != nil {
		p.collector.Stop()
		if existing, ok := p.registry.Get(p.collector.Name()); ok && existing == p.collector {
			p.registry.Unregister(p.collector.Name())
		}
	}

	var firstErr error
	if p.exporter != nil {
		if err := p.exporter.Release(ctx); err != nil {
			p.logger.Errorf("Failed to release metrics exporter of stage %s: %v", p.stage, err)
			firstErr = err
		}
		p.exporter = nil
	}

	for i, child := range p.children {
		if err := child.Close(ctx); err != nil {
			p.logger.Errorf("Failed to close child processor %d of stage %s: %v", i, p.stage, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to close child processor %d: %w", i, err)
			}
		}
	}
	return firstErr
}

func parseTimerConfig(conf *service.ParsedConfig) (*config.TimerConfig, error) {
	clock, err := conf.FieldString("clock")
	if err != nil {
		return nil, fmt.Errorf("failed to parse clock: %w", err)
	}

	metadataKey, err := conf.FieldString("metadata_key")
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata_key: %w", err)
	}

	metricName, err := conf.FieldString("metric_name")
	if err != nil {
		return nil, fmt.Errorf("failed to parse metric_name: %w", err)
	}

	metricAddress, err := conf.FieldString("metric_address")
	if err != nil {
		return nil, fmt.Errorf("failed to parse metric_address: %w", err)
	}

	labels, err := conf.FieldStringMap("labels")
	if err != nil {
		return nil, fmt.Errorf("failed to parse labels: %w", err)
	}

	logEnabled, err := conf.FieldBool("log", "enabled")
	if err != nil {
		return nil, fmt.Errorf("failed to parse log.enabled: %w", err)
	}

	logLevel, err := conf.FieldString("log", "level")
	if err != nil {
		return nil, fmt.Errorf("failed to parse log.level: %w", err)
	}

	summaryEnabled, err := conf.FieldBool("summary", "enabled")
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary.enabled: %w", err)
	}

	summaryInterval, err := conf.FieldDuration("summary", "interval")
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary.interval: %w", err)
	}

	return &config.TimerConfig{
		Clock:         clock,
		MetadataKey:   metadataKey,
		MetricName:    metricName,
		MetricAddress: metricAddress,
		Labels:        labels,
		Log: config.LogConfig{
			Enabled: logEnabled,
			Level:   logLevel,
		},
		Summary: config.SummaryConfig{
			Enabled:  summaryEnabled,
			Interval: summaryInterval,
		},
	}, nil
}
