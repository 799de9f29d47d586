package evaluation

import (
	"github.com/KuangshiAi/keo/annotation"
	annotationinmemory "github.com/KuangshiAi/keo/annotation/inmemory"
	"github.com/KuangshiAi/keo/evalresult"
	evalresultinmemory "github.com/KuangshiAi/keo/evalresult/inmemory"
	"github.com/KuangshiAi/keo/evaluator/registry"
	"github.com/KuangshiAi/keo/metric"
	metricinmemory "github.com/KuangshiAi/keo/metric/inmemory"
	"github.com/KuangshiAi/keo/prediction"
	predictioninmemory "github.com/KuangshiAi/keo/prediction/inmemory"
)

const (
	// defaultNumRuns is the default number of evaluation runs.
	defaultNumRuns = 1
	// defaultParallelism is the default worker pool size.
	defaultParallelism = 4
)

// options carries the orchestrator configuration.
type options struct {
	goldSetManager    annotation.Manager
	predictionManager prediction.Manager
	metricManager     metric.Manager
	resultManager     evalresult.Manager
	registry          registry.Registry
	numRuns           int
	parallelism       int
}

// newOptions builds options with in-memory defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		goldSetManager:    annotationinmemory.New(),
		predictionManager: predictioninmemory.New(),
		metricManager:     metricinmemory.New(),
		resultManager:     evalresultinmemory.New(),
		registry:          registry.New(),
		numRuns:           defaultNumRuns,
		parallelism:       defaultParallelism,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the corpus evaluator.
type Option func(*options)

// WithGoldSetManager sets the gold set manager.
func WithGoldSetManager(m annotation.Manager) Option {
	return func(o *options) {
		o.goldSetManager = m
	}
}

// WithPredictionManager sets the prediction set manager.
func WithPredictionManager(m prediction.Manager) Option {
	return func(o *options) {
		o.predictionManager = m
	}
}

// WithMetricManager sets the metric manager.
func WithMetricManager(m metric.Manager) Option {
	return func(o *options) {
		o.metricManager = m
	}
}

// WithResultManager sets the report manager.
func WithResultManager(m evalresult.Manager) Option {
	return func(o *options) {
		o.resultManager = m
	}
}

// WithRegistry sets the evaluator registry.
func WithRegistry(r registry.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithNumRuns sets the number of evaluation runs.
func WithNumRuns(n int) Option {
	return func(o *options) {
		o.numRuns = n
	}
}

// WithParallelism sets the worker pool size for evaluation fan-out.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}
