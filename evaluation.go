// Package evaluation orchestrates entity-linking evaluation runs over a
// corpus and aggregates their results into stored reports.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/epochtime"
	"github.com/KuangshiAi/keo/evalresult"
	"github.com/KuangshiAi/keo/evaluator"
	"github.com/KuangshiAi/keo/evaluator/registry"
	istatus "github.com/KuangshiAi/keo/internal/status"
	"github.com/KuangshiAi/keo/metric"
	"github.com/KuangshiAi/keo/metric/policy"
	"github.com/KuangshiAi/keo/prediction"
	"github.com/KuangshiAi/keo/status"
)

// CorpusEvaluator evaluates prediction sets against gold sets of a corpus.
type CorpusEvaluator interface {
	// Evaluate runs all configured metrics for the gold set against the
	// prediction set, across the configured number of runs.
	Evaluate(ctx context.Context, goldSetID, predictionSetID string) (*EvaluationResult, error)
	// Close closes the evaluator and releases owned resources.
	Close() error
}

// EvaluationResult contains the aggregated outcome of an evaluation.
type EvaluationResult struct {
	// Corpus identifies the document corpus.
	Corpus string `json:"corpus"`
	// GoldSetID identifies the gold set evaluated against.
	GoldSetID string `json:"goldSetId"`
	// PredictionSetID identifies the evaluated prediction set.
	PredictionSetID string `json:"predictionSetId"`
	// Tool names the NLP tool that produced the predictions.
	Tool string `json:"tool,omitempty"`
	// OverallStatus summarizes the aggregated status across runs.
	OverallStatus status.EvalStatus `json:"overallStatus"`
	// ExecutionTime records the total latency of the evaluation.
	ExecutionTime time.Duration `json:"executionTime"`
	// Report is the stored evaluation report.
	Report *evalresult.EvalReport `json:"report"`
	// Summary aggregates the report across runs.
	Summary *evalresult.ReportSummary `json:"summary"`
}

// New creates a CorpusEvaluator for the given corpus.
func New(corpus string, opt ...Option) (CorpusEvaluator, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	opts := newOptions(opt...)
	if opts.numRuns <= 0 {
		return nil, errors.New("num runs must be greater than 0")
	}
	if opts.parallelism <= 0 {
		return nil, errors.New("parallelism must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(opts.parallelism, runEvalTask)
	if err != nil {
		return nil, fmt.Errorf("create evaluation pool: %w", err)
	}
	return &corpusEvaluator{
		corpus:            corpus,
		goldSetManager:    opts.goldSetManager,
		predictionManager: opts.predictionManager,
		metricManager:     opts.metricManager,
		resultManager:     opts.resultManager,
		registry:          opts.registry,
		numRuns:           opts.numRuns,
		pool:              pool,
	}, nil
}

// corpusEvaluator is the default implementation of CorpusEvaluator.
type corpusEvaluator struct {
	corpus            string
	goldSetManager    annotation.Manager
	predictionManager prediction.Manager
	metricManager     metric.Manager
	resultManager     evalresult.Manager
	registry          registry.Registry
	numRuns           int
	pool              *ants.PoolWithFunc
}

// evalTask evaluates one metric in one run.
type evalTask struct {
	ctx        context.Context
	evaluator  evaluator.Evaluator
	goldSet    *annotation.GoldSet
	predSet    *prediction.Set
	evalMetric *metric.EvalMetric
	result     *evalresult.MetricResult
	err        error
	wg         *sync.WaitGroup
}

// runEvalTask is the pool worker body.
func runEvalTask(args any) {
	task, ok := args.(*evalTask)
	if !ok {
		panic("evaluation pool args type error")
	}
	defer task.wg.Done()
	out, err := task.evaluator.Evaluate(task.ctx, task.goldSet, task.predSet, task.evalMetric)
	if err != nil {
		task.err = fmt.Errorf("evaluate metric %s: %w", task.evalMetric.MetricName, err)
		return
	}
	mr := &evalresult.MetricResult{
		MetricName: task.evalMetric.MetricName,
		Score:      out.OverallScore,
		EvalStatus: out.OverallStatus,
		Threshold:  task.evalMetric.Threshold,
		Criterion:  task.evalMetric.Criterion,
		Answers:    out.Answers,
	}
	if out.Link != nil {
		mr.Tally = &out.Link.Tally
		mr.Links = out.Link.Links
	}
	task.result = mr
}

// Evaluate runs all configured metrics across the configured number of runs
// and stores the resulting report.
func (c *corpusEvaluator) Evaluate(ctx context.Context, goldSetID, predictionSetID string) (*EvaluationResult, error) {
	if goldSetID == "" {
		return nil, errors.New("gold set id is empty")
	}
	if predictionSetID == "" {
		return nil, errors.New("prediction set id is empty")
	}
	start := time.Now()

	goldSet, err := c.goldSetManager.Get(ctx, c.corpus, goldSetID)
	if err != nil {
		return nil, fmt.Errorf("get gold set %s.%s: %w", c.corpus, goldSetID, err)
	}
	predSet, err := c.predictionManager.Get(ctx, c.corpus, predictionSetID)
	if err != nil {
		return nil, fmt.Errorf("get prediction set %s.%s: %w", c.corpus, predictionSetID, err)
	}
	metrics, err := c.loadMetrics(ctx, goldSetID)
	if err != nil {
		return nil, err
	}

	tasks := make([][]*evalTask, c.numRuns)
	var wg sync.WaitGroup
	for run := 0; run < c.numRuns; run++ {
		tasks[run] = make([]*evalTask, len(metrics))
		for i, em := range metrics {
			e, err := c.registry.Get(em.MetricName)
			if err != nil {
				return nil, fmt.Errorf("resolve evaluator for metric %s: %w", em.MetricName, err)
			}
			task := &evalTask{
				ctx:        ctx,
				evaluator:  e,
				goldSet:    goldSet,
				predSet:    predSet,
				evalMetric: em,
				wg:         &wg,
			}
			tasks[run][i] = task
			wg.Add(1)
			if err := c.pool.Invoke(task); err != nil {
				wg.Done()
				return nil, fmt.Errorf("submit evaluation task: %w", err)
			}
		}
	}
	wg.Wait()

	report := &evalresult.EvalReport{
		Corpus:            c.corpus,
		GoldSetID:         goldSetID,
		PredictionSetID:   predictionSetID,
		Tool:              predSet.Tool,
		CreationTimestamp: epochtime.Now(),
	}
	for run := 0; run < c.numRuns; run++ {
		runResult := &evalresult.RunResult{RunID: run}
		statuses := make([]status.EvalStatus, 0, len(metrics))
		var runErrs []error
		for _, task := range tasks[run] {
			if task.err != nil {
				runErrs = append(runErrs, task.err)
				statuses = append(statuses, status.EvalStatusFailed)
				continue
			}
			runResult.MetricResults = append(runResult.MetricResults, task.result)
			statuses = append(statuses, task.result.EvalStatus)
		}
		if err := errors.Join(runErrs...); err != nil {
			runResult.ErrorMessage = err.Error()
		}
		overall, err := istatus.Summarize(statuses)
		if err != nil {
			return nil, fmt.Errorf("summarize run %d: %w", run, err)
		}
		runResult.OverallStatus = overall
		report.Runs = append(report.Runs, runResult)
	}

	reportID, err := c.resultManager.Save(ctx, c.corpus, report)
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	report.ReportID = reportID
	summary, err := evalresult.Summarize(report)
	if err != nil {
		return nil, fmt.Errorf("summarize report: %w", err)
	}
	return &EvaluationResult{
		Corpus:          c.corpus,
		GoldSetID:       goldSetID,
		PredictionSetID: predictionSetID,
		Tool:            predSet.Tool,
		OverallStatus:   summary.OverallStatus,
		ExecutionTime:   time.Since(start),
		Report:          report,
		Summary:         summary,
	}, nil
}

// loadMetrics returns the metrics configured for the gold set, falling back
// to entity-linking F1 with the default policy when none are configured.
func (c *corpusEvaluator) loadMetrics(ctx context.Context, goldSetID string) ([]*metric.EvalMetric, error) {
	names, err := c.metricManager.List(ctx, c.corpus, goldSetID)
	if err != nil {
		return nil, fmt.Errorf("list metrics %s.%s: %w", c.corpus, goldSetID, err)
	}
	if len(names) == 0 {
		return []*metric.EvalMetric{{
			MetricName: metric.MetricEntityLinkingF1,
			Criterion:  &policy.Criterion{Link: policy.Default()},
		}}, nil
	}
	metrics := make([]*metric.EvalMetric, 0, len(names))
	for _, name := range names {
		em, err := c.metricManager.Get(ctx, c.corpus, goldSetID, name)
		if err != nil {
			return nil, fmt.Errorf("get metric %s: %w", name, err)
		}
		metrics = append(metrics, em)
	}
	return metrics, nil
}

// Close releases the worker pool.
func (c *corpusEvaluator) Close() error {
	if c.pool != nil {
		c.pool.Release()
	}
	return nil
}
