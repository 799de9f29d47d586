package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/KuangshiAi/keo/annotation"
	annotationlocal "github.com/KuangshiAi/keo/annotation/local"
	annotationmysql "github.com/KuangshiAi/keo/annotation/mysql"
	"github.com/KuangshiAi/keo/evalresult"
	evalresultlocal "github.com/KuangshiAi/keo/evalresult/local"
	evalresultmysql "github.com/KuangshiAi/keo/evalresult/mysql"
	"github.com/KuangshiAi/keo/metric"
	metriclocal "github.com/KuangshiAi/keo/metric/local"
	"github.com/KuangshiAi/keo/prediction"
	predictionlocal "github.com/KuangshiAi/keo/prediction/local"
	predictionmysql "github.com/KuangshiAi/keo/prediction/mysql"
)

const (
	storageLocal = "local"
	storageMySQL = "mysql"
)

// config is the keo.yaml file layout.
type config struct {
	// Corpus is the default corpus name.
	Corpus string `yaml:"corpus"`
	// BaseDir is the root directory for local storage.
	BaseDir string `yaml:"baseDir"`
	// Storage selects the backend: local or mysql.
	Storage string `yaml:"storage"`
	// MySQLDSN is the connection string for the mysql backend.
	MySQLDSN string `yaml:"mysqlDsn"`
	// DefaultThreshold is used when a metric carries no threshold.
	DefaultThreshold float64 `yaml:"defaultThreshold"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() *config {
	return &config{
		Corpus:           "default",
		BaseDir:          ".keo",
		Storage:          storageLocal,
		DefaultThreshold: 0.8,
	}
}

// loadConfig reads the YAML config file, falling back to defaults when the
// file does not exist.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	switch cfg.Storage {
	case storageLocal, storageMySQL:
	default:
		return nil, fmt.Errorf("invalid storage backend %q", cfg.Storage)
	}
	return cfg, nil
}

// managers bundles the storage managers selected by the configuration.
type managers struct {
	goldSets    annotation.Manager
	predictions prediction.Manager
	metrics     metric.Manager
	reports     evalresult.Manager
}

// build creates the managers for the configured backend.
func (c *config) build() (*managers, error) {
	if c.Storage == storageMySQL {
		if c.MySQLDSN == "" {
			return nil, errors.New("mysql storage requires mysqlDsn")
		}
		goldSets, err := annotationmysql.New(c.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("connect gold set storage: %w", err)
		}
		predictions, err := predictionmysql.New(c.MySQLDSN)
		if err != nil {
			goldSets.Close()
			return nil, fmt.Errorf("connect prediction storage: %w", err)
		}
		reports, err := evalresultmysql.New(c.MySQLDSN)
		if err != nil {
			goldSets.Close()
			predictions.Close()
			return nil, fmt.Errorf("connect report storage: %w", err)
		}
		// Metric configuration stays on local files alongside the mysql
		// backend.
		return &managers{
			goldSets:    goldSets,
			predictions: predictions,
			metrics:     metriclocal.New(metric.WithBaseDir(filepath.Join(c.BaseDir, "metrics"))),
			reports:     reports,
		}, nil
	}
	return &managers{
		goldSets:    annotationlocal.New(annotation.WithBaseDir(filepath.Join(c.BaseDir, "goldsets"))),
		predictions: predictionlocal.New(filepath.Join(c.BaseDir, "predictions")),
		metrics:     metriclocal.New(metric.WithBaseDir(filepath.Join(c.BaseDir, "metrics"))),
		reports:     evalresultlocal.New(evalresult.WithBaseDir(filepath.Join(c.BaseDir, "reports"))),
	}, nil
}

// close closes all managers, returning the first error.
func (m *managers) close() error {
	return errors.Join(
		m.goldSets.Close(),
		m.predictions.Close(),
		m.metrics.Close(),
		m.reports.Close(),
	)
}
