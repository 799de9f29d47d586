// Package mysql provides a MySQL storage implementation for reports.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/KuangshiAi/keo/evalresult"
	"github.com/KuangshiAi/keo/internal/mysqldb"
)

var _ evalresult.Manager = (*manager)(nil)

// defaultInitTimeout bounds schema initialization at startup.
const defaultInitTimeout = 10 * time.Second

// manager implements evalresult.Manager backed by MySQL.
type manager struct {
	db *sql.DB
}

// Option configures the MySQL report manager.
type Option func(*options)

type options struct {
	skipDBInit bool
}

// WithSkipDBInit skips schema creation at startup.
func WithSkipDBInit(skip bool) Option {
	return func(o *options) {
		o.skipDBInit = skip
	}
}

// New creates a MySQL-backed report manager for the given DSN.
func New(dsn string, opt ...Option) (evalresult.Manager, error) {
	db, err := mysqldb.Open(dsn)
	if err != nil {
		return nil, err
	}
	m, err := NewWithDB(db, opt...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

// NewWithDB creates a MySQL-backed report manager on an existing connection
// pool. The manager takes ownership of the pool.
func NewWithDB(db *sql.DB, opt ...Option) (evalresult.Manager, error) {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	m := &manager{db: db}
	if !opts.skipDBInit {
		ctx, cancel := context.WithTimeout(context.Background(), defaultInitTimeout)
		defer cancel()
		if err := mysqldb.EnsureSchema(ctx, db, mysqldb.TableReports); err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
	}
	return m, nil
}

// Save upserts a report and returns its ID, assigning one when empty.
func (m *manager) Save(ctx context.Context, corpus string, report *evalresult.EvalReport) (string, error) {
	if corpus == "" {
		return "", errors.New("corpus is empty")
	}
	if report == nil {
		return "", errors.New("report is nil")
	}
	reportID := report.ReportID
	if reportID == "" {
		reportID = uuid.NewString()
		report.ReportID = reportID
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	query := `INSERT INTO ` + mysqldb.TableReports + ` (corpus, report_id, gold_set_id, tool, payload)
		 VALUES (?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   gold_set_id = VALUES(gold_set_id),
		   tool = VALUES(tool),
		   payload = VALUES(payload)`
	if _, err := m.db.ExecContext(ctx, query, corpus, reportID, report.GoldSetID, report.Tool, payload); err != nil {
		return "", fmt.Errorf("store report %s.%s: %w", corpus, reportID, err)
	}
	return reportID, nil
}

// Get loads a report from MySQL.
func (m *manager) Get(ctx context.Context, corpus, reportID string) (*evalresult.EvalReport, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	if reportID == "" {
		return nil, errors.New("report id is empty")
	}
	var payload []byte
	query := `SELECT payload FROM ` + mysqldb.TableReports + ` WHERE corpus = ? AND report_id = ?`
	err := m.db.QueryRowContext(ctx, query, corpus, reportID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s.%s not found: %w", corpus, reportID, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("load report %s.%s: %w", corpus, reportID, err)
	}
	report := &evalresult.EvalReport{}
	if err := json.Unmarshal(payload, report); err != nil {
		return nil, fmt.Errorf("unmarshal report %s.%s: %w", corpus, reportID, err)
	}
	return report, nil
}

// List returns all report IDs for the given corpus ordered by creation time.
func (m *manager) List(ctx context.Context, corpus string) ([]string, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	query := `SELECT report_id FROM ` + mysqldb.TableReports + ` WHERE corpus = ? ORDER BY created_at`
	rows, err := m.db.QueryContext(ctx, query, corpus)
	if err != nil {
		return nil, fmt.Errorf("list reports %s: %w", corpus, err)
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan report id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report ids: %w", err)
	}
	return ids, nil
}

// Close closes the underlying connection pool.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
