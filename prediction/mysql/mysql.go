// Package mysql provides a MySQL storage implementation for prediction sets.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/KuangshiAi/keo/internal/mysqldb"
	"github.com/KuangshiAi/keo/prediction"
)

var _ prediction.Manager = (*manager)(nil)

// defaultInitTimeout bounds schema initialization at startup.
const defaultInitTimeout = 10 * time.Second

// manager implements prediction.Manager backed by MySQL.
type manager struct {
	db *sql.DB
}

// Option configures the MySQL prediction set manager.
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

// New creates a MySQL-backed prediction set manager for the given DSN.
func New(dsn string, opt ...Option) (prediction.Manager, error) {
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

// NewWithDB creates a MySQL-backed prediction set manager on an existing
// connection pool. The manager takes ownership of the pool.
func NewWithDB(db *sql.DB, opt ...Option) (prediction.Manager, error) {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	m := &manager{db: db}
	if !opts.skipDBInit {
		ctx, cancel := context.WithTimeout(context.Background(), defaultInitTimeout)
		defer cancel()
		if err := mysqldb.EnsureSchema(ctx, db, mysqldb.TablePredictionSets); err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
	}
	return m, nil
}

// Get loads a prediction set from MySQL.
func (m *manager) Get(ctx context.Context, corpus, predictionSetID string) (*prediction.Set, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	if predictionSetID == "" {
		return nil, errors.New("prediction set id is empty")
	}
	var payload []byte
	query := `SELECT payload FROM ` + mysqldb.TablePredictionSets + ` WHERE corpus = ? AND prediction_set_id = ?`
	err := m.db.QueryRowContext(ctx, query, corpus, predictionSetID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prediction set %s.%s not found: %w", corpus, predictionSetID, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("load prediction set %s.%s: %w", corpus, predictionSetID, err)
	}
	set := &prediction.Set{}
	if err := json.Unmarshal(payload, set); err != nil {
		return nil, fmt.Errorf("unmarshal prediction set %s.%s: %w", corpus, predictionSetID, err)
	}
	return set, nil
}

// Put upserts a prediction set.
func (m *manager) Put(ctx context.Context, corpus string, set *prediction.Set) error {
	if corpus == "" {
		return errors.New("corpus is empty")
	}
	if set == nil {
		return errors.New("prediction set is nil")
	}
	if set.PredictionSetID == "" {
		return errors.New("prediction set id is empty")
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal prediction set: %w", err)
	}
	query := `INSERT INTO ` + mysqldb.TablePredictionSets + ` (corpus, prediction_set_id, tool, payload)
		 VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   tool = VALUES(tool),
		   payload = VALUES(payload)`
	if _, err := m.db.ExecContext(ctx, query, corpus, set.PredictionSetID, set.Tool, payload); err != nil {
		return fmt.Errorf("store prediction set %s.%s: %w", corpus, set.PredictionSetID, err)
	}
	return nil
}

// List returns all prediction set IDs for the given corpus.
func (m *manager) List(ctx context.Context, corpus string) ([]string, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	query := `SELECT prediction_set_id FROM ` + mysqldb.TablePredictionSets + ` WHERE corpus = ? ORDER BY prediction_set_id`
	rows, err := m.db.QueryContext(ctx, query, corpus)
	if err != nil {
		return nil, fmt.Errorf("list prediction sets %s: %w", corpus, err)
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan prediction set id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prediction set ids: %w", err)
	}
	return ids, nil
}

// Delete removes a prediction set.
func (m *manager) Delete(ctx context.Context, corpus, predictionSetID string) error {
	if corpus == "" {
		return errors.New("corpus is empty")
	}
	if predictionSetID == "" {
		return errors.New("prediction set id is empty")
	}
	query := `DELETE FROM ` + mysqldb.TablePredictionSets + ` WHERE corpus = ? AND prediction_set_id = ?`
	res, err := m.db.ExecContext(ctx, query, corpus, predictionSetID)
	if err != nil {
		return fmt.Errorf("delete prediction set %s.%s: %w", corpus, predictionSetID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete prediction set %s.%s: %w", corpus, predictionSetID, err)
	}
	if affected == 0 {
		return fmt.Errorf("prediction set %s.%s not found: %w", corpus, predictionSetID, os.ErrNotExist)
	}
	return nil
}

// Close closes the underlying connection pool.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
