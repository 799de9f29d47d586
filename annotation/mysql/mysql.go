// Package mysql provides a MySQL storage implementation for gold sets.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/epochtime"
	"github.com/KuangshiAi/keo/internal/mysqldb"
)

var _ annotation.Manager = (*manager)(nil)

// defaultInitTimeout bounds schema initialization at startup.
const defaultInitTimeout = 10 * time.Second

// manager implements annotation.Manager backed by MySQL.
type manager struct {
	db *sql.DB
}

// Option configures the MySQL gold set manager.
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

// New creates a MySQL-backed gold set manager for the given DSN.
func New(dsn string, opt ...Option) (annotation.Manager, error) {
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

// NewWithDB creates a MySQL-backed gold set manager on an existing connection
// pool. The manager takes ownership of the pool.
func NewWithDB(db *sql.DB, opt ...Option) (annotation.Manager, error) {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	m := &manager{db: db}
	if !opts.skipDBInit {
		ctx, cancel := context.WithTimeout(context.Background(), defaultInitTimeout)
		defer cancel()
		if err := mysqldb.EnsureSchema(ctx, db, mysqldb.TableGoldSets); err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
	}
	return m, nil
}

// Get gets a GoldSet identified by goldSetID.
func (m *manager) Get(ctx context.Context, corpus, goldSetID string) (*annotation.GoldSet, error) {
	return m.load(ctx, corpus, goldSetID)
}

// Create creates an empty GoldSet. It fails when the gold set already exists.
func (m *manager) Create(ctx context.Context, corpus, goldSetID string) (*annotation.GoldSet, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	if goldSetID == "" {
		return nil, errors.New("gold set id is empty")
	}
	goldSet := &annotation.GoldSet{
		GoldSetID:         goldSetID,
		Name:              goldSetID,
		Annotations:       []*annotation.Annotation{},
		CreationTimestamp: epochtime.Now(),
	}
	payload, err := json.Marshal(goldSet)
	if err != nil {
		return nil, fmt.Errorf("marshal gold set: %w", err)
	}
	query := `INSERT INTO ` + mysqldb.TableGoldSets + ` (corpus, gold_set_id, payload) VALUES (?, ?, ?)`
	if _, err := m.db.ExecContext(ctx, query, corpus, goldSetID, payload); err != nil {
		return nil, fmt.Errorf("create gold set %s.%s: %w", corpus, goldSetID, err)
	}
	return goldSet, nil
}

// List lists all GoldSet IDs for the given corpus.
func (m *manager) List(ctx context.Context, corpus string) ([]string, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	query := `SELECT gold_set_id FROM ` + mysqldb.TableGoldSets + ` WHERE corpus = ? ORDER BY gold_set_id`
	rows, err := m.db.QueryContext(ctx, query, corpus)
	if err != nil {
		return nil, fmt.Errorf("list gold sets %s: %w", corpus, err)
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan gold set id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gold set ids: %w", err)
	}
	return ids, nil
}

// Delete deletes the GoldSet identified by goldSetID.
func (m *manager) Delete(ctx context.Context, corpus, goldSetID string) error {
	query := `DELETE FROM ` + mysqldb.TableGoldSets + ` WHERE corpus = ? AND gold_set_id = ?`
	result, err := m.db.ExecContext(ctx, query, corpus, goldSetID)
	if err != nil {
		return fmt.Errorf("delete gold set %s.%s: %w", corpus, goldSetID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete gold set %s.%s: %w", corpus, goldSetID, err)
	}
	if affected == 0 {
		return fmt.Errorf("gold set %s.%s not found: %w", corpus, goldSetID, os.ErrNotExist)
	}
	return nil
}

// AddAnnotation adds an annotation to an existing GoldSet.
func (m *manager) AddAnnotation(ctx context.Context, corpus, goldSetID string, a *annotation.Annotation) error {
	if a == nil {
		return errors.New("annotation is nil")
	}
	goldSet, err := m.load(ctx, corpus, goldSetID)
	if err != nil {
		return err
	}
	for _, existing := range goldSet.Annotations {
		if existing != nil && existing.Key() == a.Key() {
			return fmt.Errorf("annotation %q already exists in gold set %s.%s", a.Key(), corpus, goldSetID)
		}
	}
	if a.CreationTimestamp == nil {
		a.CreationTimestamp = epochtime.Now()
	}
	goldSet.Annotations = append(goldSet.Annotations, a)
	return m.store(ctx, corpus, goldSet)
}

// GetAnnotation gets an annotation from an existing GoldSet by its key.
func (m *manager) GetAnnotation(ctx context.Context, corpus, goldSetID, key string) (*annotation.Annotation, error) {
	goldSet, err := m.load(ctx, corpus, goldSetID)
	if err != nil {
		return nil, err
	}
	for _, a := range goldSet.Annotations {
		if a != nil && a.Key() == key {
			return a, nil
		}
	}
	return nil, fmt.Errorf("annotation %q not found in gold set %s.%s: %w", key, corpus, goldSetID, os.ErrNotExist)
}

// UpdateAnnotation replaces the annotation identified by key.
func (m *manager) UpdateAnnotation(ctx context.Context, corpus, goldSetID, key string, a *annotation.Annotation) error {
	if a == nil {
		return errors.New("annotation is nil")
	}
	goldSet, err := m.load(ctx, corpus, goldSetID)
	if err != nil {
		return err
	}
	for i, existing := range goldSet.Annotations {
		if existing != nil && existing.Key() == key {
			if a.CreationTimestamp == nil {
				a.CreationTimestamp = existing.CreationTimestamp
			}
			goldSet.Annotations[i] = a
			return m.store(ctx, corpus, goldSet)
		}
	}
	return fmt.Errorf("annotation %q not found in gold set %s.%s: %w", key, corpus, goldSetID, os.ErrNotExist)
}

// DeleteAnnotation deletes an annotation from an existing GoldSet.
func (m *manager) DeleteAnnotation(ctx context.Context, corpus, goldSetID, key string) error {
	goldSet, err := m.load(ctx, corpus, goldSetID)
	if err != nil {
		return err
	}
	kept := goldSet.Annotations[:0]
	found := false
	for _, a := range goldSet.Annotations {
		if a != nil && a.Key() == key {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return fmt.Errorf("annotation %q not found in gold set %s.%s: %w", key, corpus, goldSetID, os.ErrNotExist)
	}
	goldSet.Annotations = kept
	return m.store(ctx, corpus, goldSet)
}

// Close closes the underlying connection pool.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

func (m *manager) load(ctx context.Context, corpus, goldSetID string) (*annotation.GoldSet, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	if goldSetID == "" {
		return nil, errors.New("gold set id is empty")
	}
	var payload []byte
	query := `SELECT payload FROM ` + mysqldb.TableGoldSets + ` WHERE corpus = ? AND gold_set_id = ?`
	err := m.db.QueryRowContext(ctx, query, corpus, goldSetID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("gold set %s.%s not found: %w", corpus, goldSetID, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("load gold set %s.%s: %w", corpus, goldSetID, err)
	}
	goldSet := &annotation.GoldSet{}
	if err := json.Unmarshal(payload, goldSet); err != nil {
		return nil, fmt.Errorf("unmarshal gold set %s.%s: %w", corpus, goldSetID, err)
	}
	return goldSet, nil
}

func (m *manager) store(ctx context.Context, corpus string, goldSet *annotation.GoldSet) error {
	payload, err := json.Marshal(goldSet)
	if err != nil {
		return fmt.Errorf("marshal gold set: %w", err)
	}
	query := `UPDATE ` + mysqldb.TableGoldSets + ` SET payload = ? WHERE corpus = ? AND gold_set_id = ?`
	if _, err := m.db.ExecContext(ctx, query, payload, corpus, goldSet.GoldSetID); err != nil {
		return fmt.Errorf("store gold set %s.%s: %w", corpus, goldSet.GoldSetID, err)
	}
	return nil
}
