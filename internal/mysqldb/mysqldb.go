// Package mysqldb provides the shared MySQL connection and schema helpers
// used by the mysql-backed managers.
package mysqldb

import (
	"context"
	"database/sql"
	"fmt"

	// Register the mysql driver.
	_ "github.com/go-sql-driver/mysql"
)

const (
	// TableGoldSets is the table holding gold annotation sets.
	TableGoldSets = "keo_gold_sets"
	// TablePredictionSets is the table holding tool prediction sets.
	TablePredictionSets = "keo_prediction_sets"
	// TableReports is the table holding evaluation reports.
	TableReports = "keo_reports"
)

// sqlCreate holds one CREATE TABLE statement per managed table.
var sqlCreate = map[string]string{
	TableGoldSets: `CREATE TABLE IF NOT EXISTS ` + TableGoldSets + ` (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		corpus VARCHAR(191) NOT NULL,
		gold_set_id VARCHAR(191) NOT NULL,
		payload LONGTEXT NOT NULL,
		created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
		PRIMARY KEY (id),
		UNIQUE KEY uniq_gold_sets_corpus_id (corpus, gold_set_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	TablePredictionSets: `CREATE TABLE IF NOT EXISTS ` + TablePredictionSets + ` (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		corpus VARCHAR(191) NOT NULL,
		prediction_set_id VARCHAR(191) NOT NULL,
		tool VARCHAR(191) NOT NULL DEFAULT '',
		payload LONGTEXT NOT NULL,
		created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
		PRIMARY KEY (id),
		UNIQUE KEY uniq_prediction_sets_corpus_id (corpus, prediction_set_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	TableReports: `CREATE TABLE IF NOT EXISTS ` + TableReports + ` (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		corpus VARCHAR(191) NOT NULL,
		report_id VARCHAR(191) NOT NULL,
		gold_set_id VARCHAR(191) NOT NULL DEFAULT '',
		tool VARCHAR(191) NOT NULL DEFAULT '',
		payload LONGTEXT NOT NULL,
		created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		PRIMARY KEY (id),
		UNIQUE KEY uniq_reports_corpus_id (corpus, report_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Open opens a MySQL connection pool for the given DSN.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the given tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB, tables ...string) error {
	for _, table := range tables {
		stmt, ok := sqlCreate[table]
		if !ok {
			return fmt.Errorf("unknown table %s", table)
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}
	return nil
}
