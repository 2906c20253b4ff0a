package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// ImportRepository provides data access methods for the import_batch audit table.
type ImportRepository struct {
	db     *sql.DB
	tx     *sql.Tx
	userID string
}

// NewImportRepository creates a new ImportRepository with the provided database connection.
func NewImportRepository(db *sql.DB, userID string) *ImportRepository {
	return &ImportRepository{db: db, userID: userID}
}

func (r *ImportRepository) WithTx(tx *sql.Tx) *ImportRepository {
	return &ImportRepository{
		db:     r.db,
		tx:     tx,
		userID: r.userID,
	}
}

func (r *ImportRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertBatch stores the audit record of an upload. Warnings are stored as a JSON array.
func (r *ImportRepository) InsertBatch(ctx context.Context, b *model.ImportBatch) error {
	warnings := b.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	encoded, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("failed to encode import warnings: %w", err)
	}

	query := `
        INSERT INTO import_batch (id, user_id, format, file_name, rows_total, rows_imported, rows_skipped, warnings, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err = r.getQuerier().ExecContext(ctx, query,
		b.ID,
		r.userID,
		b.Format,
		b.FileName,
		b.RowsTotal,
		b.RowsImported,
		b.RowsSkipped,
		string(encoded),
		FormatTime(b.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert import batch: %w", err)
	}

	return nil
}

// GetBatches retrieves the most recent import batches, newest first.
// A limit <= 0 returns all batches.
func (r *ImportRepository) GetBatches(ctx context.Context, limit int) ([]model.ImportBatch, error) {
	query := `
        SELECT id, format, file_name, rows_total, rows_imported, rows_skipped, warnings, created_at
        FROM import_batch
        WHERE user_id = ?
        ORDER BY created_at DESC, id
    `
	args := []any{r.userID}

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query import_batch table: %w", err)
	}
	defer rows.Close()

	batches := []model.ImportBatch{}

	for rows.Next() {
		var b model.ImportBatch
		var warnings, createdAt string

		err := rows.Scan(
			&b.ID,
			&b.Format,
			&b.FileName,
			&b.RowsTotal,
			&b.RowsImported,
			&b.RowsSkipped,
			&warnings,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import_batch table results: %w", err)
		}

		if err := json.Unmarshal([]byte(warnings), &b.Warnings); err != nil {
			return nil, fmt.Errorf("failed to decode import warnings: %w", err)
		}
		b.CreatedAt, err = ParseTime(createdAt)
		if err != nil {
			return nil, err
		}

		batches = append(batches, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating import_batch table: %w", err)
	}

	return batches, nil
}

// DeleteBatchesBefore removes batches created before cutoff and returns how many were removed.
func (r *ImportRepository) DeleteBatchesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM import_batch WHERE user_id = ? AND created_at < ?`

	result, err := r.getQuerier().ExecContext(ctx, query, r.userID, FormatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to delete import batches: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}
