package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Writer copies a dataset into a feature table, replacing its content.
type Writer struct {
	pool  *ConnectionPool
	table string
}

func NewWriter(pool *ConnectionPool, table string) *Writer {
	if table == "" {
		table = DefaultTable
	}
	return &Writer{pool: pool, table: table}
}

func (w *Writer) Save(ctx context.Context, ds *domain.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	rows := make([][]interface{}, ds.Len())
	for i, r := range ds.Rows {
		features := make(map[string]float64, len(ds.FeatureNames))
		for j, name := range ds.FeatureNames {
			features[name] = r.Features[j]
		}
		featuresJSON, err := json.Marshal(features)
		if err != nil {
			return fmt.Errorf("failed to marshal features for row %d: %w", i, err)
		}

		rows[i] = []interface{}{
			int64(i),
			r.QueryID,
			r.DocID.String(),
			r.Title,
			r.URL,
			r.SearchScore,
			ds.Judgments[i],
			featuresJSON,
		}
	}

	tx, err := w.pool.GetConn().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ident := pgx.Identifier{w.table}
	if _, err := tx.Exec(ctx, "DELETE FROM "+ident.Sanitize()); err != nil {
		return fmt.Errorf("failed to clear %s: %w", w.table, err)
	}

	_, err = tx.CopyFrom(
		ctx,
		ident,
		[]string{"position", "query_id", "doc_id", "title", "url", "search_score", "judgment", "features"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert features: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	slog.Info("dataset written", "table", w.table, "rows", len(rows))
	return nil
}
