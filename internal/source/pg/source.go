package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/jackc/pgx/v5"
)

const DefaultTable = "ltr_features"

// Source reads a feature table whose rows carry their features as a jsonb
// object keyed by feature name. Rows come back ordered by position.
type Source struct {
	pool           *ConnectionPool
	table          string
	featureColumns []string
}

func NewSource(pool *ConnectionPool, table string, featureColumns []string) *Source {
	if table == "" {
		table = DefaultTable
	}
	return &Source{pool: pool, table: table, featureColumns: featureColumns}
}

func (s *Source) Load(ctx context.Context) (*domain.Dataset, error) {
	query := fmt.Sprintf(`
		SELECT query_id, doc_id, title, url, search_score, judgment, features
		FROM %s
		ORDER BY position
	`, pgx.Identifier{s.table}.Sanitize())

	rows, err := s.pool.GetConn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	var (
		builder *domain.Builder
		names   = s.featureColumns
		n       int
	)
	for rows.Next() {
		var (
			rec          domain.Record
			featuresJSON []byte
		)
		if err := rows.Scan(&rec.QueryID, &rec.DocID, &rec.Title, &rec.URL, &rec.SearchScore, &rec.Judgment, &featuresJSON); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", n, err)
		}

		var features map[string]float64
		if err := json.Unmarshal(featuresJSON, &features); err != nil {
			return nil, fmt.Errorf("row %d: failed to decode features: %w", n, err)
		}

		if builder == nil {
			if len(names) == 0 {
				names = sortedKeys(features)
			}
			builder = domain.NewBuilder(names)
		}

		rec.Features = make([]float64, len(names))
		for i, name := range names {
			v, ok := features[name]
			if !ok {
				return nil, fmt.Errorf("row %d: missing feature %q", n, name)
			}
			rec.Features[i] = v
		}
		if err := builder.Add(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", n, err)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if builder == nil {
		return nil, fmt.Errorf("table %s has no rows", s.table)
	}

	ds, err := builder.Dataset()
	if err != nil {
		return nil, err
	}
	slog.Info("pg dataset loaded", "table", s.table, "rows", ds.Len(), "features", len(names))
	return ds, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
