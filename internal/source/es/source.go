package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

// Source pages through a feature index with search_after, sorted by
// position, so rows of one query stay contiguous.
type Source struct {
	client         *elasticsearch.TypedClient
	indexName      string
	featureColumns []string
	batchSize      int
}

func NewSource(config ClientConfig, featureColumns []string, batchSize int) (*Source, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	if config.IndexName == "" {
		config.IndexName = DefaultIndex
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Source{
		client:         client,
		indexName:      config.IndexName,
		featureColumns: featureColumns,
		batchSize:      batchSize,
	}, nil
}

func (s *Source) Load(ctx context.Context) (*domain.Dataset, error) {
	var (
		builder *domain.Builder
		names   = s.featureColumns
		after   *int64
		n       int
	)

	asc := sortorder.Asc
	for {
		req := s.client.Search().
			Index(s.indexName).
			Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
			Sort(&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"position": {Order: &asc},
				},
			}).
			Size(s.batchSize)
		if after != nil {
			req = req.SearchAfter(types.FieldValue(*after))
		}

		res, err := req.Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to execute search: %w", err)
		}

		for _, hit := range res.Hits.Hits {
			var doc Document
			if err := json.Unmarshal(hit.Source_, &doc); err != nil {
				return nil, fmt.Errorf("failed to unmarshal document %d: %w", n, err)
			}

			if builder == nil {
				if len(names) == 0 {
					names = sortedKeys(doc.Features)
				}
				builder = domain.NewBuilder(names)
			}

			rec, err := toRecord(doc, names)
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", n, err)
			}
			if err := builder.Add(rec); err != nil {
				return nil, fmt.Errorf("document %d: %w", n, err)
			}

			pos := doc.Position
			after = &pos
			n++
		}

		if len(res.Hits.Hits) < s.batchSize {
			break
		}
	}

	if builder == nil {
		return nil, fmt.Errorf("index %s has no documents", s.indexName)
	}

	ds, err := builder.Dataset()
	if err != nil {
		return nil, err
	}
	slog.Info("es dataset loaded", "index", s.indexName, "rows", ds.Len(), "features", len(names))
	return ds, nil
}

func toRecord(doc Document, names []string) (domain.Record, error) {
	rec := domain.Record{
		QueryID:     doc.QueryID,
		DocID:       doc.DocID,
		Title:       doc.Title,
		URL:         doc.URL,
		SearchScore: doc.SearchScore,
		Judgment:    doc.Judgment,
		Features:    make([]float64, len(names)),
	}
	for i, name := range names {
		v, ok := doc.Features[name]
		if !ok {
			return rec, fmt.Errorf("missing feature %q", name)
		}
		rec.Features[i] = v
	}
	return rec, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
