package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// Indexer bulk-loads a dataset into a feature index. Documents are keyed by
// position, so a reload overwrites rows in place.
type Indexer struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewIndexer(ctx context.Context, config ClientConfig) (*Indexer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	if config.IndexName == "" {
		config.IndexName = DefaultIndex
	}

	indexer := &Indexer{client: client, indexName: config.IndexName}
	if err := indexer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return indexer, nil
}

func (e *Indexer) Save(ctx context.Context, ds *domain.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.client,
		NumWorkers:    4,
		FlushBytes:    5e+6,
		FlushInterval: 30 * time.Second,
		Refresh:       "wait_for",
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed atomic.Int64
	for i, r := range ds.Rows {
		doc := Document{
			Position:    int64(i),
			QueryID:     r.QueryID,
			DocID:       r.DocID.String(),
			Title:       r.Title,
			URL:         r.URL,
			SearchScore: r.SearchScore,
			Judgment:    ds.Judgments[i],
			Features:    make(map[string]float64, len(ds.FeatureNames)),
		}
		for j, name := range ds.FeatureNames {
			doc.Features[name] = r.Features[j]
		}

		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal row %d: %w", i, err)
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: strconv.Itoa(i),
			Body:       bytes.NewReader(body),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				successful.Add(1)
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed.Add(1)
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add document to bulk indexer", "error", err, "position", i)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("bulk indexing completed",
		"successful", successful.Load(),
		"failed", failed.Load(),
		"total", ds.Len(),
		"index", e.indexName)

	if failed.Load() > 0 {
		return fmt.Errorf("failed to index %d out of %d rows", failed.Load(), ds.Len())
	}
	return nil
}

func (e *Indexer) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"position":     types.NewLongNumberProperty(),
			"query_id":     types.NewKeywordProperty(),
			"doc_id":       types.NewKeywordProperty(),
			"title":        types.NewTextProperty(),
			"url":          types.NewKeywordProperty(),
			"search_score": types.NewDoubleNumberProperty(),
			"judgment":     types.NewDoubleNumberProperty(),
			"features":     types.NewObjectProperty(),
		},
	}

	res, err := e.client.Indices.Create(e.indexName).Mappings(&mappings).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("index created", "index", e.indexName)
	return nil
}
