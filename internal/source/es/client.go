package es

import "github.com/elastic/go-elasticsearch/v8"

const (
	DefaultIndex     = "ltr_features"
	defaultBatchSize = 500
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}

// Document is one feature row as stored in the index.
type Document struct {
	Position    int64              `json:"position"`
	QueryID     string             `json:"query_id"`
	DocID       string             `json:"doc_id"`
	Title       string             `json:"title,omitempty"`
	URL         string             `json:"url,omitempty"`
	SearchScore float64            `json:"search_score"`
	Judgment    float64            `json:"judgment"`
	Features    map[string]float64 `json:"features"`
}
