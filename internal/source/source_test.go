package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "csv", cfg: Config{Type: CSV, Path: "data.csv"}},
		{name: "pg", cfg: Config{Type: Postgres, ConnStr: "postgres://localhost/db"}},
		{name: "es", cfg: Config{Type: Elasticsearch, Addresses: []string{"http://localhost:9200"}}},
		{name: "csv without path", cfg: Config{Type: CSV}, wantErr: true},
		{name: "pg without conn", cfg: Config{Type: Postgres}, wantErr: true},
		{name: "es without address", cfg: Config{Type: Elasticsearch}, wantErr: true},
		{name: "unknown", cfg: Config{Type: "parquet"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.csv")
	require.NoError(t, os.WriteFile(path, []byte("query_id,judgment,f\nq1,2,0.5\nq1,0,0.1\n"), 0644))

	src, closeFn, err := New(context.Background(), Config{Type: CSV, Path: path})
	require.NoError(t, err)
	defer closeFn()

	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0}, ds.Judgments)
}

func TestNewSink_RejectsCSV(t *testing.T) {
	_, _, err := NewSink(context.Background(), Config{Type: CSV, Path: "out.csv"})
	assert.Error(t, err)
}
