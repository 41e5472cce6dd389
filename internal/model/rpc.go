package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
)

const defaultTimeout = 5 * time.Second

// RPCModel calls an external model server (XGBoost, LightGBM, TF Serving...)
// that owns the trained ranker.
//
// Request:
//
//	{"feature_names": ["bm25", ...], "features_list": [{"bm25": 0.15, ...}, ...]}
//
// Response:
//
//	{"scores": [0.85, 0.72, ...]}
type RPCModel struct {
	name     string
	endpoint string
	client   *http.Client
}

type RPCOption func(*RPCModel)

func WithHTTPClient(c *http.Client) RPCOption {
	return func(m *RPCModel) {
		m.client = c
	}
}

func NewRPCModel(name, endpoint string, timeout time.Duration, opts ...RPCOption) *RPCModel {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	m := &RPCModel{
		name:     name,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *RPCModel) Name() string {
	return m.name
}

type rpcRequest struct {
	FeatureNames []string             `json:"feature_names"`
	FeaturesList []map[string]float64 `json:"features_list"`
}

type rpcResponse struct {
	Scores []float64 `json:"scores"`
}

func (m *RPCModel) Predict(ctx context.Context, fm domain.FeatureMatrix) ([]float64, error) {
	if len(fm.Values) == 0 {
		return []float64{}, nil
	}

	req := rpcRequest{
		FeatureNames: fm.Names,
		FeaturesList: make([]map[string]float64, len(fm.Values)),
	}
	for r, row := range fm.Values {
		if len(row) != len(fm.Names) {
			return nil, fmt.Errorf("row %d has %d features, expected %d", r, len(row), len(fm.Names))
		}
		features := make(map[string]float64, len(row))
		for i, v := range row {
			features[fm.Names[i]] = v
		}
		req.FeaturesList[r] = features
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rpc call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("model server returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Scores) != len(fm.Values) {
		return nil, fmt.Errorf("model server returned %d scores for %d rows", len(out.Scores), len(fm.Values))
	}

	return out.Scores, nil
}
