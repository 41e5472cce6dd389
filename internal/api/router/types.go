package router

import "github.com/DjordjeVuckovic/ltr-eval/internal/metrics"

type RerankDocument struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	URL         string    `json:"url,omitempty"`
	SearchScore float64   `json:"search_score"`
	Features    []float64 `json:"features"`
	// Grade is an optional relevance judgment used to score the new order.
	Grade *float64 `json:"grade,omitempty"`
}

type RerankRequest struct {
	Query        string           `json:"query"`
	FeatureNames []string         `json:"feature_names"`
	Documents    []RerankDocument `json:"documents"`
	// TopK truncates the response; 0 returns every document.
	TopK int `json:"top_k,omitempty"`
}

type RerankedDocument struct {
	ID          string  `json:"id"`
	Title       string  `json:"title,omitempty"`
	URL         string  `json:"url,omitempty"`
	Rank        int     `json:"rank"`
	Position    int     `json:"position"`
	Score       float64 `json:"score"`
	SearchScore float64 `json:"search_score"`
}

type RerankResponse struct {
	Query   string             `json:"query,omitempty"`
	Model   string             `json:"model"`
	Results []RerankedDocument `json:"results"`
	// Filled only when the request carries graded documents.
	NDCG       map[int]float64 `json:"ndcg,omitempty"`
	EngineNDCG map[int]float64 `json:"engine_ndcg,omitempty"`
}

type EvaluateRequest struct {
	KStart       int       `json:"k_start"`
	KEnd         int       `json:"k_end"`
	GroupCounts  []int     `json:"group_counts"`
	Scores       []float64 `json:"scores"`
	Judgments    []float64 `json:"judgments"`
	SearchScores []float64 `json:"search_scores,omitempty"`
	DocIDs       []string  `json:"doc_ids,omitempty"`
	Gain         string    `json:"gain,omitempty" example:"linear"`
	SkipUnjudged bool      `json:"skip_unjudged,omitempty"`
	PerQuery     bool      `json:"per_query,omitempty"`
}

type EvaluateResponse struct {
	Queries int                        `json:"queries"`
	Series  map[string]*metrics.Report `json:"series"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}
