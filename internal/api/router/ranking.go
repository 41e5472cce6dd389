package router

import (
	"fmt"
	"net/http"

	"github.com/DjordjeVuckovic/ltr-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/DjordjeVuckovic/ltr-eval/internal/metrics"
	"github.com/DjordjeVuckovic/ltr-eval/internal/model"
	"github.com/DjordjeVuckovic/ltr-eval/internal/ranking"
	"github.com/DjordjeVuckovic/ltr-eval/internal/runner"
	"github.com/labstack/echo/v4"
)

type RankingRouter struct {
	e      *echo.Echo
	scorer model.Scorer
}

func NewRankingRouter(e *echo.Echo, scorer model.Scorer) *RankingRouter {
	return &RankingRouter{
		e:      e,
		scorer: scorer,
	}
}

func (r *RankingRouter) Bind() {
	v1 := r.e.Group("/v1")
	v1.POST("/rerank", r.rerankHandler)
	v1.POST("/evaluate", r.evaluateHandler)
}

// rerankHandler godoc
// @Summary Re-rank search results
// @Description Scores the candidate documents of one query with the loaded model and returns them best first
// @Tags ranking
// @Accept json
// @Produce json
// @Param request body RerankRequest true "Candidates with their features"
// @Success 200 {object} RerankResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/rerank [post]
func (r *RankingRouter) rerankHandler(c echo.Context) error {
	var req RerankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if len(req.Documents) == 0 {
		return apperr.EmptyInput("no documents to rerank")
	}
	if len(req.FeatureNames) == 0 {
		return apperr.EmptyInput("no feature names")
	}

	m := domain.FeatureMatrix{
		Names:  req.FeatureNames,
		Values: make([][]float64, len(req.Documents)),
	}
	for i, d := range req.Documents {
		if len(d.Features) != len(req.FeatureNames) {
			return apperr.ShapeMismatch("document %d has %d features, expected %d", i, len(d.Features), len(req.FeatureNames))
		}
		m.Values[i] = d.Features
	}

	scores, err := r.scorer.Predict(c.Request().Context(), m)
	if err != nil {
		return fmt.Errorf("predict with %s: %w", r.scorer.Name(), err)
	}

	docs, order, err := ranking.Rerank(req.Documents, scores)
	if err != nil {
		return err
	}

	n := len(docs)
	if req.TopK > 0 && req.TopK < n {
		n = req.TopK
	}

	resp := RerankResponse{
		Query:   req.Query,
		Model:   r.scorer.Name(),
		Results: make([]RerankedDocument, n),
	}
	for i := 0; i < n; i++ {
		d := docs[i]
		resp.Results[i] = RerankedDocument{
			ID:          d.ID,
			Title:       d.Title,
			URL:         d.URL,
			Rank:        i + 1,
			Position:    order[i],
			Score:       scores[order[i]],
			SearchScore: d.SearchScore,
		}
	}

	if graded(req.Documents) {
		resp.NDCG = ndcgCurve(req.Documents, order)
		resp.EngineNDCG = ndcgCurve(req.Documents, engineOrder(req.Documents))
	}

	return c.JSON(http.StatusOK, resp)
}

func graded(docs []RerankDocument) bool {
	for _, d := range docs {
		if d.Grade != nil {
			return true
		}
	}
	return false
}

func engineOrder(docs []RerankDocument) []int {
	keys := make([]float64, len(docs))
	for i, d := range docs {
		keys[i] = d.SearchScore
	}
	return ranking.Order(keys)
}

// ndcgCurve scores docs listed in order at depths 1..min(n, 10). Ungraded
// documents count as irrelevant.
func ndcgCurve(docs []RerankDocument, order []int) map[int]float64 {
	grades := make([]float64, len(order))
	for i, pos := range order {
		if g := docs[pos].Grade; g != nil {
			grades[i] = *g
		}
	}

	kEnd := min(len(grades), runner.DefaultKEnd)
	curve := make(map[int]float64, kEnd)
	for k := 1; k <= kEnd; k++ {
		curve[k] = metrics.NDCG(grades, k, metrics.GainLinear)
	}
	return curve
}

// evaluateHandler godoc
// @Summary Evaluate ranking quality
// @Description Computes NDCG@k for the model scores, the engine scores and the original order of a flat batch of query groups
// @Tags ranking
// @Accept json
// @Produce json
// @Param request body EvaluateRequest true "Scores and judgments, contiguous per query"
// @Success 200 {object} EvaluateResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/evaluate [post]
func (r *RankingRouter) evaluateHandler(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	gain, ok := metrics.ParseGain(req.Gain)
	if !ok {
		return apperr.NewValidation(fmt.Sprintf("unknown gain %q", req.Gain))
	}
	if req.KEnd > metrics.MaxK {
		return apperr.InvalidRange("k_end %d exceeds the maximum depth %d", req.KEnd, metrics.MaxK)
	}
	if len(req.SearchScores) > 0 && len(req.SearchScores) != len(req.Scores) {
		return apperr.ShapeMismatch("%d search scores but %d scores", len(req.SearchScores), len(req.Scores))
	}
	if len(req.DocIDs) > 0 && len(req.DocIDs) != len(req.Scores) {
		return apperr.ShapeMismatch("%d doc ids but %d scores", len(req.DocIDs), len(req.Scores))
	}

	rows := requestRows(req)
	rk, err := ranking.Convert(req.Scores, req.GroupCounts, rows, req.Judgments)
	if err != nil {
		return err
	}

	opts := []metrics.Option{metrics.WithGain(gain)}
	if req.SkipUnjudged {
		opts = append(opts, metrics.WithSkipUnjudged())
	}
	if req.PerQuery {
		opts = append(opts, metrics.WithDetail())
	}
	evaluate := func(rankings []ranking.Ranking, extra ...metrics.Option) (*metrics.Report, error) {
		all := append(append([]metrics.Option{}, opts...), extra...)
		return metrics.Evaluate(req.KStart, req.KEnd, rk.Ideal, rankings, all...)
	}

	resp := EvaluateResponse{
		Queries: len(req.GroupCounts),
		Series:  make(map[string]*metrics.Report, len(runner.SeriesOrder)),
	}
	if resp.Series[runner.SeriesModel], err = evaluate(rk.Predicted, metrics.WithBaseline(rk.Baseline)); err != nil {
		return err
	}
	if len(req.SearchScores) > 0 {
		if resp.Series[runner.SeriesEngine], err = evaluate(rk.Engine, metrics.WithBaseline(rk.Baseline)); err != nil {
			return err
		}
	}
	if resp.Series[runner.SeriesBaseline], err = evaluate(rk.Baseline); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// requestRows builds one row per score. Rows of group g get the query id
// "g"; missing document ids are derived from the group and position.
func requestRows(req EvaluateRequest) []domain.Row {
	rows := make([]domain.Row, len(req.Scores))
	i := 0
	for g, count := range req.GroupCounts {
		queryID := fmt.Sprintf("%d", g)
		for pos := 0; pos < count && i < len(rows); pos++ {
			var docID string
			if len(req.DocIDs) > 0 {
				docID = req.DocIDs[i]
			}
			rows[i] = domain.Row{
				QueryID: queryID,
				DocID:   domain.ResolveDocID(docID, "", queryID, pos),
			}
			if len(req.SearchScores) > 0 {
				rows[i].SearchScore = req.SearchScores[i]
			}
			i++
		}
	}
	return rows
}
