package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
)

const (
	colQueryID     = "query_id"
	colDocID       = "doc_id"
	colTitle       = "title"
	colURL         = "url"
	colSearchScore = "search_score"
	colJudgment    = "judgment"
)

// aliases maps alternative header names onto the reserved columns.
var aliases = map[string]string{
	"@search.score": colSearchScore,
	"grade":         colJudgment,
	"qid":           colQueryID,
}

var reserved = map[string]bool{
	colQueryID:     true,
	colDocID:       true,
	colTitle:       true,
	colURL:         true,
	colSearchScore: true,
	colJudgment:    true,
}

// Source loads a dataset from a CSV file with one (query, document) row per
// line, rows of one query kept contiguous.
type Source struct {
	path           string
	featureColumns []string
}

func New(path string, featureColumns []string) *Source {
	return &Source{path: path, featureColumns: featureColumns}
}

func (s *Source) Load(ctx context.Context) (*domain.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	ds, err := Read(ctx, f, s.featureColumns)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	slog.Info("csv dataset loaded", "path", s.path, "rows", ds.Len(), "queries", len(ds.GroupCounts()))
	return ds, nil
}

// Read parses CSV data. When featureColumns is empty every non-reserved
// column is a feature, in header order.
func Read(ctx context.Context, r io.Reader, featureColumns []string) (*domain.Dataset, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		name, _ := columnName(h)
		index[name] = i
	}
	if _, ok := index[colQueryID]; !ok {
		return nil, fmt.Errorf("missing %q column", colQueryID)
	}
	if _, ok := index[colJudgment]; !ok {
		slog.Warn("csv has no judgment column, all rows graded 0")
	}

	names := featureColumns
	if len(names) == 0 {
		for _, h := range headers {
			if name, isReserved := columnName(h); !isReserved {
				names = append(names, name)
			}
		}
	}
	featureIdx := make([]int, len(names))
	for i, name := range names {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("feature column %q not found", name)
		}
		featureIdx[i] = idx
	}

	builder := domain.NewBuilder(names)
	line := 1
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := parseRecord(row, index, featureIdx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := builder.Add(rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	return builder.Dataset()
}

// columnName maps a header onto its reserved column, ignoring case and
// aliases. Feature headers keep their case.
func columnName(header string) (string, bool) {
	name := strings.TrimSpace(header)
	lower := strings.ToLower(name)
	if canonical, ok := aliases[lower]; ok {
		return canonical, true
	}
	if reserved[lower] {
		return lower, true
	}
	return name, false
}

func parseRecord(row []string, index map[string]int, featureIdx []int) (domain.Record, error) {
	field := func(name string) string {
		if i, ok := index[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	rec := domain.Record{
		QueryID: field(colQueryID),
		DocID:   field(colDocID),
		Title:   field(colTitle),
		URL:     field(colURL),
	}

	var err error
	if rec.SearchScore, err = parseFloat(field(colSearchScore)); err != nil {
		return rec, fmt.Errorf("%s: %w", colSearchScore, err)
	}
	if rec.Judgment, err = parseFloat(field(colJudgment)); err != nil {
		return rec, fmt.Errorf("%s: %w", colJudgment, err)
	}

	rec.Features = make([]float64, len(featureIdx))
	for i, idx := range featureIdx {
		if rec.Features[i], err = parseFloat(strings.TrimSpace(row[idx])); err != nil {
			return rec, fmt.Errorf("feature %d: %w", i, err)
		}
	}
	return rec, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
