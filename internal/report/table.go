package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/runner"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	title := r.Meta.Model
	if r.Meta.Experiment != "" {
		title = r.Meta.Experiment + " / " + r.Meta.Model
	}
	fmt.Fprintf(tw, "\n=== Ranking Evaluation: %s ===\n\n", title)

	writeNDCGTable(tw, r)
	if r.Config.RankMetrics {
		writeRankMetricsTable(tw, r)
	}
	writeFoldTable(tw, r)
	writeLatencyTable(tw, r)

	tw.Flush()
}

func writeHeader(tw *tabwriter.Writer, header []string) {
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

func writeNDCGTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "NDCG@k (%s gain, mean ± std across %d folds, %d queries)\n\n",
		r.Config.Gain, r.Meta.Folds, r.Meta.Queries)

	header := []string{"k"}
	for _, s := range r.Series {
		header = append(header, s.Name)
	}
	for _, s := range r.Series {
		if s.LiftPercent != nil {
			header = append(header, s.Name+" lift")
		}
	}
	writeHeader(tw, header)

	for _, k := range r.Config.Ks() {
		row := []string{fmt.Sprintf("%d", k)}
		for _, s := range r.Series {
			row = append(row, fmtMeanStd(s.Mean[k], s.Std[k], r.Meta.Folds))
		}
		for _, s := range r.Series {
			if s.LiftPercent != nil {
				row = append(row, fmtPercent(s.LiftPercent[k]))
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeRankMetricsTable(tw *tabwriter.Writer, r *Report) {
	k := r.Config.KEnd
	fmt.Fprintf(tw, "Rank Metrics (relevant: judgment >= %g)\n\n", r.Config.RelevanceThreshold)

	writeHeader(tw, []string{"Series", fmt.Sprintf("P@%d", k), fmt.Sprintf("R@%d", k), "MAP", "MRR"})
	for _, s := range r.Series {
		fmt.Fprintln(tw, strings.Join([]string{
			s.Name,
			fmtScore(s.Precision, k),
			fmtScore(s.Recall, k),
			fmt.Sprintf("%.4f", s.MAP),
			fmt.Sprintf("%.4f", s.MRR),
		}, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeFoldTable(tw *tabwriter.Writer, r *Report) {
	if len(r.Folds) < 2 {
		return
	}
	k := r.Config.KEnd
	fmt.Fprintf(tw, "Per-Fold Results\n\n")

	header := []string{"Fold", "Queries", "Docs"}
	for _, name := range runner.SeriesOrder {
		header = append(header, fmt.Sprintf("%s NDCG@%d", name, k))
	}
	header = append(header, "Predict")
	writeHeader(tw, header)

	for _, f := range r.Folds {
		row := []string{
			fmt.Sprintf("%d", f.Index),
			fmt.Sprintf("%d", f.Queries),
			fmt.Sprintf("%d", f.Docs),
		}
		for _, name := range runner.SeriesOrder {
			if rep := f.Series[name]; rep != nil {
				row = append(row, fmtScore(rep.NDCG, k))
			} else {
				row = append(row, "N/A")
			}
		}
		row = append(row, fmtDuration(f.PredictLatency))
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeLatencyTable(tw *tabwriter.Writer, r *Report) {
	s := r.Latency
	if s.IsZero() {
		return
	}
	fmt.Fprintf(tw, "Prediction Latency (per fold)\n\n")

	writeHeader(tw, []string{"Min", "p50", "p90", "p99", "Max", "Mean", "Stddev", "Samples"})
	fmt.Fprintln(tw, strings.Join([]string{
		fmtDuration(s.Min),
		fmtDuration(s.Percentiles[50]),
		fmtDuration(s.Percentiles[90]),
		fmtDuration(s.Percentiles[99]),
		fmtDuration(s.Max),
		fmtDuration(s.Mean),
		fmtDuration(s.Stddev),
		fmt.Sprintf("%d", s.SampleCount),
	}, "\t"))

	fmt.Fprintln(tw)
}

func fmtMeanStd(mean, std float64, folds int) string {
	if folds < 2 {
		return fmt.Sprintf("%.4f", mean)
	}
	return fmt.Sprintf("%.4f ± %.4f", mean, std)
}

func fmtPercent(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}

func fmtScore(scores map[int]float64, k int) string {
	if scores == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", scores[k])
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
