package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/DjordjeVuckovic/ltr-eval/internal/experiment"
	"github.com/DjordjeVuckovic/ltr-eval/internal/judgment"
	"github.com/DjordjeVuckovic/ltr-eval/internal/model"
	"github.com/DjordjeVuckovic/ltr-eval/internal/report"
	"github.com/DjordjeVuckovic/ltr-eval/internal/runner"
	"github.com/DjordjeVuckovic/ltr-eval/internal/source"
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cfg.Mode {
	case "eval":
		runEval(ctx, cfg)
	case "template":
		runTemplate(ctx, cfg)
	case "import":
		runImport(ctx, cfg)
	default:
		slog.Error("Unknown mode", "mode", cfg.Mode)
		os.Exit(1)
	}
}

func runEval(ctx context.Context, cfg cliConfig) {
	exp, err := cfg.experiment()
	if err != nil {
		slog.Error("Invalid experiment", "error", err)
		os.Exit(1)
	}

	ds := loadDataset(ctx, exp.Source)

	if exp.Judgments != "" {
		jf, err := judgment.ImportAnnotations(exp.Judgments)
		if err != nil {
			slog.Error("Failed to import judgments", "path", exp.Judgments, "error", err)
			os.Exit(1)
		}
		ds = judgment.Merge(jf, ds)
	}

	scorer, err := model.New(exp.Model)
	if err != nil {
		slog.Error("Failed to load model", "error", err)
		os.Exit(1)
	}

	res, err := runner.New(exp.RunnerConfig()).Run(ctx, ds, scorer)
	if err != nil {
		slog.Error("Evaluation failed", "error", err)
		os.Exit(1)
	}

	outputReport(exp, res)
}

func outputReport(exp *experiment.Experiment, res *runner.Result) {
	rpt := report.Summarize(exp.Name, res)
	report.WriteTable(rpt, os.Stdout)

	if exp.Output.JSON != "" {
		if err := report.WriteJSON(rpt, exp.Output.JSON); err != nil {
			slog.Error("Failed to write JSON report", "error", err)
			os.Exit(1)
		}
		slog.Info("Report written", "path", exp.Output.JSON)
	}
}

func runTemplate(ctx context.Context, cfg cliConfig) {
	if cfg.Output == "" {
		slog.Error("Template mode requires --output")
		os.Exit(1)
	}

	srcCfg := cfg.sourceConfig(source.Type(cfg.SourceType))
	if cfg.ExperimentPath != "" {
		exp, err := experiment.LoadFromFile(cfg.ExperimentPath)
		if err != nil {
			slog.Error("Failed to load experiment", "error", err)
			os.Exit(1)
		}
		srcCfg = exp.Source
	}

	ds := loadDataset(ctx, srcCfg)
	if err := judgment.ExportForAnnotation(ds, cfg.Output); err != nil {
		slog.Error("Failed to export template", "error", err)
		os.Exit(1)
	}
	slog.Info("Judgment template written", "path", cfg.Output, "queries", len(ds.GroupCounts()), "docs", ds.Len())
}

func runImport(ctx context.Context, cfg cliConfig) {
	if cfg.Target == "" {
		slog.Error("Import mode requires --target (pg or es)")
		os.Exit(1)
	}

	ds := loadDataset(ctx, cfg.sourceConfig(source.Type(cfg.SourceType)))

	sink, closeSink, err := source.NewSink(ctx, cfg.sourceConfig(source.Type(cfg.Target)))
	if err != nil {
		slog.Error("Failed to create import target", "target", cfg.Target, "error", err)
		os.Exit(1)
	}
	defer closeSink()

	if err := sink.Save(ctx, ds); err != nil {
		slog.Error("Import failed", "target", cfg.Target, "error", err)
		os.Exit(1)
	}
	slog.Info("Import completed", "target", cfg.Target, "rows", ds.Len())
}

func loadDataset(ctx context.Context, srcCfg source.Config) *domain.Dataset {
	src, closeSrc, err := source.New(ctx, srcCfg)
	if err != nil {
		slog.Error("Failed to create source", "type", srcCfg.Type, "error", err)
		os.Exit(1)
	}
	defer closeSrc()

	ds, err := src.Load(ctx)
	if err != nil {
		slog.Error("Failed to load dataset", "type", srcCfg.Type, "error", err)
		os.Exit(1)
	}
	return ds
}
