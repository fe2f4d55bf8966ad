package app

import (
	"errors"
	"os"
	"time"

	"url-intel/internal/adapters/corpus"
	"url-intel/internal/adapters/report"
	"url-intel/internal/adapters/wordlist"
	"url-intel/internal/core/classify"
	"url-intel/internal/core/pipeline"
	"url-intel/internal/platform/config"
	"url-intel/internal/platform/logx"
	"url-intel/internal/platform/netutil"
)

// Run ejecuta el análisis completo: lee el corpus, agrega resultados,
// actualiza las wordlists y pinta el resumen en consola.
func Run(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("app: missing config")
	}

	colored := logx.IsTerminal(os.Stdout)
	pal := newPalette(colored)
	if !cfg.Quiet && colored {
		printBanner(os.Stdout, pal)
	}

	readStart := time.Now()
	urls, err := corpus.Read(cfg.Input)
	if err != nil {
		return err
	}
	readDuration := time.Since(readStart)

	matcher, err := buildMatcher(cfg)
	if err != nil {
		return err
	}
	scope, err := buildScope(cfg)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Matcher:       matcher,
		Categorizer:   classify.NewCategorizer(classify.DefaultCategories()),
		Fingerprinter: classify.NewFingerprinter(classify.DefaultFingerprints()),
		Scope:         scope,
	}
	if bar := buildProgressBar(cfg, len(urls)); bar != nil {
		opts.Reporter = bar
		logx.SetOutput(bar.Writer())
		defer logx.SetOutput(nil)
	}

	agg := pipeline.New(opts)
	analyzeStart := time.Now()
	agg.Run(urls)
	analyzeDuration := time.Since(analyzeStart)
	snap := agg.Snapshot()
	logx.Infof("análisis: %d URLs procesadas, %d fuera de scope en %s",
		snap.Processed, snap.Skipped, analyzeDuration.Round(time.Millisecond))

	writeStart := time.Now()
	store := wordlist.NewStore(cfg.OutDir)
	if err := store.WriteSnapshot(snap); err != nil {
		return err
	}
	writeDuration := time.Since(writeStart)
	logx.Infof("wordlists actualizadas en %s", writeDuration.Round(time.Millisecond))

	if !cfg.Quiet {
		printSavedLists(os.Stdout, pal, cfg.OutDir, snap)
		printSummary(os.Stdout, pal, snap)
		printClosing(os.Stdout, pal, cfg.OutDir)
	}

	if cfg.Report {
		if err := report.Generate(cfg, snap); err != nil {
			return err
		}
		logx.Infof("report.html generado en %s", cfg.OutDir)
	}
	if cfg.Metrics {
		metrics := runMetrics{
			corpusLines: len(urls),
			read:        readDuration,
			analyze:     analyzeDuration,
			write:       writeDuration,
		}
		if err := writeRunMetrics(cfg.OutDir, snap, metrics); err != nil {
			logx.Warnf("no se pudo escribir metrics.json: %v", err)
		}
	}
	return nil
}

// buildMatcher devuelve nil con -all: el agregador reproduce entonces la
// variante sin filtro, que retiene todas las rutas.
func buildMatcher(cfg *config.Config) (*classify.Matcher, error) {
	if cfg.All {
		return nil, nil
	}
	rules := classify.DefaultRules()
	if cfg.RulesFile != "" {
		loaded, err := classify.LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}
	return classify.NewMatcher(rules)
}

func buildScope(cfg *config.Config) (*netutil.Scope, error) {
	if len(cfg.Scope) == 0 {
		return nil, nil
	}
	return netutil.NewScope(cfg.Scope)
}

func buildProgressBar(cfg *config.Config, total int) *progressBar {
	if cfg.Quiet || cfg.NoProgress || total <= 0 {
		return nil
	}
	if !logx.IsTerminal(os.Stderr) {
		return nil
	}
	return newProgressBar(total, nil)
}
