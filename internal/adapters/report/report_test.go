package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"url-intel/internal/core/pipeline"
	"url-intel/internal/platform/config"
)

func TestGenerateCreatesHTMLReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	snap := &pipeline.Snapshot{
		Domains:     []string{"api.example.com", "app.example.com", "static.test.com"},
		Directories: []string{"/.git/", "/admin/", "/wp-admin/", "/wp-content/uploads/"},
		Files:       []string{"/backup.sql", "/wp-admin/login.php"},
		Params:      []string{"id", "redirect"},
		CMS:         []string{"WordPress"},
		Categories: map[string][]string{
			"php": {"/wp-admin/login.php"},
			"sql": {"/backup.sql"},
		},
		Processed: 6,
		Skipped:   1,
	}

	cfg := &config.Config{Input: "urls.txt", OutDir: dir}
	if err := Generate(cfg, snap); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	contents := readFile(t, filepath.Join(dir, "report.html"))
	checks := []string{
		"Análisis pasivo del corpus <strong>urls.txt</strong>",
		"Filtro de rutas sensibles",
		"URLs procesadas",
		"1 líneas descartadas por el scope.",
		"Dominios únicos:</strong> 3 (registrables: 2)",
		"Hosts por dominio registrable",
		"example.com</td><td>2",
		"test.com</td><td>1",
		"app.example.com",
		"CMS identificado a partir de las rutas: WordPress",
		"Metadatos de control de versiones expuestos (ej. /.git/)",
		"1 ficheros de respaldo o volcados accesibles (ej. /backup.sql)",
		"Parámetros propensos a redirecciones o inclusión de ficheros: redirect",
		"1 líneas del corpus quedaron fuera del scope configurado",
		"Profundidad promedio:</strong> 1.25",
		"1 segmentos</td><td>3",
		"2 segmentos</td><td>1",
		"/wp-content/uploads/",
		"/wp-admin/login.php",
		"Categorías de ficheros",
		"php</td><td>1",
		"sql</td><td>1",
	}
	for _, want := range checks {
		if !strings.Contains(contents, want) {
			t.Fatalf("expected report.html to contain %q\nreport contents:\n%s", want, contents)
		}
	}
	if strings.Contains(contents, "Sin huellas de CMS") {
		t.Fatalf("did not expect the empty CMS message when a CMS was detected")
	}
}

func TestGenerateUnfilteredBadge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &config.Config{Input: "urls.txt", OutDir: dir, All: true}
	if err := Generate(cfg, &pipeline.Snapshot{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	contents := readFile(t, filepath.Join(dir, "report.html"))
	if !strings.Contains(contents, "Corpus completo") {
		t.Fatalf("expected unfiltered badge, got:\n%s", contents)
	}
	if strings.Contains(contents, "Filtro de rutas sensibles") {
		t.Fatalf("did not expect the filtered badge in unfiltered mode")
	}
}

func TestGenerateEmptySnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &config.Config{Input: "urls.txt", OutDir: dir}
	if err := Generate(cfg, &pipeline.Snapshot{}); err != nil {
		t.Fatalf("Generate with empty snapshot: %v", err)
	}

	contents := readFile(t, filepath.Join(dir, "report.html"))
	checks := []string{
		"Sin hallazgos destacados generados automáticamente.",
		"Sin huellas de CMS en las rutas analizadas.",
		"No se retuvo ningún directorio.",
		"No se retuvo ningún fichero.",
		"Ningún fichero cayó en una categoría por extensión.",
		"Sin parámetros observados.",
	}
	for _, want := range checks {
		if !strings.Contains(contents, want) {
			t.Fatalf("expected report.html to contain %q\nreport contents:\n%s", want, contents)
		}
	}
}

func TestGenerateRejectsMissingInputs(t *testing.T) {
	t.Parallel()

	if err := Generate(nil, &pipeline.Snapshot{}); err == nil {
		t.Fatalf("expected error for missing config")
	}
	if err := Generate(&config.Config{OutDir: t.TempDir()}, nil); err == nil {
		t.Fatalf("expected error for missing snapshot")
	}
}

func TestBuildDomainStatsGroupsRegistrable(t *testing.T) {
	t.Parallel()

	stats := buildDomainStats([]string{
		"",
		"api.example.co.uk",
		"portal.example.co.uk",
		"app.example.com:8443",
		"203.0.113.10",
	})

	if !stats.RelativeLines {
		t.Fatalf("expected RelativeLines to be set by the empty host entry")
	}
	if stats.Total != 4 {
		t.Fatalf("Total = %d, want 4", stats.Total)
	}
	if stats.UniqueRegistrable != 3 {
		t.Fatalf("UniqueRegistrable = %d, want 3", stats.UniqueRegistrable)
	}

	counts := make(map[string]int)
	for _, item := range stats.TopRegistrable {
		counts[item.Name] = item.Count
	}
	if counts["example.co.uk"] != 2 {
		t.Fatalf("example.co.uk count = %d, want 2", counts["example.co.uk"])
	}
	if counts["example.com"] != 1 {
		t.Fatalf("example.com count = %d, want 1", counts["example.com"])
	}
	if counts["203.0.113.10"] != 1 {
		t.Fatalf("203.0.113.10 count = %d, want 1", counts["203.0.113.10"])
	}
}

func TestBuildPathStatsDepth(t *testing.T) {
	t.Parallel()

	stats := buildPathStats([]string{"/a/", "/a/b/", "/x/"}, []string{"/a/c.php"})
	if stats.Directories != 3 {
		t.Fatalf("Directories = %d, want 3", stats.Directories)
	}
	if stats.Files != 1 {
		t.Fatalf("Files = %d, want 1", stats.Files)
	}
	if got := int(stats.AverageDepth*100 + 0.5); got != 133 {
		t.Fatalf("AverageDepth ≈ %.2f, want 1.33", stats.AverageDepth)
	}
	if len(stats.DepthHistogram) != 2 {
		t.Fatalf("DepthHistogram = %v, want two buckets", stats.DepthHistogram)
	}
	if stats.DepthHistogram[0].Name != "1 segmentos" || stats.DepthHistogram[0].Count != 2 {
		t.Fatalf("DepthHistogram[0] = %v, want 1 segmentos x2", stats.DepthHistogram[0])
	}
}

func TestBuildHighlightsRiskSignals(t *testing.T) {
	t.Parallel()

	snap := &pipeline.Snapshot{
		Directories: []string{"/.svn/"},
		Files:       []string{"/site.zip"},
		Params:      []string{"page_id", "q"},
		Categories:  map[string][]string{"zip": {"/site.zip"}},
	}
	highlights := buildHighlights(snap, buildCategoryRows(snap.Categories))

	joined := strings.Join(highlights, "\n")
	checks := []string{
		"Metadatos de control de versiones expuestos (ej. /.svn/)",
		"1 ficheros de respaldo o volcados accesibles (ej. /site.zip)",
		"Parámetros propensos a redirecciones o inclusión de ficheros: page_id",
	}
	for _, want := range checks {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected highlights to contain %q, got:\n%s", want, joined)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q): %v", path, err)
	}
	return string(data)
}
