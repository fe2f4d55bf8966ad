package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"url-intel/internal/core/classify"
	"url-intel/internal/platform/netutil"
)

func defaultMatcher(t *testing.T) *classify.Matcher {
	t.Helper()
	m, err := classify.NewMatcher(classify.DefaultRules())
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}
	return m
}

func defaultOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Matcher:       defaultMatcher(t),
		Categorizer:   classify.NewCategorizer(classify.DefaultCategories()),
		Fingerprinter: classify.NewFingerprinter(classify.DefaultFingerprints()),
	}
}

func TestAggregatorEndToEnd(t *testing.T) {
	agg := New(defaultOptions(t))
	agg.Run([]string{
		"https://x.com/wp-admin/login.php?redirect=1",
		"https://x.com/about/",
	})

	want := &Snapshot{
		Domains:     []string{"x.com"},
		Directories: []string{"/wp-admin/"},
		Files:       []string{"/wp-admin/login.php"},
		Params:      []string{"redirect"},
		CMS:         []string{"WordPress"},
		Categories:  map[string][]string{"php": {"/wp-admin/login.php"}},
		Processed:   2,
	}

	if diff := cmp.Diff(want, agg.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorNilMatcherUnfiltered(t *testing.T) {
	opts := defaultOptions(t)
	opts.Matcher = nil

	agg := New(opts)
	agg.Run([]string{
		"https://x.com/wp-admin/login.php?redirect=1",
		"https://x.com/about/",
	})

	want := &Snapshot{
		Domains:     []string{"x.com"},
		Directories: []string{"/about/", "/wp-admin/"},
		Files:       []string{"/wp-admin/login.php"},
		Params:      []string{"redirect"},
		CMS:         []string{"WordPress"},
		Categories:  map[string][]string{"php": {"/wp-admin/login.php"}},
		Processed:   2,
	}

	if diff := cmp.Diff(want, agg.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorDirectoryCandidates(t *testing.T) {
	opts := Options{} // sin matcher: todo pasa

	t.Run("file path contributes prefixes only", func(t *testing.T) {
		agg := New(opts)
		agg.Process("https://x.com/a/b/c.php")

		snap := agg.Snapshot()
		wantDirs := []string{"/a/", "/a/b/"}
		if diff := cmp.Diff(wantDirs, snap.Directories); diff != "" {
			t.Fatalf("directories mismatch (-want +got):\n%s", diff)
		}
		wantFiles := []string{"/a/b/c.php"}
		if diff := cmp.Diff(wantFiles, snap.Files); diff != "" {
			t.Fatalf("files mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("directory path contributes itself too", func(t *testing.T) {
		agg := New(opts)
		agg.Process("https://x.com/a/b/c/")

		snap := agg.Snapshot()
		wantDirs := []string{"/a/", "/a/b/", "/a/b/c/"}
		if diff := cmp.Diff(wantDirs, snap.Directories); diff != "" {
			t.Fatalf("directories mismatch (-want +got):\n%s", diff)
		}
		if len(snap.Files) != 0 {
			t.Fatalf("expected no files, got %v", snap.Files)
		}
	})
}

func TestAggregatorEmptyHostRecorded(t *testing.T) {
	agg := New(defaultOptions(t))
	agg.Run([]string{
		"/admin/",
		"https://x.com/",
	})

	snap := agg.Snapshot()

	wantDomains := []string{"", "x.com"}
	if diff := cmp.Diff(wantDomains, snap.Domains); diff != "" {
		t.Fatalf("domains mismatch (-want +got):\n%s", diff)
	}

	wantDirs := []string{"/admin/"}
	if diff := cmp.Diff(wantDirs, snap.Directories); diff != "" {
		t.Fatalf("directories mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorHostPortLine(t *testing.T) {
	agg := New(defaultOptions(t))
	agg.Process("example.com:8080/wp-admin/")

	snap := agg.Snapshot()

	// "host:8080/..." se parsea como esquema más resto opaco; el resto se
	// analiza como ruta, sin host.
	if diff := cmp.Diff([]string{""}, snap.Domains); diff != "" {
		t.Fatalf("domains mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"8080/wp-admin/"}, snap.Directories); diff != "" {
		t.Fatalf("directories mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"WordPress"}, snap.CMS); diff != "" {
		t.Fatalf("cms mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorEncodedPathStaysEncoded(t *testing.T) {
	agg := New(defaultOptions(t))
	agg.Run([]string{
		"https://x.com/wp%2Dadmin/",
		"https://x.com/backup%0A.sql",
	})

	snap := agg.Snapshot()

	// "%2D" no se decodifica: la ruta no contiene "wp-admin" y no dispara
	// ni reglas ni fingerprints.
	if len(snap.Directories) != 0 {
		t.Fatalf("expected no directories, got %v", snap.Directories)
	}
	if len(snap.CMS) != 0 {
		t.Fatalf("expected no CMS hits, got %v", snap.CMS)
	}

	// "%0A" sigue siendo tres caracteres, nunca un salto de línea.
	if diff := cmp.Diff([]string{"/backup%0A.sql"}, snap.Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorRootPathStopsEarly(t *testing.T) {
	agg := New(defaultOptions(t))
	agg.Run([]string{
		"https://x.com/?redirect=1",
		"https://x.com",
	})

	snap := agg.Snapshot()

	// Con path vacío o "/" solo se registra el host; los parámetros de la
	// query no se extraen.
	if diff := cmp.Diff([]string{"x.com"}, snap.Domains); diff != "" {
		t.Fatalf("domains mismatch (-want +got):\n%s", diff)
	}
	if len(snap.Params) != 0 {
		t.Fatalf("expected no params for root paths, got %v", snap.Params)
	}
}

func TestAggregatorScopeFilter(t *testing.T) {
	scope, err := netutil.NewScope([]string{"example.com"})
	if err != nil {
		t.Fatalf("NewScope failed: %v", err)
	}

	opts := defaultOptions(t)
	opts.Scope = scope

	agg := New(opts)
	agg.Run([]string{
		"https://example.com/admin/",
		"https://evil.net/admin/",
		"/relative/admin/",
	})

	snap := agg.Snapshot()

	if snap.Processed != 2 || snap.Skipped != 1 {
		t.Fatalf("processed/skipped = %d/%d, want 2/1", snap.Processed, snap.Skipped)
	}

	// La línea relativa (host vacío) pasa el scope.
	wantDomains := []string{"", "example.com"}
	if diff := cmp.Diff(wantDomains, snap.Domains); diff != "" {
		t.Fatalf("domains mismatch (-want +got):\n%s", diff)
	}

	wantDirs := []string{"/admin/", "/relative/admin/"}
	if diff := cmp.Diff(wantDirs, snap.Directories); diff != "" {
		t.Fatalf("directories mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorCMSCaseSensitive(t *testing.T) {
	agg := New(defaultOptions(t))
	agg.Process("https://x.com/WP-ADMIN/")

	snap := agg.Snapshot()

	// El matcher de sensibilidad ignora mayúsculas; el fingerprinter no.
	if diff := cmp.Diff([]string{"/WP-ADMIN/"}, snap.Directories); diff != "" {
		t.Fatalf("directories mismatch (-want +got):\n%s", diff)
	}
	if len(snap.CMS) != 0 {
		t.Fatalf("expected no CMS hits for upper-case path, got %v", snap.CMS)
	}
}

func TestAggregatorCategoriesOnlySensitiveFiles(t *testing.T) {
	agg := New(defaultOptions(t))
	agg.Run([]string{
		"https://x.com/readme.html",
		"https://x.com/landing.html",
	})

	snap := agg.Snapshot()

	wantFiles := []string{"/readme.html"}
	if diff := cmp.Diff(wantFiles, snap.Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}

	wantCats := map[string][]string{"html": {"/readme.html"}}
	if diff := cmp.Diff(wantCats, snap.Categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorDuplicateLines(t *testing.T) {
	agg := New(defaultOptions(t))
	agg.Run([]string{
		"https://x.com/backup.sql",
		"https://x.com/backup.sql",
	})

	snap := agg.Snapshot()

	if snap.Processed != 2 {
		t.Fatalf("processed = %d, want 2", snap.Processed)
	}
	if diff := cmp.Diff([]string{"/backup.sql"}, snap.Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x.com"}, snap.Domains); diff != "" {
		t.Fatalf("domains mismatch (-want +got):\n%s", diff)
	}
}

type recordingReporter struct {
	started int
	steps   int
	done    int
	total   int
}

func (r *recordingReporter) Start(total int) { r.started++; r.total = total }

func (r *recordingReporter) Step(done, total int) { r.steps++ }

func (r *recordingReporter) Done() { r.done++ }

func TestAggregatorReporterEvents(t *testing.T) {
	reporter := &recordingReporter{}

	opts := defaultOptions(t)
	opts.Reporter = reporter

	agg := New(opts)
	agg.Run([]string{"https://x.com/a/", "https://x.com/b/"})

	if reporter.started != 1 || reporter.done != 1 {
		t.Fatalf("start/done = %d/%d, want 1/1", reporter.started, reporter.done)
	}
	if reporter.total != 2 {
		t.Fatalf("reported total = %d, want 2", reporter.total)
	}
	if reporter.steps != 2 {
		t.Fatalf("steps = %d, want 2", reporter.steps)
	}
}
