package report

import (
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"url-intel/internal/core/pipeline"
	"url-intel/internal/platform/config"
	"url-intel/internal/platform/netutil"
)

// Generate renders an HTML report in cfg.OutDir from the aggregated snapshot.
func Generate(cfg *config.Config, snap *pipeline.Snapshot) error {
	if cfg == nil {
		return errors.New("report: missing config")
	}
	if snap == nil {
		return errors.New("report: missing snapshot")
	}

	domainStats := buildDomainStats(snap.Domains)
	pathStats := buildPathStats(snap.Directories, snap.Files)
	categories := buildCategoryRows(snap.Categories)

	data := reportData{
		Input:       cfg.Input,
		OutDir:      cfg.OutDir,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Unfiltered:  cfg.All,
		Overview: overviewStats{
			Processed: snap.Processed,
			Skipped:   snap.Skipped,
			Domains:   domainStats.Total,
			Paths:     pathStats.Directories + pathStats.Files,
			Params:    len(snap.Params),
		},
		Domains:    domainStats,
		Paths:      pathStats,
		Categories: categories,
		CMS:        snap.CMS,
		Params:     snap.Params,
		Highlights: buildHighlights(snap, categories),
	}

	reportPath := filepath.Join(cfg.OutDir, "report.html")
	f, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("report: create %q: %w", reportPath, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := reportTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}

type countItem struct {
	Name  string
	Count int
}

type overviewStats struct {
	Processed int
	Skipped   int
	Domains   int
	Paths     int
	Params    int
}

type domainStats struct {
	Total             int
	UniqueRegistrable int
	RelativeLines     bool
	TopRegistrable    []countItem
	Names             []string
}

type pathStats struct {
	Directories    int
	Files          int
	AverageDepth   float64
	DepthHistogram []countItem
	DirectoryList  []string
	FileList       []string
}

type categoryRow struct {
	Name  string
	Count int
	Files []string
}

type reportData struct {
	Input       string
	OutDir      string
	GeneratedAt string
	Unfiltered  bool
	Overview    overviewStats
	Domains     domainStats
	Paths       pathStats
	Categories  []categoryRow
	CMS         []string
	Params      []string
	Highlights  []string
}

const (
	topN           = 10
	maxListEntries = 25
)

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"hasData":    func(items []countItem) bool { return len(items) > 0 },
	"hasStrings": func(items []string) bool { return len(items) > 0 },
	"limit":      func(items []string, n int) []string { return limitStrings(items, n) },
}).Parse(reportTemplate))

var (
	vcsNeedles = []string{"/.git", "/.svn", "/.hg", "/.bzr"}

	riskyParamKeywords = []string{
		"redirect", "url", "next", "return", "callback", "dest", "file", "path", "page", "include", "template", "cmd", "exec", "debug", "token", "secret", "key",
	}
)

func buildDomainStats(domains []string) domainStats {
	stats := domainStats{}
	if len(domains) == 0 {
		return stats
	}
	registrableCounts := make(map[string]int)
	uniqueRegistrable := make(map[string]struct{})
	for _, raw := range domains {
		d := strings.TrimSpace(raw)
		if d == "" {
			// Líneas relativas del corpus: hay host registrado pero vacío.
			stats.RelativeLines = true
			continue
		}
		stats.Total++
		stats.Names = append(stats.Names, d)
		registrable := registrableDomain(d)
		if registrable == "" {
			continue
		}
		uniqueRegistrable[registrable] = struct{}{}
		registrableCounts[registrable]++
	}
	sort.Strings(stats.Names)
	stats.TopRegistrable = topItems(registrableCounts, topN)
	stats.UniqueRegistrable = len(uniqueRegistrable)
	return stats
}

func buildPathStats(dirs, files []string) pathStats {
	stats := pathStats{
		Directories:   len(dirs),
		Files:         len(files),
		DirectoryList: dirs,
		FileList:      files,
	}
	if len(dirs) == 0 {
		return stats
	}
	depthHistogram := make(map[string]int)
	var totalDepth int
	for _, dir := range dirs {
		depth := 0
		if trimmed := strings.Trim(dir, "/"); trimmed != "" {
			depth = len(strings.Split(trimmed, "/"))
		}
		depthHistogram[fmt.Sprintf("%d segmentos", depth)]++
		totalDepth += depth
	}
	stats.DepthHistogram = topItems(depthHistogram, len(depthHistogram))
	stats.AverageDepth = float64(totalDepth) / float64(len(dirs))
	return stats
}

func buildCategoryRows(categories map[string][]string) []categoryRow {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]categoryRow, 0, len(categories))
	for name, files := range categories {
		if len(files) == 0 {
			continue
		}
		rows = append(rows, categoryRow{Name: name, Count: len(files), Files: files})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}

func buildHighlights(snap *pipeline.Snapshot, categories []categoryRow) []string {
	var highlights []string
	if len(snap.CMS) > 0 {
		highlights = append(highlights, fmt.Sprintf("CMS identificado a partir de las rutas: %s", strings.Join(snap.CMS, ", ")))
	}
	if example := firstContaining(snap.Directories, snap.Files, vcsNeedles); example != "" {
		highlights = append(highlights, fmt.Sprintf("Metadatos de control de versiones expuestos (ej. %s)", example))
	}
	if count, example := categoryTotals(categories, "sql", "bak", "zip"); count > 0 {
		highlights = append(highlights, fmt.Sprintf("%d ficheros de respaldo o volcados accesibles (ej. %s)", count, example))
	}
	if count, example := categoryTotals(categories, "config"); count > 0 {
		highlights = append(highlights, fmt.Sprintf("%d ficheros de configuración alcanzables (ej. %s)", count, example))
	}
	if risky := riskyParams(snap.Params); len(risky) > 0 {
		highlights = append(highlights, fmt.Sprintf("Parámetros propensos a redirecciones o inclusión de ficheros: %s", strings.Join(limitStrings(risky, 3), ", ")))
	}
	if snap.Skipped > 0 {
		highlights = append(highlights, fmt.Sprintf("%d líneas del corpus quedaron fuera del scope configurado", snap.Skipped))
	}
	return highlights
}

func firstContaining(dirs, files, needles []string) string {
	for _, list := range [][]string{files, dirs} {
		for _, entry := range list {
			for _, needle := range needles {
				if strings.Contains(entry, needle) {
					return entry
				}
			}
		}
	}
	return ""
}

func categoryTotals(categories []categoryRow, names ...string) (int, string) {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	count := 0
	example := ""
	for _, row := range categories {
		if _, ok := wanted[row.Name]; !ok {
			continue
		}
		count += row.Count
		if example == "" && len(row.Files) > 0 {
			example = row.Files[0]
		}
	}
	return count, example
}

func riskyParams(params []string) []string {
	var risky []string
	for _, param := range params {
		lowered := strings.ToLower(param)
		for _, keyword := range riskyParamKeywords {
			if strings.Contains(lowered, keyword) {
				risky = append(risky, param)
				break
			}
		}
	}
	return risky
}

func registrableDomain(host string) string {
	normalized := netutil.NormalizeDomain(host)
	if normalized == "" {
		return ""
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(normalized)
	if err != nil {
		return normalized
	}
	return registrable
}

func topItems(counts map[string]int, n int) []countItem {
	if len(counts) == 0 || n == 0 {
		return nil
	}
	items := make([]countItem, 0, len(counts))
	for name, count := range counts {
		items = append(items, countItem{Name: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Name < items[j].Name
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

func limitStrings(values []string, max int) []string {
	if max <= 0 || len(values) <= max {
		return values
	}
	return values[:max]
}

const reportTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="utf-8">
	<title>Informe url-intel</title>
	<style>
		* {
			box-sizing: border-box;
		}
		body {
			font-family: "Inter", "Segoe UI", Arial, sans-serif;
			margin: 0;
			background: #0f172a;
			color: #0f172a;
		}
		.layout {
			max-width: 1100px;
			margin: 0 auto;
			padding: 2.5rem 2rem 3rem;
		}
		.masthead {
			display: flex;
			flex-wrap: wrap;
			justify-content: space-between;
			align-items: flex-end;
			gap: 1.5rem;
			padding: 2rem 2.5rem;
			background: linear-gradient(135deg, #1e293b 0%, #0f172a 55%, #1e293b 100%);
			border-radius: 20px;
			box-shadow: 0 25px 45px rgba(15, 23, 42, 0.35);
			color: #f8fafc;
		}
		.masthead h1 {
			margin: 0 0 0.35rem;
			font-size: 2rem;
			letter-spacing: 0.03em;
		}
		.masthead p {
			margin: 0.35rem 0;
			color: #e2e8f0;
		}
		.masthead strong {
			color: #facc15;
		}
		.meta-line {
			font-size: 0.9rem;
			color: #cbd5f5;
		}
		.badge-set {
			display: flex;
			flex-wrap: wrap;
			gap: 0.5rem;
			align-items: center;
		}
		.tag {
			display: inline-flex;
			align-items: center;
			font-size: 0.85rem;
			font-weight: 600;
			text-transform: uppercase;
			letter-spacing: 0.08em;
			border-radius: 999px;
			padding: 0.35rem 0.9rem;
		}
		.tag-product {
			background: rgba(248, 250, 252, 0.2);
			color: #f8fafc;
			border: 1px solid rgba(248, 250, 252, 0.3);
		}
		.tag-filtered {
			background: rgba(16, 185, 129, 0.18);
			color: #bbf7d0;
			border: 1px solid rgba(52, 211, 153, 0.45);
		}
		.tag-full {
			background: rgba(248, 113, 113, 0.18);
			color: #fecaca;
			border: 1px solid rgba(248, 113, 113, 0.45);
		}
		.quick-nav {
			display: flex;
			flex-wrap: wrap;
			gap: 0.75rem;
			margin: 1.75rem 0 2.25rem;
			padding: 0.85rem 1.25rem;
			background: rgba(15, 23, 42, 0.85);
			border-radius: 999px;
		}
		.quick-nav a {
			color: #f8fafc;
			text-decoration: none;
			font-size: 0.9rem;
			padding: 0.35rem 0.75rem;
			border-radius: 999px;
		}
		.quick-nav a:hover {
			background: rgba(248, 250, 252, 0.15);
		}
		main {
			display: flex;
			flex-direction: column;
			gap: 2rem;
		}
		section.panel {
			background: #ffffff;
			border-radius: 20px;
			padding: 1.75rem 2rem;
			box-shadow: 0 25px 45px rgba(15, 23, 42, 0.12);
		}
		section.panel h2 {
			margin-top: 0;
			font-size: 1.55rem;
			color: #0f172a;
		}
		section.panel h3 {
			color: #1e293b;
		}
		section.panel p {
			color: #334155;
			line-height: 1.6;
		}
		ul {
			padding-left: 1.5rem;
			color: #1f2937;
		}
		code {
			background: #f1f5f9;
			border-radius: 6px;
			padding: 0.1rem 0.35rem;
			font-size: 0.9em;
		}
		.muted {
			color: #94a3b8;
		}
		.cards {
			display: grid;
			grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
			gap: 1.15rem;
			margin-top: 1.35rem;
		}
		.card {
			border-radius: 16px;
			padding: 1.5rem;
			background: linear-gradient(165deg, rgba(15, 23, 42, 0.92) 0%, rgba(30, 41, 59, 0.85) 100%);
			color: #f8fafc;
			border: 1px solid rgba(148, 163, 184, 0.2);
		}
		.card h3 {
			margin: 0;
			font-size: 0.95rem;
			text-transform: uppercase;
			letter-spacing: 0.08em;
			color: #cbd5f5;
		}
		.metric {
			font-size: 2.6rem;
			font-weight: 600;
			margin: 0.5rem 0 0.35rem;
			color: #f8fafc;
		}
		.subtext {
			font-size: 0.95rem;
			color: #475569;
			margin-top: 0.35rem;
		}
		.card .subtext {
			color: #cbd5f5;
		}
		.grid {
			display: grid;
			grid-template-columns: repeat(auto-fit, minmax(280px, 1fr));
			gap: 1.5rem;
		}
		table {
			border-collapse: collapse;
			width: 100%;
			margin-top: 1.25rem;
			border-radius: 14px;
			overflow: hidden;
		}
		th,
		td {
			padding: 0.85rem 1rem;
			text-align: left;
			color: #1f2937;
		}
		th {
			background: #0f172a;
			color: #f8fafc;
			text-transform: uppercase;
			font-size: 0.78rem;
			letter-spacing: 0.08em;
		}
		tr:nth-child(even) td {
			background: #f8fafc;
		}
		.insights {
			list-style: none;
			padding: 0;
			margin: 1.25rem 0 0;
			display: grid;
			gap: 0.85rem;
		}
		.insights li {
			display: flex;
			gap: 0.75rem;
			align-items: flex-start;
			padding: 0.95rem 1.1rem;
			border: 1px solid #e2e8f0;
			border-radius: 14px;
			background: #f8fafc;
		}
		.insight-tag {
			display: inline-flex;
			align-items: center;
			padding: 0.35rem 0.75rem;
			font-size: 0.7rem;
			font-weight: 700;
			text-transform: uppercase;
			letter-spacing: 0.08em;
			border-radius: 999px;
			background: #dbeafe;
			color: #1d4ed8;
			flex-shrink: 0;
		}
		.insight-text {
			color: #1f2937;
		}
		footer {
			margin-top: 3rem;
			text-align: center;
			color: #cbd5f5;
			font-size: 0.85rem;
			line-height: 1.6;
		}
		@media (max-width: 768px) {
			.layout {
				padding: 1.75rem 1.25rem 2.5rem;
			}
			.masthead {
				padding: 1.5rem;
			}
			.cards {
				grid-template-columns: 1fr;
			}
		}
	</style>
</head>
<body>
	<div class="layout">
		<header class="masthead">
			<div>
				<h1>Informe de url-intel</h1>
				<p>Análisis pasivo del corpus <strong>{{.Input}}</strong></p>
				<p class="meta-line">Generado: {{.GeneratedAt}} · Directorio de salida: {{.OutDir}}</p>
			</div>
			<div class="badge-set">
				<span class="tag tag-product">url-intel</span>
				{{if .Unfiltered}}
				<span class="tag tag-full">Corpus completo</span>
				{{else}}
				<span class="tag tag-filtered">Filtro de rutas sensibles</span>
				{{end}}
			</div>
		</header>
		<nav class="quick-nav">
			<a href="#resumen">Resumen ejecutivo</a>
			<a href="#hallazgos">Hallazgos clave</a>
			<a href="#dominios">Dominios</a>
			<a href="#rutas">Rutas</a>
			<a href="#categorias">Categorías</a>
			<a href="#parametros">Parámetros</a>
		</nav>
		<main>
			<section id="resumen" class="panel">
				<h2>Resumen ejecutivo</h2>
				<p class="subtext">Vista rápida del material recolectado para priorizar la siguiente fase.</p>
				<div class="cards">
					<div class="card">
						<h3>URLs procesadas</h3>
						<p class="metric">{{.Overview.Processed}}</p>
						<p class="subtext">{{.Overview.Skipped}} líneas descartadas por el scope.</p>
					</div>
					<div class="card">
						<h3>Dominios únicos</h3>
						<p class="metric">{{.Overview.Domains}}</p>
						<p class="subtext">Incluye {{.Domains.UniqueRegistrable}} dominios registrables distintos.</p>
					</div>
					<div class="card">
						<h3>Rutas retenidas</h3>
						<p class="metric">{{.Overview.Paths}}</p>
						<p class="subtext">{{.Paths.Directories}} directorios y {{.Paths.Files}} ficheros.</p>
					</div>
					<div class="card">
						<h3>Parámetros únicos</h3>
						<p class="metric">{{.Overview.Params}}</p>
						<p class="subtext">Nombres de parámetros GET observados en el corpus.</p>
					</div>
				</div>
			</section>

			<section id="hallazgos" class="panel">
				<h2>Hallazgos clave</h2>
				{{if hasStrings .Highlights}}
				<ul class="insights">
					{{range .Highlights}}
					<li><span class="insight-tag">Hallazgo</span><span class="insight-text">{{.}}</span></li>
					{{end}}
				</ul>
				{{else}}
				<p class="muted">Sin hallazgos destacados generados automáticamente.</p>
				{{end}}
			</section>

			<section id="dominios" class="panel">
				<h2>Dominios</h2>
				<div class="grid">
					<div>
						<p><strong>Dominios únicos:</strong> {{.Domains.Total}} (registrables: {{.Domains.UniqueRegistrable}})</p>
						{{if .Domains.RelativeLines}}
						<p><strong>Líneas relativas:</strong> el corpus contiene rutas sin host.</p>
						{{end}}
					</div>
					<div>
						<p class="subtext">Los dominios con más rutas ayudan a identificar los activos con mayor superficie.</p>
					</div>
				</div>
				{{if hasData .Domains.TopRegistrable}}
				<h3>Hosts por dominio registrable</h3>
				<table>
					<tr><th>Dominio</th><th>Hosts</th></tr>
					{{range .Domains.TopRegistrable}}
					<tr><td>{{.Name}}</td><td>{{.Count}}</td></tr>
					{{end}}
				</table>
				{{end}}
				{{if hasStrings .Domains.Names}}
				<h3>Dominios observados</h3>
				<ul>
					{{range (limit .Domains.Names 25)}}
					<li><code>{{.}}</code></li>
					{{end}}
				</ul>
				{{if gt (len .Domains.Names) 25}}
				<p class="muted">Mostrando 25 de {{len .Domains.Names}} dominios.</p>
				{{end}}
				{{end}}
				<h3>CMS detectados</h3>
				{{if hasStrings .CMS}}
				<ul>
					{{range .CMS}}
					<li>{{.}}</li>
					{{end}}
				</ul>
				{{else}}
				<p class="muted">Sin huellas de CMS en las rutas analizadas.</p>
				{{end}}
			</section>

			<section id="rutas" class="panel">
				<h2>Rutas</h2>
				<div class="grid">
					<div>
						<p><strong>Directorios:</strong> {{.Paths.Directories}}</p>
						<p><strong>Ficheros:</strong> {{.Paths.Files}}</p>
						<p><strong>Profundidad promedio:</strong> {{printf "%.2f" .Paths.AverageDepth}}</p>
					</div>
					<div>
						<p class="subtext">Directorios y ficheros retenidos tras aplicar las reglas de sensibilidad, listos para alimentar wordlists.</p>
					</div>
				</div>
				{{if hasData .Paths.DepthHistogram}}
				<h3>Profundidad de directorios</h3>
				<table>
					<tr><th>Segmentos</th><th>Conteo</th></tr>
					{{range .Paths.DepthHistogram}}
					<tr><td>{{.Name}}</td><td>{{.Count}}</td></tr>
					{{end}}
				</table>
				{{end}}
				<h3>Directorios</h3>
				{{if hasStrings .Paths.DirectoryList}}
				<ul>
					{{range (limit .Paths.DirectoryList 25)}}
					<li><code>{{.}}</code></li>
					{{end}}
				</ul>
				{{if gt (len .Paths.DirectoryList) 25}}
				<p class="muted">Mostrando 25 de {{len .Paths.DirectoryList}} directorios.</p>
				{{end}}
				{{else}}
				<p class="muted">No se retuvo ningún directorio.</p>
				{{end}}
				<h3>Ficheros</h3>
				{{if hasStrings .Paths.FileList}}
				<ul>
					{{range (limit .Paths.FileList 25)}}
					<li><code>{{.}}</code></li>
					{{end}}
				</ul>
				{{if gt (len .Paths.FileList) 25}}
				<p class="muted">Mostrando 25 de {{len .Paths.FileList}} ficheros.</p>
				{{end}}
				{{else}}
				<p class="muted">No se retuvo ningún fichero.</p>
				{{end}}
			</section>

			<section id="categorias" class="panel">
				<h2>Categorías de ficheros</h2>
				{{if .Categories}}
				<table>
					<tr><th>Categoría</th><th>Ficheros</th></tr>
					{{range .Categories}}
					<tr><td>{{.Name}}</td><td>{{.Count}}</td></tr>
					{{end}}
				</table>
				{{range .Categories}}
				<h3>{{.Name}}</h3>
				<ul>
					{{range (limit .Files 10)}}
					<li><code>{{.}}</code></li>
					{{end}}
				</ul>
				{{if gt (len .Files) 10}}
				<p class="muted">Mostrando 10 de {{len .Files}} ficheros.</p>
				{{end}}
				{{end}}
				{{else}}
				<p class="muted">Ningún fichero cayó en una categoría por extensión.</p>
				{{end}}
			</section>

			<section id="parametros" class="panel">
				<h2>Parámetros</h2>
				{{if hasStrings .Params}}
				<ul>
					{{range .Params}}
					<li><code>{{.}}</code></li>
					{{end}}
				</ul>
				{{else}}
				<p class="muted">Sin parámetros observados.</p>
				{{end}}
			</section>
		</main>
		<footer>
			<p>Este informe resume un análisis puramente pasivo de un corpus de URLs. Revise los hallazgos y priorice las rutas según el apetito de riesgo de la organización.</p>
		</footer>
	</div>
</body>
</html>`
