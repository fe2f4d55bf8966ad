package pipeline

import (
	"sort"

	"url-intel/internal/core/classify"
	"url-intel/internal/core/urlx"
	"url-intel/internal/platform/logx"
	"url-intel/internal/platform/netutil"
)

// Reporter recibe el avance del recorrido del corpus. La presentación
// (barra de progreso, spinner) vive fuera del core; el agregador solo emite
// los eventos.
type Reporter interface {
	Start(total int)
	Step(done, total int)
	Done()
}

// Options configura un Aggregator. Matcher nil desactiva el filtro de
// sensibilidad (todo pasa); Scope nil desactiva el filtro de dominio;
// Reporter nil silencia el progreso.
type Options struct {
	Matcher       *classify.Matcher
	Categorizer   *classify.Categorizer
	Fingerprinter *classify.Fingerprinter
	Scope         *netutil.Scope
	Reporter      Reporter
}

// Aggregator acumula los resultados de una pasada secuencial del corpus:
// dominios, directorios, archivos, parámetros, CMS y categorías.
type Aggregator struct {
	opts   Options
	dedupe *Dedupe

	domains    []string
	dirs       []string
	files      []string
	params     []string
	cms        []string
	categories map[string][]string

	processed int
	skipped   int
}

// New crea un Aggregator vacío con las opciones dadas.
func New(opts Options) *Aggregator {
	return &Aggregator{
		opts:       opts,
		dedupe:     NewDedupe(),
		categories: make(map[string][]string),
	}
}

// Process analiza una línea del corpus y actualiza los conjuntos. Nunca
// falla: las líneas malformadas degradan en urlx.Parse.
func (a *Aggregator) Process(raw string) {
	parts := urlx.Parse(raw)

	// El scope solo descarta líneas con host presente; las rutas relativas
	// pertenecen al scope actual.
	if a.opts.Scope != nil && parts.Host != "" && !a.opts.Scope.AllowsDomain(parts.Host) {
		a.skipped++
		logx.Debugf("fuera de scope: %s", raw)
		return
	}

	a.processed++

	// El host se registra siempre, incluido el vacío de líneas relativas.
	a.add(keyspaceDomain, parts.Host, &a.domains)

	path := parts.Path
	if path == "" || path == "/" {
		return
	}

	// Prefijos de directorio, cada uno evaluado por separado
	for _, dir := range urlx.DirectoryCandidates(path) {
		if a.matches(dir) {
			a.add(keyspaceDir, dir, &a.dirs)
		}
	}

	if urlx.IsFilePath(path) {
		if a.matches(path) {
			a.add(keyspaceFile, path, &a.files)
			if a.opts.Categorizer != nil {
				a.addCategory(a.opts.Categorizer.Categorize(path), path)
			}
		}
	} else {
		dir := urlx.NormalizeDir(path)
		if a.matches(dir) {
			a.add(keyspaceDir, dir, &a.dirs)
		}
	}

	if a.opts.Fingerprinter != nil {
		for _, cms := range a.opts.Fingerprinter.Detect(path) {
			a.add(keyspaceCMS, cms, &a.cms)
		}
	}

	for _, name := range urlx.ParamNames(parts.Query) {
		a.add(keyspaceParam, name, &a.params)
	}
}

// Run recorre el corpus secuencialmente notificando el avance al Reporter.
func (a *Aggregator) Run(urls []string) {
	total := len(urls)
	if a.opts.Reporter != nil {
		a.opts.Reporter.Start(total)
	}
	for i, raw := range urls {
		a.Process(raw)
		if a.opts.Reporter != nil {
			a.opts.Reporter.Step(i+1, total)
		}
	}
	if a.opts.Reporter != nil {
		a.opts.Reporter.Done()
	}
}

func (a *Aggregator) matches(path string) bool {
	if a.opts.Matcher == nil {
		return true
	}
	ok, rule := a.opts.Matcher.Explain(path)
	if ok {
		logx.Trace("regla disparada", logx.Fields{"regla": rule.ID, "ruta": path})
	}
	return ok
}

func (a *Aggregator) add(space, key string, list *[]string) {
	if a.dedupe.Seen(space, key) {
		return
	}
	*list = append(*list, key)
}

func (a *Aggregator) addCategory(category, path string) {
	if a.dedupe.Seen(keyspaceCat+category, path) {
		return
	}
	a.categories[category] = append(a.categories[category], path)
}

// Snapshot es el resultado inmutable de una pasada, con todas las
// colecciones ordenadas ascendentemente.
type Snapshot struct {
	Domains     []string
	Directories []string
	Files       []string
	Params      []string
	CMS         []string
	Categories  map[string][]string

	Processed int
	Skipped   int
}

// Snapshot materializa el estado acumulado. El Aggregator puede seguir
// procesando después; el snapshot no se ve afectado.
func (a *Aggregator) Snapshot() *Snapshot {
	snap := &Snapshot{
		Domains:     sortedCopy(a.domains),
		Directories: sortedCopy(a.dirs),
		Files:       sortedCopy(a.files),
		Params:      sortedCopy(a.params),
		CMS:         sortedCopy(a.cms),
		Categories:  make(map[string][]string, len(a.categories)),
		Processed:   a.processed,
		Skipped:     a.skipped,
	}
	for category, paths := range a.categories {
		snap.Categories[category] = sortedCopy(paths)
	}
	return snap
}

func sortedCopy(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	sort.Strings(out)
	return out
}
