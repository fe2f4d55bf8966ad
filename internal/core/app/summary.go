package app

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"url-intel/internal/core/pipeline"
)

// Paleta ANSI del resumen de consola. Vacía cuando stdout no es terminal,
// con lo que cada escritura degrada a texto plano.
type palette struct {
	header string
	cyan   string
	green  string
	blue   string
	warn   string
	fail   string
	bold   string
	reset  string
}

func newPalette(colored bool) palette {
	if !colored {
		return palette{}
	}
	return palette{
		header: "\033[95m",
		cyan:   "\033[96m",
		green:  "\033[92m",
		blue:   "\033[94m",
		warn:   "\033[93m",
		fail:   "\033[91m",
		bold:   "\033[1m",
		reset:  "\033[0m",
	}
}

const bannerBox = `╔═══════════════════════════════════════════════╗
║             🛡️  url-intel v1.0  🕵️            ║
║     Advanced URL Intelligence & Analyzer      ║
╚═══════════════════════════════════════════════╝`

func printBanner(w io.Writer, pal palette) {
	fmt.Fprintf(w, "%s\n%s\n%s\n", pal.cyan, bannerBox, pal.reset)
}

// printSavedLists pinta una línea "[+] Saved ..." por categoría no vacía,
// con el conteo de esta pasada (no el acumulado del fichero).
func printSavedLists(w io.Writer, pal palette, outDir string, snap *pipeline.Snapshot) {
	for _, cat := range categoryNames(snap.Categories) {
		paths := snap.Categories[cat]
		if len(paths) == 0 {
			continue
		}
		target := filepath.Join(outDir, cat+".txt")
		fmt.Fprintf(w, "%s[+] Saved %d %s paths to %s%s\n", pal.green, len(paths), strings.ToUpper(cat), target, pal.reset)
	}
}

func printSummary(w io.Writer, pal palette, snap *pipeline.Snapshot) {
	fmt.Fprintf(w, "\n%s%s📊 Summary Report:%s\n", pal.header, pal.bold, pal.reset)

	fmt.Fprintf(w, "%s🌐 Domains found: %d\n", pal.cyan, len(snap.Domains))
	for _, d := range snap.Domains {
		fmt.Fprintf(w, "   - %s\n", d)
	}

	fmt.Fprintf(w, "%s📁 Total directories: %d\n", pal.green, len(snap.Directories))
	fmt.Fprintf(w, "%s📄 Total files: %d\n", pal.blue, len(snap.Files))

	fmt.Fprintf(w, "%s🔍 Parameters Extracted: %d\n", pal.warn, len(snap.Params))
	for _, p := range snap.Params {
		fmt.Fprintf(w, "   - %s\n", p)
	}

	cms := "None"
	if len(snap.CMS) > 0 {
		cms = strings.Join(snap.CMS, ", ")
	}
	fmt.Fprintf(w, "%s🧩 CMS Detection Hits: %s%s\n", pal.fail, cms, pal.reset)

	fmt.Fprintf(w, "%s\n📂 File Extensions Breakdown:%s\n", pal.bold, pal.reset)
	for _, cat := range categoryNames(snap.Categories) {
		fmt.Fprintf(w, " - %s: %d\n", strings.ToUpper(cat), len(snap.Categories[cat]))
	}
}

func printClosing(w io.Writer, pal palette, outDir string) {
	fmt.Fprintf(w, "\n%s✅ All results saved in '%s/' folder. Happy hacking! 🚀%s\n",
		pal.green, strings.TrimSuffix(outDir, "/"), pal.reset)
}

func categoryNames(categories map[string][]string) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
