// Package urlx descompone líneas de URL en sus componentes y aporta la
// aritmética de rutas del pipeline de análisis.
package urlx

import (
	"net/url"
	"sort"
	"strings"
)

// Parts contiene los componentes de una línea de entrada. Las instancias
// son inmutables: se construyen una vez por línea y se descartan tras la
// pasada del corpus.
type Parts struct {
	Raw    string
	Scheme string
	Host   string
	Path   string
	Query  string
}

// Parse descompone una línea cruda en sus componentes de URL. Nunca falla:
// las líneas que net/url rechaza de plano degradan a un Parts cuyo Path es
// la línea completa, así que una entrada malformada nunca aborta el lote.
// La ruta conserva su percent-encoding: "%0A" sigue siendo tres caracteres,
// nunca un salto de línea. Las líneas opacas tipo "host:8080/ruta" aportan
// el resto opaco como ruta.
func Parse(raw string) Parts {
	parsed, err := url.Parse(raw)
	if err != nil {
		return Parts{Raw: raw, Path: raw}
	}
	path := parsed.EscapedPath()
	if path == "" && parsed.Opaque != "" {
		path = parsed.Opaque
	}
	return Parts{
		Raw:    raw,
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   path,
		Query:  parsed.RawQuery,
	}
}

// Segments parte la ruta por "/" tras quitar las barras inicial y final.
// Los segmentos vacíos interiores (de "//") se conservan. Una ruta vacía o
// "/" devuelve nil.
func Segments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// IsFilePath indica si el último segmento crudo de la ruta contiene un
// punto. "/app/v2/config.php" es archivo; "/app/v2/" no. El segmento tras
// una barra final es vacío, así que "/.git" es archivo y "/.git/" es
// directorio.
func IsFilePath(path string) bool {
	segments := strings.Split(path, "/")
	return strings.Contains(segments[len(segments)-1], ".")
}

// DirectoryCandidates devuelve los prefijos propios de directorio de una
// ruta, cada uno envuelto en barras: "/a/b/c.php" produce "/a/" y "/a/b/".
// La ruta completa nunca se incluye; decide el llamante si cuenta como
// directorio (ver NormalizeDir).
func DirectoryCandidates(path string) []string {
	segments := Segments(path)
	if len(segments) < 2 {
		return nil
	}
	candidates := make([]string, 0, len(segments)-1)
	for i := 1; i < len(segments); i++ {
		candidates = append(candidates, "/"+strings.Join(segments[:i], "/")+"/")
	}
	return candidates
}

// NormalizeDir devuelve la ruta con barra final, añadiéndola solo si falta.
// El resto de la ruta queda intacto.
func NormalizeDir(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}

// ParamNames extrae los nombres de parámetros de la query, ordenados,
// descartando los nombres cuyos valores son todos vacíos. El parseo es
// permisivo: los pares que no se pueden decodificar se ignoran, nunca
// abortan.
func ParamNames(query string) []string {
	if query == "" {
		return nil
	}

	values, _ := url.ParseQuery(query)
	if len(values) == 0 {
		return nil
	}

	names := make([]string, 0, len(values))
	for name, vals := range values {
		if name == "" {
			continue
		}
		for _, v := range vals {
			if v != "" {
				names = append(names, name)
				break
			}
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return names
}
