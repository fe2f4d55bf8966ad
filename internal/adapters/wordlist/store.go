// Package wordlist persiste los conjuntos del análisis como wordlists
// deduplicadas que crecen de forma monótona entre ejecuciones.
package wordlist

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"url-intel/internal/core/pipeline"
	"url-intel/internal/platform/logx"
)

// Store escribe listas bajo un directorio raíz con semántica merge-on-write:
// cada escritura reescribe el archivo con la unión ordenada de lo previo y
// lo nuevo. No es seguro frente a escritores concurrentes sobre la misma
// lista; dentro de una ejecución cada lista tiene un único escritor.
type Store struct {
	dir string
}

// NewStore construye un Store sobre el directorio dado, que se crea en la
// primera escritura si no existe.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir devuelve el directorio raíz del Store.
func (s *Store) Dir() string {
	return s.dir
}

// MergeWrite une items con el contenido previo de la lista y reescribe el
// archivo completo, ordenado y sin duplicados, una entrada por línea. Los
// items vacíos o con saltos de línea no caben en el formato y no se
// escriben. Reescribir los mismos items deja el archivo byte a byte
// idéntico.
func (s *Store) MergeWrite(name string, items []string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)

	merged, err := readExisting(path)
	if err != nil {
		return err
	}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || strings.ContainsAny(item, "\r\n") {
			continue
		}
		merged[item] = struct{}{}
	}

	combined := make([]string, 0, len(merged))
	for item := range merged {
		combined = append(combined, item)
	}
	sort.Strings(combined)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	buf := bufio.NewWriterSize(file, 64*1024)
	for _, line := range combined {
		if _, err := buf.WriteString(line); err != nil {
			file.Close()
			return err
		}
		if err := buf.WriteByte('\n'); err != nil {
			file.Close()
			return err
		}
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteSnapshot persiste un snapshot completo: dirs.txt, files.txt y
// params.txt siempre (aunque estén vacíos) más un <categoría>.txt por cada
// categoría con contenido. Las listas son independientes y se escriben en
// paralelo, una goroutine por archivo.
func (s *Store) WriteSnapshot(snap *pipeline.Snapshot) error {
	lists := map[string][]string{
		"dirs.txt":   snap.Directories,
		"files.txt":  snap.Files,
		"params.txt": snap.Params,
	}
	for category, paths := range snap.Categories {
		if len(paths) == 0 {
			continue
		}
		lists[category+".txt"] = paths
	}

	var g errgroup.Group
	for name, items := range lists {
		name, items := name, items
		g.Go(func() error {
			if err := s.MergeWrite(name, items); err != nil {
				return err
			}
			logx.Debugf("lista %s: %d entradas de esta pasada", name, len(items))
			return nil
		})
	}
	return g.Wait()
}

// readExisting carga las líneas no vacías de una lista previa. Un archivo
// ausente es una lista vacía; las líneas no decodificables se descartan.
func readExisting(path string) (map[string]struct{}, error) {
	set := make(map[string]struct{})

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	for scanner.Scan() {
		line := strings.ToValidUTF8(strings.TrimSpace(scanner.Text()), "")
		if line == "" {
			continue
		}
		set[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
