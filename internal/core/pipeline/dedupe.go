package pipeline

import "sync"

// Dedupe ofrece deduplicación exacta en memoria por keyspace, de modo que
// cada colección del agregado mantiene su propio conjunto sin contaminarse
// entre sí. La clave vacía es válida: el host vacío de una línea relativa
// también se deduplica.
type Dedupe struct {
	mu   sync.Mutex
	seen map[string]map[string]struct{}
}

// NewDedupe crea un deduplicador vacío listo para usar.
func NewDedupe() *Dedupe {
	return &Dedupe{seen: make(map[string]map[string]struct{})}
}

// Seen marca la clave dentro del keyspace indicado y devuelve true si ya
// estaba registrada.
func (d *Dedupe) Seen(space, key string) bool {
	if d == nil || space == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	bucket := d.seen[space]
	if bucket == nil {
		bucket = make(map[string]struct{})
		d.seen[space] = bucket
	}
	if _, ok := bucket[key]; ok {
		return true
	}
	bucket[key] = struct{}{}
	return false
}

const (
	keyspaceDomain = "domain"
	keyspaceDir    = "dir"
	keyspaceFile   = "file"
	keyspaceParam  = "param"
	keyspaceCMS    = "cms"
	keyspaceCat    = "cat:" // prefijo, un keyspace por categoría
)
