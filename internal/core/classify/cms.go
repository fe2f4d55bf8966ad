package classify

import "strings"

// Fingerprint asocia una subcadena de ruta con el CMS que delata.
type Fingerprint struct {
	Needle string
	CMS    string
}

// Fingerprinter detecta CMS por subcadenas exactas en la ruta. La
// comparación es sensible a mayúsculas, al contrario que el Matcher de
// sensibilidad.
type Fingerprinter struct {
	prints []Fingerprint
}

// NewFingerprinter construye un Fingerprinter sobre las huellas dadas.
func NewFingerprinter(prints []Fingerprint) *Fingerprinter {
	return &Fingerprinter{prints: prints}
}

// Detect devuelve los CMS detectados en la ruta, sin duplicados, en orden
// de declaración. Varias huellas pueden disparar sobre la misma ruta.
func (f *Fingerprinter) Detect(path string) []string {
	var hits []string
	seen := map[string]bool{}
	for _, fp := range f.prints {
		if strings.Contains(path, fp.Needle) && !seen[fp.CMS] {
			seen[fp.CMS] = true
			hits = append(hits, fp.CMS)
		}
	}
	return hits
}

// DefaultFingerprints devuelve las huellas integradas.
func DefaultFingerprints() []Fingerprint {
	return []Fingerprint{
		{Needle: "wp-admin", CMS: "WordPress"},
		{Needle: "wp-content", CMS: "WordPress"},
		{Needle: "public/index.php", CMS: "Laravel"},
	}
}
