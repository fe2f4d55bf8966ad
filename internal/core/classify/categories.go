package classify

import "strings"

// CategoryOthers es la categoría por defecto cuando ningún sufijo coincide.
const CategoryOthers = "others"

// CategorySpec asocia un nombre de categoría con sus sufijos de archivo.
// El orden de declaración de la tabla forma parte del contrato: gana la
// primera entrada cuyo sufijo coincida.
type CategorySpec struct {
	Name     string   `yaml:"name" json:"name"`
	Suffixes []string `yaml:"suffixes" json:"suffixes"`
}

// Categorizer asigna rutas de archivo a categorías por sufijo.
type Categorizer struct {
	table []CategorySpec
}

// NewCategorizer construye un Categorizer sobre la tabla dada, que se trata
// como inmutable a partir de aquí.
func NewCategorizer(table []CategorySpec) *Categorizer {
	return &Categorizer{table: table}
}

// Categorize devuelve el nombre de la primera categoría (en orden de tabla)
// con un sufijo que coincida con la ruta en minúsculas, o CategoryOthers si
// ninguna coincide.
func (c *Categorizer) Categorize(path string) string {
	lowered := strings.ToLower(path)
	for _, spec := range c.table {
		for _, suffix := range spec.Suffixes {
			if strings.HasSuffix(lowered, suffix) {
				return spec.Name
			}
		}
	}
	return CategoryOthers
}

// DefaultCategories devuelve la tabla integrada de categorías por extensión.
func DefaultCategories() []CategorySpec {
	return []CategorySpec{
		{Name: "js", Suffixes: []string{".js"}},
		{Name: "json", Suffixes: []string{".json"}},
		{Name: "php", Suffixes: []string{".php"}},
		{Name: "asp", Suffixes: []string{".asp", ".aspx"}},
		{Name: "jsp", Suffixes: []string{".jsp"}},
		{Name: "html", Suffixes: []string{".html", ".htm"}},
		{Name: "txt", Suffixes: []string{".txt", ".log"}},
		{Name: "xml", Suffixes: []string{".xml"}},
		{Name: "sql", Suffixes: []string{".sql"}},
		{Name: "config", Suffixes: []string{".conf", ".config", ".ini", ".env"}},
		{Name: "zip", Suffixes: []string{".zip", ".tar", ".gz", ".rar", ".7z"}},
		{Name: "bak", Suffixes: []string{".bak", ".old", ".backup"}},
		{Name: "css", Suffixes: []string{".css"}},
	}
}
