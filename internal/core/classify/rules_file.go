package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "url-intel/internal/platform/errors"
)

// LoadRules lee una lista de reglas desde un archivo YAML (una secuencia de
// entradas con claves id, group y pattern). El conjunto cargado sustituye
// por completo a DefaultRules; no se mezclan.
func LoadRules(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo de reglas %q: %w", path, err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("no se pudo parsear el archivo de reglas %q: %w", path, err)
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("el archivo de reglas %q no contiene ninguna regla", path)
	}

	for i, rule := range rules {
		if strings.TrimSpace(rule.Pattern) == "" {
			id := rule.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i+1)
			}
			return nil, apperrors.NewInvalidRuleError(id, "", fmt.Errorf("patrón vacío"))
		}
	}

	return rules, nil
}
