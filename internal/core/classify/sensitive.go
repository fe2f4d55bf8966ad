// Package classify contiene la lógica de clasificación de rutas: reglas de
// sensibilidad, categorías por extensión y huellas de CMS. Los tres
// clasificadores reciben su configuración completa en el constructor y son
// inmutables después.
package classify

import (
	"regexp"

	apperrors "url-intel/internal/platform/errors"
)

// Rule describe un patrón de ruta sensible. El patrón se compila con (?i)
// antepuesto (búsqueda case-insensitive); los anclajes los aporta el propio
// patrón. Gana cualquier coincidencia, así que el orden de las reglas no
// cambia el resultado.
type Rule struct {
	ID      string `yaml:"id" json:"id"`
	Group   string `yaml:"group" json:"group"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

// Matcher evalúa rutas contra un conjunto compilado de reglas.
type Matcher struct {
	rules    []Rule
	compiled []*regexp.Regexp
}

// NewMatcher compila las reglas dadas. El primer patrón inválido aborta con
// un error que nombra la regla ofensora.
func NewMatcher(rules []Rule) (*Matcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, apperrors.NewInvalidRuleError(rule.ID, rule.Pattern, err)
		}
		compiled = append(compiled, re)
	}
	return &Matcher{rules: rules, compiled: compiled}, nil
}

// Match indica si la ruta coincide con alguna regla. Corta en la primera
// coincidencia.
func (m *Matcher) Match(path string) bool {
	matched, _ := m.Explain(path)
	return matched
}

// Explain devuelve además la regla que disparó la coincidencia, útil para
// logs de depuración.
func (m *Matcher) Explain(path string) (bool, Rule) {
	for i, re := range m.compiled {
		if re.MatchString(path) {
			return true, m.rules[i]
		}
	}
	return false, Rule{}
}

// DefaultRules devuelve el conjunto de reglas integrado: paneles de
// administración y autenticación, configuración y secretos, backups y
// archivos comprimidos, artefactos de debug/staging, volcados de base de
// datos, extensiones de scripting, metadatos de control de versiones e IDE,
// directorios de frameworks CMS, documentación y archivos well-known.
func DefaultRules() []Rule {
	return []Rule{
		// --- Paneles ---
		{ID: "admin-panels", Group: "panels", Pattern: `(^|/)(admin|administrator|adminpanel|admin_area|manage|management|panel|cpanel|dashboard|console)(/|$|\.)`},
		{ID: "auth-endpoints", Group: "panels", Pattern: `(^|/)(login|logon|signin|sign-in|signup|register|auth|oauth|sso)(/|$|\.)`},
		{ID: "db-admin-tools", Group: "panels", Pattern: `phpmyadmin|adminer`},

		// --- CMS y frameworks ---
		{ID: "wp-surface", Group: "cms", Pattern: `wp-(admin|content|includes|json|config|login)`},
		{ID: "cms-dirs", Group: "cms", Pattern: `(^|/)(typo3|umbraco|joomla|drupal|magento)(/|$)`},
		{ID: "laravel-public", Group: "cms", Pattern: `public/index\.php`},

		// --- Configuración y secretos ---
		{ID: "config-files", Group: "config", Pattern: `\.(env|ini|conf|config|cfg|properties|toml)(\.|$)`},
		{ID: "app-config-names", Group: "config", Pattern: `(^|/)(web\.config|appsettings\.json|application\.ya?ml|settings\.py|config\.php)($|/)`},
		{ID: "htaccess", Group: "config", Pattern: `\.(htaccess|htpasswd)$`},
		{ID: "secret-material", Group: "secrets", Pattern: `secret|credential|password|passwd|htpasswd|private[-_]?key`},
		{ID: "key-files", Group: "secrets", Pattern: `\.(pem|key|p12|pfx|jks|keystore|asc)(\.|$)`},
		{ID: "ssh-keys", Group: "secrets", Pattern: `id_(rsa|dsa|ecdsa|ed25519)`},

		// --- Backups y archivos ---
		{ID: "backups", Group: "backups", Pattern: `backup|\.(bak|old|orig|save|swp)(\.|$)`},
		{ID: "archives", Group: "backups", Pattern: `\.(zip|tar|gz|tgz|rar|7z)$`},

		// --- Debug y staging ---
		{ID: "debug-staging", Group: "debug", Pattern: `(^|/)(debug|test|testing|staging|stage|dev|demo|tmp|temp)(/|$|\.)`},
		{ID: "phpinfo", Group: "debug", Pattern: `phpinfo`},

		// --- Bases de datos ---
		{ID: "db-dumps", Group: "database", Pattern: `\.(sql|sqlite|sqlitedb|mdb|dump)(\.|$)|(^|/)(db|database|dump)s?(/|$|\.)`},

		// --- Código y scripting ---
		{ID: "script-files", Group: "scripts", Pattern: `\.(php[3457s]?|phtml|asp|aspx|jsp|jspx|cgi|pl|sh|py|rb)$`},

		// --- Metadatos de VCS e IDE ---
		{ID: "vcs-metadata", Group: "vcs", Pattern: `(^|/)\.(git|svn|hg|bzr)(/|$)`},
		{ID: "ide-metadata", Group: "vcs", Pattern: `(^|/)\.(idea|vscode)(/|$)|\.(iml|project|classpath)$`},

		// --- Logs, documentación y well-known ---
		{ID: "log-files", Group: "logs", Pattern: `\.log(\.|$)|(^|/)logs?(/|$)`},
		{ID: "doc-files", Group: "docs", Pattern: `(^|/)(readme|changelog|license|install|upgrade|todo)(\.|$)`},
		{ID: "well-known", Group: "wellknown", Pattern: `(^|/)\.well-known(/|$)|(^|/)(robots\.txt|sitemap\.xml|crossdomain\.xml|security\.txt)$`},
	}
}
