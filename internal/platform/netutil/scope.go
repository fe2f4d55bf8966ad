package netutil

import (
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"

	apperrors "url-intel/internal/platform/errors"
)

// scopeEntry representa los límites canónicos derivados de una entrada de scope.
type scopeEntry struct {
	hostname    string // host normalizado tal cual lo dio el usuario (subdominios incluidos)
	registrable string // dominio registrable (eTLD+1) bajo el que se aceptan subdominios
	ip          net.IP // si la entrada es una IP
}

// Scope representa el conjunto de dominios al que se limita el análisis.
// Un *Scope nil permite cualquier host.
type Scope struct {
	entries []scopeEntry
}

// NewScope construye un Scope desde la lista de dominios dada. Las entradas
// que no se pueden normalizar como dominio o IP se descartan; si ninguna
// sobrevive se devuelve un error, para que un typo nunca desactive el
// filtrado en silencio.
func NewScope(domains []string) (*Scope, error) {
	var entries []scopeEntry
	for _, raw := range domains {
		normalized := NormalizeDomain(raw)
		if normalized == "" {
			continue
		}

		// Caso IP: solo coincidencia exacta
		if ip := net.ParseIP(normalized); ip != nil {
			entries = append(entries, scopeEntry{hostname: normalized, ip: ip})
			continue
		}

		// Caso dominio: resolver el dominio registrable para aceptar
		// también subdominios hermanos (app.example.com ∈ example.com).
		registrable := normalized
		if effective, err := publicsuffix.EffectiveTLDPlusOne(normalized); err == nil && effective != "" {
			registrable = strings.ToLower(effective)
		}

		entries = append(entries, scopeEntry{hostname: normalized, registrable: registrable})
	}

	if len(entries) == 0 {
		return nil, apperrors.NewConfigurationError(
			"scope",
			strings.Join(domains, ","),
			"ningún dominio válido en la lista",
			"Usa dominios registrables o IPs, ej: -scope example.com,api.example.org",
		)
	}
	return &Scope{entries: entries}, nil
}

// AllowsDomain indica si el host proporcionado cae dentro de alguno de los
// límites configurados. Los hosts que no se pueden normalizar se rechazan.
func (s *Scope) AllowsDomain(candidate string) bool {
	if s == nil {
		return true
	}

	normalized := NormalizeDomain(candidate)
	if normalized == "" {
		return false
	}

	for _, entry := range s.entries {
		if entry.allows(normalized) {
			return true
		}
	}
	return false
}

func (e scopeEntry) allows(normalized string) bool {
	// Si la entrada es IP, solo aceptamos esa misma IP exacta.
	if e.ip != nil {
		if net.ParseIP(normalized) == nil {
			return false
		}
		return normalized == e.hostname
	}

	// Si la entrada es dominio, rechazamos IPs.
	if net.ParseIP(normalized) != nil {
		return false
	}

	if e.registrable == "" {
		return normalized == e.hostname
	}

	// Coincidencia exacta o subdominio bajo el dominio registrable.
	if normalized == e.hostname || normalized == e.registrable {
		return true
	}
	return strings.HasSuffix(normalized, "."+e.registrable)
}
