package netutil

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// NormalizeDomain canonicaliza un host tal y como llega de una entrada de
// scope o del corpus: acepta URLs completas con o sin esquema, credenciales,
// puertos y literales IPv6, y devuelve el dominio en minúsculas (punycode
// para etiquetas unicode) o "" si no hay un dominio válido. Rechaza
// comodines (*) y hostnames de una sola etiqueta que no sean IP; mantiene
// subdominios, incluido "www".
func NormalizeDomain(raw string) string {
	// 1) Preliminares: espacios alrededor y basura tras el primer token
	//    (típico de entradas de scope mal pegadas).
	trimmed := strings.TrimSpace(raw)
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return ""
	}

	candidate := trimmed

	// 2) Parseo tipo URL (añadimos esquema si falta)
	var (
		parsed *url.URL
		err    error
	)
	if strings.Contains(candidate, "://") {
		parsed, err = url.Parse(candidate)
	} else {
		parsed, err = url.Parse("http://" + candidate)
	}
	if err == nil && parsed != nil {
		// url.URL ya quita credenciales en Hostname()
		// Si Hostname() es razonable (no es el caso de IPv6 sin brackets),
		// preferimos Hostname(); si no, usamos Host (para conservar literal).
		hostPort := parsed.Host
		hostname := parsed.Hostname()
		if hostname != "" && (strings.Count(hostPort, ":") <= 1 || strings.Contains(hostPort, "[")) {
			candidate = hostname
		} else if hostPort != "" {
			candidate = hostPort
		}
	}

	if candidate == "" {
		return ""
	}

	// 3) Limpiezas adicionales cuando el parseo previo no lo cubrió
	//    (credenciales y path/query/fragment por si venían en el input crudo)
	if at := strings.LastIndexByte(candidate, '@'); at >= 0 {
		candidate = candidate[at+1:]
	}
	if i := strings.IndexAny(candidate, "/?#"); i >= 0 {
		candidate = candidate[:i]
	}
	if candidate == "" {
		return ""
	}

	// 4) Quitar puerto si existe
	if host, _, err := net.SplitHostPort(candidate); err == nil {
		candidate = host
	}

	// 5) Quitar brackets de IPv6
	if strings.HasPrefix(candidate, "[") && strings.HasSuffix(candidate, "]") {
		candidate = strings.Trim(candidate, "[]")
	}

	// 6) Normalización final
	lowered := strings.ToLower(strings.TrimSuffix(candidate, ".")) // tolera FQDN con punto final

	// Reglas de filtrado finales
	if lowered == "" || strings.Contains(lowered, "*") {
		return ""
	}

	// Aceptar IPs tal cual
	if ip := net.ParseIP(lowered); ip != nil {
		return lowered
	}

	// 7) Punycode para dominios internacionalizados
	//    (p. ej. "münchen.de" -> "xn--mnchen-3ya.de")
	if ascii, err := idna.ToASCII(lowered); err == nil && ascii != "" {
		lowered = ascii
	}

	// Rechazar single-label hostnames no-IP (sin punto)
	if !strings.Contains(lowered, ".") {
		return ""
	}

	return lowered
}
