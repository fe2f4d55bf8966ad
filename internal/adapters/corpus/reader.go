// Package corpus lee el archivo de URLs de entrada con decodificación
// permisiva: una URL por línea, líneas en blanco ignoradas, bytes no
// decodificables descartados sin abortar.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	apperrors "url-intel/internal/platform/errors"
	"url-intel/internal/platform/logx"
)

// Read devuelve las líneas no vacías del archivo indicado, recortadas. Un
// archivo inexistente produce un InputNotFoundError; es el único error que
// aborta antes de procesar.
func Read(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewInputNotFoundError(path)
		}
		return nil, fmt.Errorf("no se pudo abrir %q: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var urls []string
	for scanner.Scan() {
		line := strings.ToValidUTF8(strings.TrimSpace(scanner.Text()), "")
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %q: %w", path, err)
	}

	logx.Debugf("leídas %d URLs desde %s", len(urls), path)
	return urls, nil
}
