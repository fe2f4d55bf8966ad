package logx

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputConfig gestiona la configuración de salida.
type OutputConfig struct {
	IsTTY   bool
	NoColor bool
	Width   int
}

// DetectOutput detecta características del terminal.
func DetectOutput(w io.Writer) OutputConfig {
	isTTY := isTTY(w)

	return OutputConfig{
		IsTTY:   isTTY,
		NoColor: !isTTY,
		Width:   120,
	}
}

// isTTY detecta si el writer está conectado a un terminal.
func isTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsTerminal verifica si el writer es un terminal (función exportada).
func IsTerminal(w io.Writer) bool {
	return isTTY(w)
}
