package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// progressBar dibuja el avance del análisis del corpus en una sola línea.
// Implementa pipeline.Reporter; con total <= 0 no pinta nada.
type progressBar struct {
	mu          sync.Mutex
	out         io.Writer
	total       int
	current     int
	width       int
	lastLineLen int
	lastPercent int
	startedAt   time.Time
	done        bool
}

func newProgressBar(total int, w io.Writer) *progressBar {
	if w == nil {
		w = os.Stderr
	}
	return &progressBar{total: total, width: 30, out: w, lastPercent: -1}
}

func (p *progressBar) Start(total int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if total > 0 {
		p.total = total
	}
	p.startedAt = time.Now()
	if p.total <= 0 {
		return
	}
	bar := strings.Repeat("░", p.width)
	line := fmt.Sprintf("[%s] 0/%d analizando URLs...", bar, p.total)
	fmt.Fprint(p.out, line)
	p.lastLineLen = len(line)
}

func (p *progressBar) Step(done, total int) {
	if p == nil || p.total <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return
	}
	p.current = done
	if p.current > p.total {
		p.current = p.total
	}

	// Repintar solo cuando el porcentaje avanza; con corpus grandes el
	// repintado por línea cuesta más que el propio análisis.
	percent := (p.current * 100) / p.total
	if percent == p.lastPercent && p.current != p.total {
		return
	}
	p.lastPercent = percent
	p.renderLocked()
}

func (p *progressBar) Done() {
	if p == nil || p.total <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return
	}
	p.current = p.total
	p.lastPercent = 100
	p.renderLocked()
	fmt.Fprintln(p.out)
	p.lastLineLen = 0
	p.done = true
}

func (p *progressBar) renderLocked() {
	fill := (p.current * p.width) / p.total
	if fill > p.width {
		fill = p.width
	}
	bar := strings.Repeat("█", fill) + strings.Repeat("░", p.width-fill)

	label := fmt.Sprintf("%d%%", (p.current*100)/p.total)
	if remaining := p.etaLocked(); remaining > 0 {
		label = fmt.Sprintf("%s ETA %s", label, remaining.Round(time.Second))
	}

	line := fmt.Sprintf("\r[%s] %d/%d %s", bar, p.current, p.total, label)
	padding := 0
	if len(line) < p.lastLineLen {
		padding = p.lastLineLen - len(line)
	}
	if padding > 0 {
		line += strings.Repeat(" ", padding)
	}
	fmt.Fprint(p.out, line)
	p.lastLineLen = len(line)
}

func (p *progressBar) etaLocked() time.Duration {
	if p.current <= 0 || p.current >= p.total || p.startedAt.IsZero() {
		return 0
	}
	elapsed := time.Since(p.startedAt)
	if elapsed <= 0 {
		return 0
	}
	perStep := elapsed / time.Duration(p.current)
	return perStep * time.Duration(p.total-p.current)
}

// Writer devuelve un escritor que limpia la barra antes de cada línea de log
// y la repinta después, para que barra y logs convivan en la misma terminal.
func (p *progressBar) Writer() io.Writer {
	if p == nil {
		return nil
	}
	return &barWriter{bar: p}
}

type barWriter struct {
	bar *progressBar
}

func (w *barWriter) Write(b []byte) (int, error) {
	p := w.bar
	p.mu.Lock()
	defer p.mu.Unlock()

	hadBar := p.lastLineLen > 0
	if hadBar {
		fmt.Fprint(p.out, "\r"+strings.Repeat(" ", p.lastLineLen)+"\r")
		p.lastLineLen = 0
	}
	n, err := p.out.Write(b)
	if err != nil || p.done || !hadBar {
		return n, err
	}
	p.renderLocked()
	return n, nil
}
