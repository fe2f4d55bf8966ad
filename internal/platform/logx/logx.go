package logx

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level representa el nivel de logging.
type Level uint8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// Fields representa pares clave-valor para structured logging.
type Fields map[string]any

type state struct {
	mu        sync.RWMutex
	logger    zerolog.Logger
	level     Level
	console   io.Writer
	fileSink  io.Writer
	outputCfg OutputConfig
}

var cfg = &state{
	logger:    zerolog.New(consoleWriter(os.Stderr)).With().Timestamp().Logger(),
	level:     LevelInfo,
	console:   os.Stderr,
	outputCfg: DetectOutput(os.Stderr),
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    !IsTerminal(w),
	}
}

// rebuildLocked reconstruye el logger combinando consola y archivo (si existe).
func rebuildLocked() {
	var out io.Writer = consoleWriter(cfg.console)
	if cfg.fileSink != nil {
		out = zerolog.MultiLevelWriter(consoleWriter(cfg.console), cfg.fileSink)
	}
	cfg.logger = zerolog.New(out).With().Timestamp().Logger()
}

// SetVerbosity configura el nivel: 0/1=info, 2=debug, 3+=trace.
func SetVerbosity(v int) {
	switch {
	case v <= 1:
		SetLevel(LevelInfo)
	case v == 2:
		SetLevel(LevelDebug)
	default:
		SetLevel(LevelTrace)
	}
}

// SetLevel cambia el nivel mínimo de logging.
func SetLevel(l Level) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.level = l

	var zlevel zerolog.Level
	switch l {
	case LevelError:
		zlevel = zerolog.ErrorLevel
	case LevelWarn:
		zlevel = zerolog.WarnLevel
	case LevelInfo:
		zlevel = zerolog.InfoLevel
	case LevelDebug:
		zlevel = zerolog.DebugLevel
	case LevelTrace:
		zlevel = zerolog.TraceLevel
	default:
		zlevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(zlevel)
}

// GetLevel retorna el nivel actual de logging.
func GetLevel() Level {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.level
}

// SetOutput redirige la salida de consola del logger (nil restaura stderr).
func SetOutput(w io.Writer) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	cfg.console = w
	cfg.outputCfg = DetectOutput(w)
	rebuildLocked()
}

// ConfigureFile añade un archivo de log con rotación además de la consola.
// Pasar una ruta vacía elimina el archivo configurado.
func ConfigureFile(path string) error {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	if path == "" {
		cfg.fileSink = nil
		rebuildLocked()
		return nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	cfg.fileSink = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB por archivo antes de rotar
		MaxBackups: 3,
		LocalTime:  true,
	}
	rebuildLocked()
	return nil
}

// Atajos de nivel.
func Errorf(format string, a ...interface{}) {
	cfg.mu.RLock()
	logger := cfg.logger
	cfg.mu.RUnlock()
	logger.Error().Msgf(format, a...)
}

func Warnf(format string, a ...interface{}) {
	cfg.mu.RLock()
	logger := cfg.logger
	cfg.mu.RUnlock()
	logger.Warn().Msgf(format, a...)
}

func Infof(format string, a ...interface{}) {
	cfg.mu.RLock()
	logger := cfg.logger
	cfg.mu.RUnlock()
	logger.Info().Msgf(format, a...)
}

func Debugf(format string, a ...interface{}) {
	cfg.mu.RLock()
	logger := cfg.logger
	cfg.mu.RUnlock()
	logger.Debug().Msgf(format, a...)
}

func Tracef(format string, a ...interface{}) {
	cfg.mu.RLock()
	logger := cfg.logger
	cfg.mu.RUnlock()
	logger.Trace().Msgf(format, a...)
}

// Funciones con fields estructurados.
func Error(msg string, fields Fields) { logFields(zerolog.ErrorLevel, msg, fields) }
func Warn(msg string, fields Fields)  { logFields(zerolog.WarnLevel, msg, fields) }
func Info(msg string, fields Fields)  { logFields(zerolog.InfoLevel, msg, fields) }
func Debug(msg string, fields Fields) { logFields(zerolog.DebugLevel, msg, fields) }
func Trace(msg string, fields Fields) { logFields(zerolog.TraceLevel, msg, fields) }

func logFields(lvl zerolog.Level, msg string, fields Fields) {
	cfg.mu.RLock()
	logger := cfg.logger
	cfg.mu.RUnlock()

	event := logger.WithLevel(lvl)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}
