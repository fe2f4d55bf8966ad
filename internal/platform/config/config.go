package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config reúne todas las opciones de ejecución ya resueltas (flags + archivo).
type Config struct {
	Input      string
	OutDir     string
	All        bool
	RulesFile  string
	Scope      []string
	Report     bool
	Metrics    bool
	LogFile    string
	Verbosity  int
	Quiet      bool
	NoProgress bool
}

// fileConfig refleja Config con punteros para distinguir "no especificado"
// de un valor explícito en el archivo de configuración.
type fileConfig struct {
	Input      *string     `json:"input" yaml:"input"`
	OutDir     *string     `json:"outdir" yaml:"outdir"`
	All        *bool       `json:"all" yaml:"all"`
	RulesFile  *string     `json:"rules" yaml:"rules"`
	Scope      *stringList `json:"scope" yaml:"scope"`
	Report     *bool       `json:"report" yaml:"report"`
	Metrics    *bool       `json:"metrics" yaml:"metrics"`
	LogFile    *string     `json:"log_file" yaml:"log_file"`
	Verbosity  *int        `json:"verbosity" yaml:"verbosity"`
	Quiet      *bool       `json:"quiet" yaml:"quiet"`
	NoProgress *bool       `json:"no_progress" yaml:"no_progress"`
}

type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var aux []string
		if err := json.Unmarshal(trimmed, &aux); err != nil {
			return err
		}
		*s = cleanStringSlice(aux)
		return nil
	case '"':
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*s = cleanStringSlice(strings.Split(single, ","))
		return nil
	default:
		return errors.New("scope debe ser un string o una lista")
	}
}

func (s *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		aux := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			aux = append(aux, node.Value)
		}
		*s = cleanStringSlice(aux)
		return nil
	case yaml.ScalarNode:
		*s = cleanStringSlice(strings.Split(value.Value, ","))
		return nil
	case yaml.MappingNode, yaml.DocumentNode:
		return errors.New("scope debe ser un string o una lista")
	default:
		*s = nil
		return nil
	}
}

func ParseFlags() *Config {
	configPath := flag.String("config", "", "Ruta a un archivo de configuración (YAML o JSON)")
	input := flag.String("input", "urls.txt", "Archivo de URLs, una por línea (default: urls.txt)")
	outdir := flag.String("outdir", "output", "Directorio de salida (default: output)")
	all := flag.Bool("all", false, "Guardar todas las rutas, no solo las sensibles")
	rules := flag.String("rules", "", "Archivo YAML con reglas de sensibilidad personalizadas")
	scope := flag.String("scope", "", "Dominios en scope, CSV (ej: example.com,api.example.org)")
	report := flag.Bool("report", false, "Generar un informe HTML al finalizar")
	metrics := flag.Bool("metrics", false, "Escribir metrics.json al finalizar")
	logFile := flag.String("log-file", "", "Ruta a un archivo de log con rotación")
	verbosity := flag.Int("v", 0, "Verbosity (0=silent,1=info,2=debug,3=trace)")
	quiet := flag.Bool("quiet", false, "Suprimir banner y resumen en consola")
	noProgress := flag.Bool("no-progress", false, "Desactivar la barra de progreso")

	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	list := cleanStringSlice(strings.Split(*scope, ","))

	cfg := &Config{
		Input:      strings.TrimSpace(*input),
		OutDir:     strings.TrimSpace(*outdir),
		All:        *all,
		RulesFile:  strings.TrimSpace(*rules),
		Scope:      list,
		Report:     *report,
		Metrics:    *metrics,
		LogFile:    strings.TrimSpace(*logFile),
		Verbosity:  *verbosity,
		Quiet:      *quiet,
		NoProgress: *noProgress,
	}

	var fileCfg *fileConfig
	if *configPath != "" {
		info, err := os.Stat(*configPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Fatalf("el archivo de configuración %q no existe", *configPath)
			}
			log.Fatalf("no se pudo acceder al archivo de configuración %q: %v", *configPath, err)
		} else if info.IsDir() {
			log.Fatalf("la ruta de configuración %q apunta a un directorio", *configPath)
		} else {
			fc, err := loadConfigFile(*configPath)
			if err != nil {
				log.Fatalf("no se pudo leer la configuración desde %q: %v", *configPath, err)
			}
			fileCfg = fc
		}
	}

	if fileCfg != nil {
		if fileCfg.Input != nil && !setFlags["input"] {
			cfg.Input = strings.TrimSpace(*fileCfg.Input)
		}
		if fileCfg.OutDir != nil && !setFlags["outdir"] {
			cfg.OutDir = strings.TrimSpace(*fileCfg.OutDir)
		}
		if fileCfg.All != nil && !setFlags["all"] {
			cfg.All = *fileCfg.All
		}
		if fileCfg.RulesFile != nil && !setFlags["rules"] {
			cfg.RulesFile = strings.TrimSpace(*fileCfg.RulesFile)
		}
		if fileCfg.Scope != nil && !setFlags["scope"] {
			cfg.Scope = cleanStringSlice([]string(*fileCfg.Scope))
		}
		if fileCfg.Report != nil && !setFlags["report"] {
			cfg.Report = *fileCfg.Report
		}
		if fileCfg.Metrics != nil && !setFlags["metrics"] {
			cfg.Metrics = *fileCfg.Metrics
		}
		if fileCfg.LogFile != nil && !setFlags["log-file"] {
			cfg.LogFile = strings.TrimSpace(*fileCfg.LogFile)
		}
		if fileCfg.Verbosity != nil && !setFlags["v"] {
			cfg.Verbosity = *fileCfg.Verbosity
		}
		if fileCfg.Quiet != nil && !setFlags["quiet"] {
			cfg.Quiet = *fileCfg.Quiet
		}
		if fileCfg.NoProgress != nil && !setFlags["no-progress"] {
			cfg.NoProgress = *fileCfg.NoProgress
		}
	}

	if cfg.Input == "" {
		cfg.Input = "urls.txt"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "output"
	}

	return cfg
}

func loadConfigFile(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			if err := json.Unmarshal(raw, &cfg); err != nil {
				return nil, err
			}
		}
	}

	return &cfg, nil
}

func cleanStringSlice(values []string) []string {
	list := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			list = append(list, v)
		}
	}
	return list
}
