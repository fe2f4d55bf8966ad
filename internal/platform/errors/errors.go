// Package errors proporciona tipos de error mejorados con contexto y sugerencias
// para facilitar el debugging y mejorar la experiencia del usuario.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorWithSuggestion es un error que incluye una sugerencia para el usuario.
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
	Context    map[string]string
}

func (e *ErrorWithSuggestion) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Suggestion != "" {
		b.WriteString("\n\n💡 Sugerencia: ")
		b.WriteString(e.Suggestion)
	}
	if len(e.Context) > 0 {
		b.WriteString("\n\nContexto:")
		for k, v := range e.Context {
			fmt.Fprintf(&b, "\n  • %s: %s", k, v)
		}
	}
	return b.String()
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// WithSuggestion envuelve un error con una sugerencia para el usuario.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
		Context:    make(map[string]string),
	}
}

// WithContext añade contexto adicional a un error.
func WithContext(err error, key, value string) error {
	if err == nil {
		return nil
	}

	// Si ya es un ErrorWithSuggestion, añadir el contexto
	var suggErr *ErrorWithSuggestion
	if errors.As(err, &suggErr) {
		if suggErr.Context == nil {
			suggErr.Context = make(map[string]string)
		}
		suggErr.Context[key] = value
		return suggErr
	}

	newErr := &ErrorWithSuggestion{
		Err:     err,
		Context: map[string]string{key: value},
	}
	return newErr
}

// InputNotFoundError representa el error cuando el archivo de URLs no existe.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("archivo de entrada no encontrado: %s", e.Path)
}

// NewInputNotFoundError crea un error mejorado para archivos de entrada faltantes.
func NewInputNotFoundError(path string) error {
	baseErr := &InputNotFoundError{Path: path}

	suggestion := fmt.Sprintf("Crea %s con una URL por línea\n"+
		"O indica otro archivo con: -input <archivo>", path)

	err := WithSuggestion(baseErr, suggestion)
	err = WithContext(err, "input", path)

	return err
}

// InvalidRuleError representa una regla de sensibilidad que no compila.
type InvalidRuleError struct {
	ID      string
	Pattern string
	Err     error
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("regla %q inválida: %v", e.ID, e.Err)
}

func (e *InvalidRuleError) Unwrap() error {
	return e.Err
}

// NewInvalidRuleError crea un error mejorado para reglas que no compilan.
func NewInvalidRuleError(id, pattern string, cause error) error {
	baseErr := &InvalidRuleError{ID: id, Pattern: pattern, Err: cause}

	suggestion := "Revisa la sintaxis del patrón (se compila con regexp, sintaxis RE2)\n" +
		"Las reglas por defecto se restauran omitiendo: -rules"

	err := WithSuggestion(baseErr, suggestion)
	err = WithContext(err, "rule", id)
	if pattern != "" {
		err = WithContext(err, "pattern", truncate(pattern, 80))
	}

	return err
}

// ConfigurationError representa un error de configuración.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuración inválida para '%s': %s", e.Field, e.Reason)
}

// NewConfigurationError crea un error mejorado para problemas de configuración.
func NewConfigurationError(field, value, reason, suggestion string) error {
	baseErr := &ConfigurationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}

	err := WithSuggestion(baseErr, suggestion)
	err = WithContext(err, "field", field)
	if value != "" {
		err = WithContext(err, "value", value)
	}

	return err
}

// truncate limita una cadena a n caracteres, añadiendo "..." si es necesario.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// GetSuggestion extrae la sugerencia de un error si existe.
func GetSuggestion(err error) string {
	var suggErr *ErrorWithSuggestion
	if errors.As(err, &suggErr) {
		return suggErr.Suggestion
	}
	return ""
}

// GetContext extrae el contexto de un error si existe.
func GetContext(err error) map[string]string {
	var suggErr *ErrorWithSuggestion
	if errors.As(err, &suggErr) {
		return suggErr.Context
	}
	return nil
}

// IsInputNotFound verifica si un error es por archivo de entrada faltante.
func IsInputNotFound(err error) bool {
	var notFoundErr *InputNotFoundError
	return errors.As(err, &notFoundErr)
}

// IsInvalidRule verifica si un error es por una regla que no compila.
func IsInvalidRule(err error) bool {
	var ruleErr *InvalidRuleError
	return errors.As(err, &ruleErr)
}
