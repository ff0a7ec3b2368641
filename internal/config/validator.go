package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks the run configuration after defaults have been
// applied. Returns nil if valid, or a ValidationErrors with every
// problem found.
func (c *RunConfig) Validate() error {
	errs := &ValidationErrors{}

	if c.Rate > 0 && c.RPM > 0 {
		errs.Add("rate", "rate and rpm are mutually exclusive; set one")
	}
	if c.Rate <= 0 && c.RPM <= 0 {
		errs.Add("rate", "either rate or rpm must be > 0")
	}

	if c.Tick != "" {
		if tick, err := time.ParseDuration(c.Tick); err != nil {
			errs.Add("tick", fmt.Sprintf("invalid duration %q", c.Tick))
		} else if tick <= 0 {
			errs.Add("tick", "tick must be > 0")
		}
	}

	if c.MaxWorkers < 0 {
		errs.Add("maxWorkers", "maxWorkers must be >= 0")
	}
	if c.MaxBurst < 0 {
		errs.Add("maxBurst", "maxBurst must be >= 0")
	}

	validateWorkload(&c.Workload, errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateWorkload(w *WorkloadConfig, errs *ValidationErrors) {
	switch w.Format {
	case "", "lines":
		if w.Path != "" {
			errs.Add("workload.path", "path only applies to the json format")
		}
	case "json":
	default:
		errs.Add("workload.format", fmt.Sprintf("unknown format %q (want lines or json)", w.Format))
	}
}
