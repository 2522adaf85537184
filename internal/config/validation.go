package config

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-gradient/internal/gradient"
	"github.com/opd-ai/go-gradient/internal/render"
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues (e.g., unknown variables).
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator checks a Config for values the view cannot use.
type Validator struct {
	// strictMode turns warnings into errors.
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation where warnings are errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Validate performs comprehensive validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validateWindow(&cfg.Window, result)
	v.validateAnimation(&cfg.Animation, result)
	v.validateGrid(&cfg.Grid, result)
	v.validateFrames(cfg.Frames, result)
	v.validatePalette(cfg.Palette, result)

	if v.strictMode {
		result.Errors = append(result.Errors, result.Warnings...)
		result.Warnings = nil
	}
	return result
}

// maxDimension bounds what is considered a reasonable window size.
const maxDimension = 10000

func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Width <= 0 {
		result.AddError("window.width", fmt.Sprintf("must be positive, got %d", wc.Width))
	}
	if wc.Height <= 0 {
		result.AddError("window.height", fmt.Sprintf("must be positive, got %d", wc.Height))
	}
	if wc.Width > maxDimension {
		result.AddWarning("window.width", fmt.Sprintf("unusually large value %d", wc.Width))
	}
	if wc.Height > maxDimension {
		result.AddWarning("window.height", fmt.Sprintf("unusually large value %d", wc.Height))
	}

	if wc.FPS <= 0 {
		result.AddError("window.fps", fmt.Sprintf("must be positive, got %d", wc.FPS))
	}

	if wc.Background != "" {
		if _, err := render.ParseColor(wc.Background); err != nil {
			result.AddError("window.background", err.Error())
		}
	}

	if _, err := render.ParseWindowHints(wc.Hints); err != nil {
		result.AddError("window.window_hints", err.Error())
	}
}

func (v *Validator) validateAnimation(ac *AnimationConfig, result *ValidationResult) {
	switch {
	case ac.Duration < 0:
		result.AddError("animation.duration", fmt.Sprintf("must be non-negative, got %v", ac.Duration))
	case ac.Duration > MaxDuration:
		result.AddError("animation.duration", fmt.Sprintf("must be at most %v, got %v", MaxDuration, ac.Duration))
	}
	if _, err := gradient.ParseDirection(ac.Direction); err != nil {
		result.AddError("animation.direction", err.Error())
	}
	if _, err := gradient.ParseType(ac.Type); err != nil {
		result.AddError("animation.type", err.Error())
	}
}

func (v *Validator) validateGrid(gc *GridConfig, result *ValidationResult) {
	if gc.Divisions < 0 {
		result.AddError("grid.divisions", fmt.Sprintf("must be non-negative, got %d", gc.Divisions))
	}
	if gc.Opacity < 0 || gc.Opacity > 1 {
		result.AddError("grid.opacity", fmt.Sprintf("must be between 0 and 1, got %g", gc.Opacity))
	}
	if gc.Color != "" {
		if _, err := render.ParseColor(gc.Color); err != nil {
			result.AddError("grid.color", err.Error())
		}
	}
}

func (v *Validator) validateFrames(frames []FrameConfig, result *ValidationResult) {
	for i, f := range frames {
		field := fmt.Sprintf("frames[%d]", i)
		if _, err := gradient.ParseDirection(f.Direction); err != nil {
			result.AddError(field+".direction", err.Error())
		}
		if _, err := gradient.ParseType(f.Type); err != nil {
			result.AddError(field+".type", err.Error())
		}
		v.validateColors(field+".colors", f.Colors, result)
	}
}

func (v *Validator) validatePalette(rows [][]string, result *ValidationResult) {
	for i, row := range rows {
		v.validateColors(fmt.Sprintf("palette[%d]", i), row, result)
	}
}

// validateColors warns about names the view will drop. A list with no
// usable color falls back to the default gradient.
func (v *Validator) validateColors(field string, names []string, result *ValidationResult) {
	if len(names) == 0 {
		result.AddWarning(field, "no colors, the default gradient is used")
		return
	}
	resolved, rejected := render.ResolveColors(names)
	if len(rejected) > 0 {
		result.AddWarning(field, fmt.Sprintf("unresolvable colors dropped: %s", strings.Join(rejected, ", ")))
	}
	if len(resolved) == 0 {
		result.AddWarning(field, "no resolvable colors, the default gradient is used")
	}
}

// ValidateConfig validates a configuration and returns an error if invalid.
// Warnings do not cause errors.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg).Error()
}

// ValidateConfigStrict validates a configuration, treating warnings as errors.
func ValidateConfigStrict(cfg *Config) error {
	return NewValidator().WithStrictMode(true).Validate(cfg).Error()
}
