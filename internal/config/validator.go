package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal", "panic": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "text", "json": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// Register custom validation for the extraction mode of a source
	_ = validate.RegisterValidation("sourcemode", func(fl validator.FieldLevel) bool {
		mode := strings.ToLower(fl.Field().String())
		switch mode {
		case "", "browser", "static":
			return true
		default:
			return false
		}
	})

	// Register custom validation for the notification eligibility policy
	_ = validate.RegisterValidation("notifypolicy", func(fl validator.FieldLevel) bool {
		policy := strings.ToLower(fl.Field().String())
		switch policy {
		case "", "count-increase", "count-increase-or-titles", "any-change":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var messages []string
			for _, e := range errs {
				messages = append(messages, fmt.Sprintf("field '%s' failed on '%s' rule", e.StructNamespace(), e.Tag()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(messages, "; "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}

	return validateSourceIDsUnique(cfg.Sources)
}

// validateSourceIDsUnique rejects duplicate source identifiers, which would
// make snapshot entries collide.
func validateSourceIDsUnique(sources []SourceConfig) error {
	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if _, dup := seen[src.ID]; dup {
			return fmt.Errorf("config validation failed: duplicate source id '%s'", src.ID)
		}
		seen[src.ID] = struct{}{}
	}
	return nil
}
