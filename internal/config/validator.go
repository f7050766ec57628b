package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/semtheme/internal/backend"
	"github.com/alexisbeaulieu97/semtheme/internal/codec"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern    = regexp.MustCompile(`^\d+(?:\.\d+){0,2}(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	classNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	prefixPattern    = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("function_name", func(fl validator.FieldLevel) bool {
			return codec.IsTypstIdent(fl.Field().String())
		})

		_ = v.RegisterValidation("class_name", func(fl validator.FieldLevel) bool {
			return classNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("css_prefix", func(fl validator.FieldLevel) bool {
			return prefixPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("backend_name", func(fl validator.FieldLevel) bool {
			return backend.Detect(fl.Field().String()) != backend.None
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return semerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// convertValidationError normalizes validator errors into validation errors
// named after the configuration keys.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Tag() == "function_name" || ve.Tag() == "class_name" {
			msg = fmt.Sprintf("%s: %q is not a valid name", field, fmt.Sprint(ve.Value()))
		}
		return semerrors.NewValidationError(field, msg, err)
	}

	return semerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName turns "Config.Components.Container[panel].Function" into
// "components.container[panel].function".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		if i := strings.IndexByte(part, '['); i >= 0 {
			lowered = append(lowered, strings.ToLower(part[:i])+part[i:])
			continue
		}
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
