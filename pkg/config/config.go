// Package config holds the simulation configuration, loaded from YAML
// and validated with struct tags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config parameterises one simulation service instance.
type Config struct {
	// Beta is the per-tick transmission rate.
	Beta float64 `yaml:"beta" validate:"gte=0,lte=1"`

	// PatientZeros is the number of initially infected students.
	PatientZeros int `yaml:"patient_zeros" validate:"gte=1,lte=100"`

	// Seed fixes the random source; zero means time-seeded runs.
	Seed int64 `yaml:"seed"`

	// Days are the day labels simulated in order.
	Days []string `yaml:"days" validate:"required,min=1,dive,required"`

	// WeightMode selects the MST weight transformation.
	WeightMode string `yaml:"weight_mode" validate:"oneof=inverse negative direct"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Beta:         0.5,
		PatientZeros: 5,
		Seed:         42,
		Days:         []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		WeightMode:   "inverse",
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more
// user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
