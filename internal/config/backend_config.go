package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var structValidator = validator.New()

type BackendConfig struct {
	BaseURL              string  `mapstructure:"base_url" validate:"required,url"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second" validate:"gte=0"`
}

func (config BackendConfig) validate() error {
	return structValidator.Struct(config)
}

func (config BackendConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("backend.base_url", "BACKEND_URL"); err != nil {
		return err
	}
	return v.BindEnv("backend.max_requests_per_second", "BACKEND_MAX_REQUESTS_PER_SECOND")
}
