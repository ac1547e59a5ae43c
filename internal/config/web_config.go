package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type WebConfig struct {
	Port        int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	MetricsPort int           `mapstructure:"metrics_port" validate:"gte=1,lte=65535"`
	SessionTTL  time.Duration `mapstructure:"session_ttl" validate:"gte=0"`
}

func (config WebConfig) validate() error {
	if err := structValidator.Struct(config); err != nil {
		return err
	}
	if config.Port == config.MetricsPort {
		return errors.New("port and metrics_port must differ")
	}
	return nil
}

func (config WebConfig) bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error
	if err := v.BindEnv("web.port", "PORT"); err != nil {
		errs = append(errs, err)
	}

	if err := v.BindEnv("web.metrics_port", "METRICS_PORT"); err != nil {
		errs = append(errs, err)
	}

	if err := v.BindEnv("web.session_ttl", "SESSION_TTL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("binding web variables: %w", errors.Join(errs...))
	}

	return nil
}
