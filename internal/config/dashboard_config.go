package config

import (
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"time"
)

type DashboardConfig struct {
	// NonFaangSalaryCap is the upper bound used for the "without FAANG" average.
	NonFaangSalaryCap int           `mapstructure:"non_faang_salary_cap" validate:"gt=0"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
	// RefreshSchedule is a cron spec for warming the stats cache, empty disables it.
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

func (config DashboardConfig) validate() error {
	if err := structValidator.Struct(config); err != nil {
		return err
	}

	if config.RefreshSchedule == "" {
		return nil
	}

	if _, err := cron.ParseStandard(config.RefreshSchedule); err != nil {
		return fmt.Errorf("invalid refresh_schedule %q: %w", config.RefreshSchedule, err)
	}
	return nil
}

func (config DashboardConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("dashboard.non_faang_salary_cap", "NON_FAANG_SALARY_CAP"); err != nil {
		return err
	}
	if err := v.BindEnv("dashboard.cache_ttl", "DASHBOARD_CACHE_TTL"); err != nil {
		return err
	}
	return v.BindEnv("dashboard.refresh_schedule", "DASHBOARD_REFRESH_SCHEDULE")
}
