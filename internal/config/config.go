package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Web       WebConfig       `mapstructure:"web"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment only")
	}

	file := configFile
	if value, _ := os.LookupEnv("CONFIG_PATH"); value != "" {
		file = value
	} else if value, _ := os.LookupEnv("MODE"); value == "test" {
		file = "../../configs/config.yaml"
	}

	config, err := loadConfig(file)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	v.AutomaticEnv()

	v.SetDefault("backend.base_url", "http://localhost:3030")
	v.SetDefault("web.port", 3000)
	v.SetDefault("web.metrics_port", 8080)
	v.SetDefault("dashboard.non_faang_salary_cap", 150000)

	err := bindEnvironmentVariables(v)
	if err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	logger, backend, web, dashboard := LoggerConfig{}, BackendConfig{}, WebConfig{}, DashboardConfig{}

	if err := logger.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := backend.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("BackendConfig: %w", err))
	}

	if err := web.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("WebConfig: %w", err))
	}

	if err := dashboard.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("DashboardConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Backend.validate(); err != nil {
		errs = append(errs, fmt.Errorf("BackendConfig: %w", err))
	}

	if err := config.Web.validate(); err != nil {
		errs = append(errs, fmt.Errorf("WebConfig: %w", err))
	}

	if err := config.Dashboard.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DashboardConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
