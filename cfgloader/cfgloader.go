// Package cfgloader provides a simple way to load and validate configuration at the start of an application.
package cfgloader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

// CodeInvalidConfig is the code of every error returned by Load.
const CodeInvalidConfig = "INVALID_CONFIG"

// MustLoad loads and validates configuration from a YAML file based on the ENVIRONMENT variable.
// The files must be named in the format ${ENVIRONMENT}.yaml and located in the config directory
// at the root of the project. A .env file is loaded first when present, and ${VAR} references
// in the YAML are expanded from the environment.
//
// Default values for configuration fields can be set using the `default` struct tag. These values
// are applied before validation if the corresponding fields are not explicitly defined in the YAML file.
//
// Validations are done using the go-playground/validator package.
//
// Example:
//
//	type Config struct {
//	    Host     string `yaml:"host" validate:"required"`
//	    Port     int    `yaml:"port" default:"8080"`
//	    Password string `yaml:"password" mask:"true"`
//	}
//
// MustLoad exits the process on any failure. The loaded config is printed with
// fields tagged `mask:"true"` masked, unless WithSilent is given.
func MustLoad[T any](opts ...Option) T {
	o := newOptions(opts)

	config, err := Load[T](opts...)
	if err != nil {
		slog.Error("[cfgloader]: " + err.Error())
		os.Exit(1)
	}

	if !o.Silent {
		printConfig(config)
	}

	return config
}

// Load is MustLoad returning errors instead of exiting.
func Load[T any](opts ...Option) (T, error) {
	var config T
	o := newOptions(opts)

	if reflect.ValueOf(&config).Elem().Kind() == reflect.Pointer {
		return config, invalid("arg config must not be a pointer")
	}

	_ = godotenv.Load()

	env, err := defineEnvironment()
	if err != nil {
		return config, err
	}

	data, err := readConfigFile(filepath.Join(o.Dir, env+".yaml"))
	if err != nil {
		return config, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, invalid(fmt.Sprintf("failed to unmarshal %s config file: %v", env, err))
	}

	if err = defaults.Set(&config); err != nil {
		return config, invalid(fmt.Sprintf("failed to set default values for config: %v", err))
	}

	if err = validateConfig(&config, env); err != nil {
		return config, err
	}

	return config, nil
}

func defineEnvironment() (string, error) {
	env := os.Getenv("ENVIRONMENT")
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return "", invalid(
			"ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test",
		)
	}
	return env, nil
}

func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, invalid(fmt.Sprintf(
			"config file not found in the path %s - Make sure that the yaml file exists for each environment", path,
		))
	}
	if err != nil {
		return nil, invalid(fmt.Sprintf("failed to read config file %s: %v", path, err))
	}
	return data, nil
}

func validateConfig(config any, env string) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return invalid(fmt.Sprintf("failed to validate %s config: %v", env, err))
	}

	failedFields := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		tagErr := fieldErr.Tag()
		if fieldErr.Param() != "" {
			tagErr += "=" + fieldErr.Param()
		}
		failedFields = append(failedFields, fmt.Sprintf("%s: %s", fieldErr.Namespace(), tagErr))
	}

	return invalid(fmt.Sprintf("invalid fields in %s config -> %s", env, strings.Join(failedFields, ",  ")))
}

func invalid(msg string) error {
	return errx.New(msg, errx.WithCode(CodeInvalidConfig), errx.WithType(errx.T_Validation))
}
