// Package cfgloader loads and validates application configuration at startup.
package cfgloader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Recognized values for the ENVIRONMENT variable.
const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

//nolint:gochecknoglobals // fixed set of deployment environments
var knownEnvironments = []string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}

// MustLoad reads ./config/${ENVIRONMENT}.yaml into a value of type T and
// exits the process on any failure.
//
// The loading pipeline is:
//  1. load .env into the process environment when the file exists,
//  2. expand ${VAR} references inside the YAML file,
//  3. unmarshal using `yaml` struct tags,
//  4. apply `default` struct tags to fields the file left unset,
//  5. check `validate` struct tags (go-playground/validator syntax).
//
// Example:
//
//	type Config struct {
//	    Host     string `yaml:"host" validate:"required"`
//	    Port     int    `yaml:"port" default:"8080"`
//	    LogLevel string `yaml:"log_level" default:"info"`
//	}
//
// The effective configuration is logged after loading, with fields tagged
// `mask:"true"` redacted. Pass WithSilent to suppress that output.
func MustLoad[T any](opts ...Option) T {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	var cfg T
	if reflect.ValueOf(cfg).Kind() == reflect.Pointer {
		fail("type parameter must be a struct, not a pointer")
	}

	_ = godotenv.Load()

	env := currentEnvironment()
	path := fmt.Sprintf("./config/%s.yaml", env)

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		fail("config file %s does not exist - every environment needs its own yaml file", path)
	case err != nil:
		fail("reading config file %s: %v", path, err)
	}

	expanded := []byte(os.ExpandEnv(string(raw)))
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		fail("unmarshaling %s config: %v", env, err)
	}

	if err := defaults.Set(&cfg); err != nil {
		fail("applying config defaults: %v", err)
	}

	if problems := validateConfig(&cfg); len(problems) > 0 {
		fail("invalid fields in %s config -> %s", env, strings.Join(problems, ",  "))
	}

	if !o.Silent {
		logLoadedConfig(&cfg)
	}

	return cfg
}

// fail reports a fatal configuration problem and stops the process.
func fail(format string, args ...any) {
	slog.Error("[cfgloader]: " + fmt.Sprintf(format, args...))
	os.Exit(1)
}

func currentEnvironment() string {
	env := os.Getenv("ENVIRONMENT")
	if !slices.Contains(knownEnvironments, env) {
		fail("ENVIRONMENT is %q; must be one of: %s", env, strings.Join(knownEnvironments, ", "))
	}
	return env
}

// validateConfig returns one description per failed field, or nil when the
// configuration is valid.
func validateConfig(cfg any) []string {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		problems = append(problems, fmt.Sprintf("%s: %s", fe.Namespace(), rule))
	}
	return problems
}
