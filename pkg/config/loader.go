package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotenvVar names the variable that overrides the default dotenv path.
const DotenvVar = "ENV_FILE"

const defaultDotenv = ".env"

var dotenvOnce sync.Once

// LoadDotenv reads the given dotenv files into the process environment.
// Unlike the implicit load performed by Load, a missing file is an error here.
// Calling it disables the implicit load.
func LoadDotenv(files ...string) error {
	var err error
	dotenvOnce.Do(func() {
		if loadErr := godotenv.Load(files...); loadErr != nil {
			err = errors.Join(ErrDotenv, loadErr)
		}
	})
	return err
}

// Load parses environment variables into v according to its `env` tags.
// The dotenv file is read before the first parse.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		path := os.Getenv(DotenvVar)
		if path == "" {
			path = defaultDotenv
		}
		// The file is optional: deployments usually inject real variables.
		_ = godotenv.Load(path)
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
