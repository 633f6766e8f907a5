// Package environment names the deployment environments the service knows
// about and carries the application identity settings.
package environment

import "strings"

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config identifies the running application.
type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"learn"`
}

// Environment returns the normalized environment of the config.
func (c Config) Environment() Environment {
	return Parse(c.Env)
}

// Parse maps an environment name, including the short aliases "prod",
// "stage" and "dev", onto a known Environment. Unknown names are treated
// as Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}
