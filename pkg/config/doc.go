// Package config loads application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// a dotenv file is read once per process (a missing file is fine), then the
// environment is parsed into any struct annotated with `env` tags.
//
// Each package owns its configuration struct. The binary loads all of them
// once at startup and passes the values to constructors; nothing reads the
// environment after that.
//
// # Usage
//
//	type MailConfig struct {
//	    Recipient string `env:"RECIEPIENT_EMAIL,required"`
//	    Driver    string `env:"MAIL_DRIVER" envDefault:"smtp"`
//	}
//
//	var cfg MailConfig
//	if err := config.Load(&cfg); err != nil {
//	    // missing RECIEPIENT_EMAIL ends up here
//	}
//
// Use MustLoad when the process cannot run without the values.
//
// # Dotenv
//
// The dotenv file defaults to `.env` in the working directory and can be
// overridden with the ENV_FILE variable or by calling LoadDotenv explicitly
// before the first Load. Variables already present in the environment win
// over values from the file.
//
// # Errors
//
// Parsing failures are joined with ErrParsingConfig so the underlying
// `env` error (which names the offending variable) is preserved:
//
//	if errors.Is(err, config.ErrParsingConfig) { ... }
package config
