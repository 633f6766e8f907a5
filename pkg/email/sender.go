package email

import "fmt"

// NewSender builds the EmailSender selected by cfg.Driver.
func NewSender(cfg Config) (EmailSender, error) {
	switch cfg.Driver {
	case DriverSMTP, "":
		return NewSMTPClient(cfg)
	case DriverPostmark:
		return NewPostmarkClient(cfg)
	case DriverDev:
		if cfg.DevDir == "" {
			return nil, fmt.Errorf("%w: MAIL_DEV_DIR is required for the dev driver", ErrInvalidConfig)
		}
		return NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// validateIdentity checks the sender identity shared by the network drivers.
func validateIdentity(cfg Config) error {
	if cfg.FromEmail == "" {
		return fmt.Errorf("%w: SMTP_FROM_EMAIL is required", ErrInvalidConfig)
	}
	if !IsValidAddress(cfg.FromEmail) {
		return fmt.Errorf("%w: SMTP_FROM_EMAIL must be a valid email address", ErrInvalidConfig)
	}
	return nil
}
