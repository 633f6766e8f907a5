package email

// Driver selects the EmailSender implementation.
type Driver string

const (
	DriverSMTP     Driver = "smtp"
	DriverPostmark Driver = "postmark"
	DriverDev      Driver = "dev"
)

// Encryption is the SMTP connection security mode.
// Credentials are only sent after the mode's handshake has completed.
type Encryption string

const (
	// EncryptionSSL dials with implicit TLS (SMTPS, usually port 465).
	EncryptionSSL Encryption = "ssl"
	// EncryptionSTARTTLS dials plain and requires the STARTTLS upgrade
	// (usually port 587). A relay that does not offer it fails the send
	// before any credentials or message data are written.
	EncryptionSTARTTLS Encryption = "starttls"
	// EncryptionNone stays in plaintext for the whole session, even when
	// the relay advertises STARTTLS.
	EncryptionNone Encryption = "none"
)

// Config holds the mail settings shared by all drivers.
// The recipient variable keeps its historical spelling so existing .env
// files keep working.
type Config struct {
	Driver    Driver `env:"MAIL_DRIVER" envDefault:"smtp"`
	Recipient string `env:"RECIEPIENT_EMAIL,required,notEmpty"`
	FromEmail string `env:"SMTP_FROM_EMAIL"`
	FromName  string `env:"SMTP_FROM_NAME"`

	SMTP SMTPConfig

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	DevDir string `env:"MAIL_DEV_DIR" envDefault:"tmp/mail"`
}

// SMTPConfig holds the relay connection settings.
type SMTPConfig struct {
	Host          string     `env:"SMTP_HOST"`
	Port          int        `env:"SMTP_PORT" envDefault:"465"`
	Username      string     `env:"SMTP_USERNAME"`
	Password      string     `env:"SMTP_PASSWORD"`
	Encryption    Encryption `env:"SMTP_ENCRYPTION" envDefault:"ssl"`
	TLSSkipVerify bool       `env:"SMTP_TLS_SKIP_VERIFY"`
}
