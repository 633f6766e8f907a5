package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"gopkg.in/gomail.v2"
)

const smtpDialTimeout = 10 * time.Second

type smtpClient struct {
	cfg Config
}

// NewSMTPClient creates an SMTP relay sender.
func NewSMTPClient(cfg Config) (EmailSender, error) {
	if cfg.SMTP.Host == "" {
		return nil, fmt.Errorf("%w: SMTP_HOST is required", ErrInvalidConfig)
	}
	if cfg.SMTP.Port <= 0 || cfg.SMTP.Port > 65535 {
		return nil, fmt.Errorf("%w: SMTP_PORT must be between 1 and 65535", ErrInvalidConfig)
	}
	switch cfg.SMTP.Encryption {
	case EncryptionSSL, EncryptionSTARTTLS, EncryptionNone:
	default:
		return nil, fmt.Errorf("%w: SMTP_ENCRYPTION must be %q, %q or %q",
			ErrInvalidConfig, EncryptionSSL, EncryptionSTARTTLS, EncryptionNone)
	}
	if err := validateIdentity(cfg); err != nil {
		return nil, err
	}
	return &smtpClient{cfg: cfg}, nil
}

// MustNewSMTPClient is NewSMTPClient that panics on invalid config.
func MustNewSMTPClient(cfg Config) EmailSender {
	c, err := NewSMTPClient(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// SendEmail delivers one HTML message over a fresh relay connection.
// The message is composed with gomail and submitted with go-smtp, which
// lets each encryption mode be enforced exactly.
func (c *smtpClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.cfg.FromEmail, c.cfg.FromName)
	m.SetHeader("To", params.SendTo)
	if params.ReplyTo != "" {
		m.SetHeader("Reply-To", params.ReplyTo)
	}
	m.SetHeader("Subject", params.Subject)
	m.SetBody("text/html", params.BodyHTML)

	var raw bytes.Buffer
	if _, err := m.WriteTo(&raw); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)
	}

	if err := c.submit(ctx, params.SendTo, &raw); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrFailedToSendEmail, ctxErr)
		}
		return fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)
	}
	return nil
}

func (c *smtpClient) submit(ctx context.Context, to string, msg *bytes.Buffer) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	var client *smtp.Client
	if c.cfg.SMTP.Encryption == EncryptionSTARTTLS {
		// Fails when the relay does not advertise STARTTLS.
		if client, err = smtp.NewClientStartTLS(conn, c.tlsConfig()); err != nil {
			return err
		}
	} else {
		client = smtp.NewClient(conn)
	}
	defer client.Close()

	if c.cfg.SMTP.Username != "" {
		if err := client.Auth(c.saslClient(client)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}
	if err := client.SendMail(c.cfg.FromEmail, []string{to}, msg); err != nil {
		return err
	}
	return client.Quit()
}

func (c *smtpClient) dial(ctx context.Context) (net.Conn, error) {
	s := c.cfg.SMTP
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	d := &net.Dialer{Timeout: smtpDialTimeout}
	if s.Encryption == EncryptionSSL {
		td := &tls.Dialer{NetDialer: d, Config: c.tlsConfig()}
		return td.DialContext(ctx, "tcp", addr)
	}
	return d.DialContext(ctx, "tcp", addr)
}

func (c *smtpClient) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         c.cfg.SMTP.Host,
		InsecureSkipVerify: c.cfg.SMTP.TLSSkipVerify, //nolint:gosec // opt-in for self-signed relays
	}
}

// saslClient prefers PLAIN and falls back to LOGIN for relays that only
// offer the latter.
func (c *smtpClient) saslClient(client *smtp.Client) sasl.Client {
	s := c.cfg.SMTP
	if !client.SupportsAuth(sasl.Plain) && client.SupportsAuth(sasl.Login) {
		return sasl.NewLoginClient(s.Username, s.Password)
	}
	return sasl.NewPlainClient("", s.Username, s.Password)
}
