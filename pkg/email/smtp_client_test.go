package email_test

import (
	"context"
	"net"
	"net/mail"
	"strconv"
	"testing"

	"github.com/emersion/go-sasl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazoacademy/learn/pkg/email"
	"github.com/fazoacademy/learn/pkg/email/emailtest"
)

func smtpConfig(host string, port int) email.Config {
	return email.Config{
		Driver:    email.DriverSMTP,
		Recipient: "office@example.com",
		FromEmail: "noreply@example.com",
		FromName:  "Fazo Academy",
		SMTP: email.SMTPConfig{
			Host:       host,
			Port:       port,
			Encryption: email.EncryptionNone,
		},
	}
}

func TestNewSMTPClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*email.Config)
		errMsg string
	}{
		{"missing host", func(c *email.Config) { c.SMTP.Host = "" }, "SMTP_HOST is required"},
		{"zero port", func(c *email.Config) { c.SMTP.Port = 0 }, "SMTP_PORT"},
		{"port out of range", func(c *email.Config) { c.SMTP.Port = 70000 }, "SMTP_PORT"},
		{"unknown encryption", func(c *email.Config) { c.SMTP.Encryption = "tls1.3" }, "SMTP_ENCRYPTION"},
		{"missing sender", func(c *email.Config) { c.FromEmail = "" }, "SMTP_FROM_EMAIL is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := smtpConfig("smtp.example.com", 465)
			tt.mutate(&cfg)

			client, err := email.NewSMTPClient(cfg)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.Panics(t, func() { email.MustNewSMTPClient(email.Config{}) })
}

func TestSMTPClient_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("delivers html message", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewServer(t)
		client, err := email.NewSMTPClient(smtpConfig(relay.Host, relay.Port))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "office@example.com",
			Subject:  "Course Enquiry",
			BodyHTML: "<h2>Course Enquiry</h2><p><strong>Name:</strong> Ann</p>",
			ReplyTo:  "ann@example.org",
		})
		require.NoError(t, err)

		msgs := relay.Messages()
		require.Len(t, msgs, 1)
		msg := msgs[0]

		assert.Equal(t, "noreply@example.com", msg.From)
		assert.Equal(t, []string{"office@example.com"}, msg.To)
		assert.Equal(t, "Course Enquiry", msg.Subject)
		assert.Equal(t, "ann@example.org", msg.Header.Get("Reply-To"))
		assert.Contains(t, msg.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, msg.Body, "<p><strong>Name:</strong> Ann</p>")

		from, err := mail.ParseAddress(msg.Header.Get("From"))
		require.NoError(t, err)
		assert.Equal(t, "Fazo Academy", from.Name)
		assert.Equal(t, "noreply@example.com", from.Address)
	})

	t.Run("rejected recipient", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewServer(t)
		relay.RejectRecipient("office@example.com")
		client, err := email.NewSMTPClient(smtpConfig(relay.Host, relay.Port))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "550")
		assert.Empty(t, relay.Messages())
	})

	t.Run("relay unreachable", func(t *testing.T) {
		t.Parallel()
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		_, port, _ := net.SplitHostPort(ln.Addr().String())
		require.NoError(t, ln.Close())
		p, _ := strconv.Atoi(port)

		client, err := email.NewSMTPClient(smtpConfig("127.0.0.1", p))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewServer(t)
		client, err := email.NewSMTPClient(smtpConfig(relay.Host, relay.Port))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err = client.SendEmail(ctx, validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, relay.Messages())
	})

	t.Run("invalid params", func(t *testing.T) {
		t.Parallel()
		client, err := email.NewSMTPClient(smtpConfig("127.0.0.1", 2525))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), email.SendEmailParams{})
		assert.ErrorIs(t, err, email.ErrInvalidParams)
	})
}

func TestSMTPClient_Encryption(t *testing.T) {
	t.Parallel()

	withTLS := func(cfg email.Config, enc email.Encryption) email.Config {
		cfg.SMTP.Encryption = enc
		cfg.SMTP.TLSSkipVerify = true
		cfg.SMTP.Username = "relay-user"
		cfg.SMTP.Password = "relay-pass"
		return cfg
	}

	t.Run("ssl with login", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewTLSServer(t, emailtest.WithCredentials("relay-user", "relay-pass"))
		client, err := email.NewSMTPClient(withTLS(smtpConfig(relay.Host, relay.Port), email.EncryptionSSL))
		require.NoError(t, err)

		require.NoError(t, client.SendEmail(context.Background(), validParams()))

		msgs := relay.Messages()
		require.Len(t, msgs, 1)
		assert.True(t, msgs[0].TLS)
		assert.Equal(t, "relay-user", msgs[0].Username)
		assert.Equal(t, []emailtest.Login{{Mechanism: sasl.Plain, Username: "relay-user", Password: "relay-pass"}}, relay.Logins())
	})

	t.Run("ssl falls back to LOGIN", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewTLSServer(t,
			emailtest.WithCredentials("relay-user", "relay-pass"),
			emailtest.WithAuthMechanisms(sasl.Login),
		)
		client, err := email.NewSMTPClient(withTLS(smtpConfig(relay.Host, relay.Port), email.EncryptionSSL))
		require.NoError(t, err)

		require.NoError(t, client.SendEmail(context.Background(), validParams()))

		logins := relay.Logins()
		require.Len(t, logins, 1)
		assert.Equal(t, sasl.Login, logins[0].Mechanism)
		assert.Len(t, relay.Messages(), 1)
	})

	t.Run("ssl rejects untrusted certificate", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewTLSServer(t)
		cfg := withTLS(smtpConfig(relay.Host, relay.Port), email.EncryptionSSL)
		cfg.SMTP.TLSSkipVerify = false
		client, err := email.NewSMTPClient(cfg)
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Empty(t, relay.Logins())
		assert.Empty(t, relay.Messages())
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewTLSServer(t, emailtest.WithCredentials("relay-user", "other"))
		client, err := email.NewSMTPClient(withTLS(smtpConfig(relay.Host, relay.Port), email.EncryptionSSL))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "535")
		assert.Empty(t, relay.Messages())
	})

	t.Run("starttls upgrades before login", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewStartTLSServer(t, emailtest.WithCredentials("relay-user", "relay-pass"))
		client, err := email.NewSMTPClient(withTLS(smtpConfig(relay.Host, relay.Port), email.EncryptionSTARTTLS))
		require.NoError(t, err)

		require.NoError(t, client.SendEmail(context.Background(), validParams()))

		msgs := relay.Messages()
		require.Len(t, msgs, 1)
		assert.True(t, msgs[0].TLS)
		assert.Equal(t, "relay-user", msgs[0].Username)
	})

	t.Run("starttls refuses relay without tls", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewServer(t)
		client, err := email.NewSMTPClient(withTLS(smtpConfig(relay.Host, relay.Port), email.EncryptionSTARTTLS))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "STARTTLS")
		assert.Empty(t, relay.Logins())
		assert.Empty(t, relay.Messages())
	})

	t.Run("none never upgrades", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewStartTLSServer(t)
		client, err := email.NewSMTPClient(smtpConfig(relay.Host, relay.Port))
		require.NoError(t, err)

		require.NoError(t, client.SendEmail(context.Background(), validParams()))

		msgs := relay.Messages()
		require.Len(t, msgs, 1)
		assert.False(t, msgs[0].TLS)
		assert.Empty(t, msgs[0].Username)
	})

	t.Run("plain login without tls", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewServer(t, emailtest.WithCredentials("relay-user", "relay-pass"))
		cfg := smtpConfig(relay.Host, relay.Port)
		cfg.SMTP.Username = "relay-user"
		cfg.SMTP.Password = "relay-pass"
		client, err := email.NewSMTPClient(cfg)
		require.NoError(t, err)

		require.NoError(t, client.SendEmail(context.Background(), validParams()))

		msgs := relay.Messages()
		require.Len(t, msgs, 1)
		assert.False(t, msgs[0].TLS)
		assert.Equal(t, "relay-user", msgs[0].Username)
	})

	t.Run("relay requiring auth rejects anonymous send", func(t *testing.T) {
		t.Parallel()
		relay := emailtest.NewServer(t, emailtest.WithCredentials("relay-user", "relay-pass"))
		client, err := email.NewSMTPClient(smtpConfig(relay.Host, relay.Port))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Empty(t, relay.Messages())
	})
}
