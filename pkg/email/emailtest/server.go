// Package emailtest runs an in-process SMTP relay for tests.
package emailtest

import (
	"bytes"
	"crypto/tls"
	"io"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// Message is one accepted delivery.
type Message struct {
	From    string
	To      []string
	Header  mail.Header
	Subject string
	Body    string

	// Username is the identity the session authenticated as, if any.
	Username string

	// TLS reports whether the message arrived over an encrypted connection.
	TLS bool
}

// Login is one AUTH attempt seen by the relay.
type Login struct {
	Mechanism string
	Username  string
	Password  string
}

// Option configures a Server.
type Option func(*Server)

// WithCredentials makes the relay require AUTH with the given credentials
// before MAIL FROM.
func WithCredentials(username, password string) Option {
	return func(s *Server) {
		s.username, s.password = username, password
		s.requireAuth = true
	}
}

// WithAuthMechanisms replaces the advertised SASL mechanisms (PLAIN by default).
func WithAuthMechanisms(mechs ...string) Option {
	return func(s *Server) {
		s.mechs = mechs
	}
}

// Server is an SMTP relay bound to a random loopback port.
type Server struct {
	Host string
	Port int

	username    string
	password    string
	requireAuth bool
	mechs       []string

	mu       sync.Mutex
	messages []Message
	logins   []Login
	rejectTo map[string]bool
}

// NewServer starts a plaintext relay that is closed when the test ends.
// AUTH is offered without TLS.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("emailtest: listen: %v", err)
	}
	return start(t, ln, nil, opts)
}

// NewTLSServer starts a relay that speaks implicit TLS (SMTPS) with a
// self-signed certificate for 127.0.0.1.
func NewTLSServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	cfg := &tls.Config{Certificates: []tls.Certificate{selfSignedCert(t)}}
	ln, err := tls.Listen("tcp", "127.0.0.1:0", cfg)
	if err != nil {
		t.Fatalf("emailtest: listen tls: %v", err)
	}
	return start(t, ln, cfg, opts)
}

// NewStartTLSServer starts a plaintext relay that advertises STARTTLS and
// only offers AUTH once the connection is encrypted.
func NewStartTLSServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("emailtest: listen: %v", err)
	}
	cfg := &tls.Config{Certificates: []tls.Certificate{selfSignedCert(t)}}
	return start(t, ln, cfg, opts)
}

func start(t testing.TB, ln net.Listener, tlsCfg *tls.Config, opts []Option) *Server {
	s := &Server{
		mechs:    []string{sasl.Plain},
		rejectTo: map[string]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	s.Host = host
	s.Port, _ = strconv.Atoi(port)

	srv := smtp.NewServer(&backend{srv: s})
	srv.Domain = "localhost"
	srv.TLSConfig = tlsCfg
	// Implicit TLS listeners are encrypted from the first byte, and a
	// STARTTLS relay must not accept credentials before the upgrade.
	srv.AllowInsecureAuth = tlsCfg == nil

	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Close() })
	return s
}

// RejectRecipient makes RCPT TO fail with 550 for addr.
func (s *Server) RejectRecipient(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectTo[strings.ToLower(addr)] = true
}

// Messages returns a copy of the accepted messages.
func (s *Server) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Logins returns every AUTH attempt, successful or not.
func (s *Server) Logins() []Login {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Login(nil), s.logins...)
}

func (s *Server) rejects(addr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejectTo[strings.ToLower(addr)]
}

func (s *Server) store(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

func (s *Server) login(mech, username, password string) error {
	s.mu.Lock()
	s.logins = append(s.logins, Login{Mechanism: mech, Username: username, Password: password})
	s.mu.Unlock()

	if s.requireAuth && (username != s.username || password != s.password) {
		return smtp.ErrAuthFailed
	}
	return nil
}

type backend struct {
	srv *Server
}

func (b *backend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &session{srv: b.srv, conn: c}, nil
}

type session struct {
	srv      *Server
	conn     *smtp.Conn
	username string
	from     string
	to       []string
}

func (s *session) AuthMechanisms() []string {
	return s.srv.mechs
}

func (s *session) Auth(mech string) (sasl.Server, error) {
	switch mech {
	case sasl.Plain:
		return sasl.NewPlainServer(func(_, username, password string) error {
			return s.authenticate(mech, username, password)
		}), nil
	case sasl.Login:
		return sasl.NewLoginServer(func(username, password string) error {
			return s.authenticate(mech, username, password)
		}), nil
	default:
		return nil, smtp.ErrAuthUnknownMechanism
	}
}

func (s *session) authenticate(mech, username, password string) error {
	if err := s.srv.login(mech, username, password); err != nil {
		return err
	}
	s.username = username
	return nil
}

func (s *session) Mail(from string, _ *smtp.MailOptions) error {
	if s.srv.requireAuth && s.username == "" {
		return smtp.ErrAuthRequired
	}
	s.from = from
	return nil
}

func (s *session) Rcpt(to string, _ *smtp.RcptOptions) error {
	if s.srv.rejects(to) {
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 1, 1},
			Message:      "mailbox unavailable",
		}
	}
	s.to = append(s.to, to)
	return nil
}

func (s *session) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	var body io.Reader = msg.Body
	if strings.EqualFold(msg.Header.Get("Content-Transfer-Encoding"), "quoted-printable") {
		body = quotedprintable.NewReader(msg.Body)
	}
	decoded, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	if err != nil {
		subject = msg.Header.Get("Subject")
	}

	_, isTLS := s.conn.TLSConnectionState()
	s.srv.store(Message{
		From:     s.from,
		To:       append([]string(nil), s.to...),
		Header:   msg.Header,
		Subject:  subject,
		Body:     string(decoded),
		Username: s.username,
		TLS:      isTLS,
	})
	return nil
}

func (s *session) Reset() {
	s.from = ""
	s.to = nil
}

func (s *session) Logout() error { return nil }
