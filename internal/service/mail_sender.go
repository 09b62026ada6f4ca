package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/models"
)

const smtpDialTimeout = 10 * time.Second

// NewMailSender returns an SMTP sender when a relay URL is configured and
// a sender that only logs mails otherwise.
func NewMailSender(cfg *config.ServerConfig, log *logger.Logger) (MailSender, error) {
	if cfg.EmailSMTPURL() == "" {
		log.Warn().Str("func", "NewMailSender").Msg("no smtp url configured, mails are only logged")
		return &logMailSender{logger: log}, nil
	}
	return newSMTPMailSender(cfg.EmailSMTPURL(), log)
}

// logMailSender writes mails to the log instead of delivering them.
type logMailSender struct {
	logger *logger.Logger
}

func (s *logMailSender) Send(ctx context.Context, mail models.Mail) error {
	if err := validateMail(mail); err != nil {
		return err
	}

	// the body carries reset tokens, it stays out of info level logs
	log := logger.FromContext(ctx)
	log.Info().
		Str("from", mail.From).
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Msg("mail not sent, no smtp relay configured")
	log.Debug().
		Str("to", mail.To).
		Str("body", mail.Body).
		Msg("undelivered mail body")

	return nil
}

// smtpMailSender delivers mail through an SMTP relay given as
// smtp://[user[:password]@]host[:port] or smtps://... for implicit TLS.
// Plain smtp connections are upgraded with STARTTLS when the relay offers it.
type smtpMailSender struct {
	host     string
	addr     string
	implicit bool
	auth     smtp.Auth

	logger *logger.Logger
}

func newSMTPMailSender(rawURL string, log *logger.Logger) (*smtpMailSender, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSMTPURL, err)
	}

	var port string
	switch u.Scheme {
	case "smtp":
		port = "25"
	case "smtps":
		port = "465"
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidSMTPURL, u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidSMTPURL)
	}
	if u.Port() != "" {
		port = u.Port()
	}

	s := &smtpMailSender{
		host:     host,
		addr:     net.JoinHostPort(host, port),
		implicit: u.Scheme == "smtps",
		logger:   log,
	}
	if u.User != nil {
		password, _ := u.User.Password()
		s.auth = smtp.PlainAuth("", u.User.Username(), password, host)
	}

	return s, nil
}

func (s *smtpMailSender) Send(ctx context.Context, mail models.Mail) error {
	if err := validateMail(mail); err != nil {
		return err
	}

	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err = s.deliver(client, mail); err != nil {
		return err
	}

	return client.Quit()
}

func (s *smtpMailSender) dial(ctx context.Context) (*smtp.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, smtpDialTimeout)
	defer cancel()

	tlsConfig := &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}

	var (
		conn net.Conn
		err  error
	)
	if s.implicit {
		conn, err = (&tls.Dialer{Config: tlsConfig}).DialContext(ctx, "tcp", s.addr)
	} else {
		conn, err = (&net.Dialer{}).DialContext(ctx, "tcp", s.addr)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to smtp relay %s: %w", s.addr, err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error greeting smtp relay: %w", err)
	}

	if !s.implicit {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err = client.StartTLS(tlsConfig); err != nil {
				client.Close()
				return nil, fmt.Errorf("error starting tls: %w", err)
			}
		}
	}

	return client, nil
}

func (s *smtpMailSender) deliver(client *smtp.Client, mail models.Mail) error {
	if s.auth != nil {
		if err := client.Auth(s.auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(mail.From); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	if err := client.Rcpt(mail.To); err != nil {
		return fmt.Errorf("smtp RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err = w.Write(buildMessage(mail)); err != nil {
		w.Close()
		return fmt.Errorf("error writing message: %w", err)
	}

	return w.Close()
}

// validateMail rejects header injection through the address and subject
// fields.
func validateMail(mail models.Mail) error {
	if mail.From == "" || mail.To == "" {
		return fmt.Errorf("%w: sender and recipient are required", ErrInvalidMail)
	}
	for _, field := range []string{mail.From, mail.To, mail.Subject} {
		if strings.ContainsAny(field, "\r\n") {
			return fmt.Errorf("%w: header contains a line break", ErrInvalidMail)
		}
	}
	return nil
}

func buildMessage(mail models.Mail) []byte {
	var buf bytes.Buffer

	buf.WriteString("From: " + mail.From + "\r\n")
	buf.WriteString("To: " + mail.To + "\r\n")
	buf.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", mail.Subject) + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")

	body := strings.ReplaceAll(mail.Body, "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	buf.WriteString("\r\n")

	return buf.Bytes()
}
