// Package email delivers the site's account mail over SMTP.
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/boards-dev/boards/internal/config"
	"github.com/boards-dev/boards/internal/errors"
	"github.com/boards-dev/boards/internal/logger"
	"github.com/google/uuid"
)

const (
	implicitTLSPort = 465
	defaultTimeout  = 10 * time.Second

	resetSubject = "[Boards] Password reset"
)

const resetBody = `Hi there,

Someone asked for a password reset for the email address %s. Follow the link below:
%s

In case you forgot your username: %s

If clicking the link above doesn't work, please copy and paste the URL in a new browser window instead.

If you've received this mail in error, it's likely that another user entered your email address by mistake while trying to reset a password. If you didn't initiate the request, you don't need to take any further action and can safely disregard this email.

Thanks,

The Boards Team
`

type dialFunc func(ctx context.Context, address string) (net.Conn, error)

type Email struct {
	config *config.Email
	dial   dialFunc
	now    func() time.Time
}

func New(config *config.Email) *Email {
	e := &Email{config: config, now: time.Now}
	e.dial = e.dialServer
	return e
}

func (e *Email) IsCorrect(email string) error {
	_, err := mail.ParseAddress(email)
	if err != nil {
		return &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: 400}
	}
	return nil
}

// SendPasswordReset mails the reset link for one account.
func (e *Email) SendPasswordReset(ctx context.Context, to, username, link string) error {
	return e.deliver(ctx, to, resetSubject, fmt.Sprintf(resetBody, to, link, username))
}

func (e *Email) timeout() time.Duration {
	if e.config.Timeout <= 0 {
		return defaultTimeout
	}
	return time.Duration(e.config.Timeout) * time.Second
}

func (e *Email) address() string {
	return net.JoinHostPort(e.config.SMTPServer, strconv.Itoa(e.config.SMTPPort))
}

// dialServer opens the connection, wrapped in TLS right away on the
// implicit TLS port.
func (e *Email) dialServer(ctx context.Context, address string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: e.timeout()}
	if e.config.SMTPPort == implicitTLSPort {
		td := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: e.config.SMTPServer}}
		return td.DialContext(ctx, "tcp", address)
	}
	return dialer.DialContext(ctx, "tcp", address)
}

func (e *Email) deliver(ctx context.Context, to, subject, body string) error {
	address := e.address()
	conn, err := e.dial(ctx, address)
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server", "address", address, "error", err)
		return err
	}
	defer conn.Close()
	_ = conn.SetDeadline(e.now().Add(e.timeout()))

	client, err := smtp.NewClient(conn, e.config.SMTPServer)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	if _, isTLS := conn.(*tls.Conn); !isTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: e.config.SMTPServer}); err != nil {
				logger.Log.Error("failed to start TLS", "error", err)
				return err
			}
		}
	}
	if ok, _ := client.Extension("AUTH"); ok && e.config.Password != "" {
		auth := smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.SMTPServer)
		if err := client.Auth(auth); err != nil {
			logger.Log.Error("SMTP authentication failed", "error", err)
			return err
		}
	}

	if err := client.Mail(e.config.Username); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		logger.Log.Error("recipient rejected", "recipient", to, "error", err)
		return fmt.Errorf("smtp RCPT TO: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(e.buildMessage(to, subject, body)); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	return client.Quit()
}

func senderDomain(address string) string {
	if _, domain, ok := strings.Cut(address, "@"); ok && domain != "" {
		return domain
	}
	return "localhost"
}

func (e *Email) buildMessage(recipient, subject, body string) []byte {
	from := mail.Address{Name: e.config.SenderName, Address: e.config.Username}
	headers := []string{
		"Message-ID: <" + uuid.NewString() + "@" + senderDomain(e.config.Username) + ">",
		"Date: " + e.now().Format(time.RFC1123Z),
		"To: " + recipient,
		"From: " + from.String(),
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}
