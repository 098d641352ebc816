package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"go.uber.org/zap"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Mailer interface {
	Send(to, subject, body string, attachment *Attachment) error
}

// LogMailer writes messages to the log instead of sending them. It is the
// fallback when SMTP is not configured.
type LogMailer struct {
	Logger *zap.Logger
}

func (m LogMailer) Send(to, subject, body string, attachment *Attachment) error {
	fields := []zap.Field{zap.String("to", to), zap.String("subject", subject), zap.String("body", body)}
	if attachment != nil {
		fields = append(fields, zap.String("attachment", attachment.Filename), zap.Int("attachment_bytes", len(attachment.Data)))
	}
	logger := m.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("dev email", fields...)
	return nil
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == "" || cfg.User == "" || cfg.Password == "" || cfg.From == "" {
		return nil, errors.New("smtp not fully configured")
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}, nil
}

func (s *SMTPMailer) Send(to, subject, body string, attachment *Attachment) error {
	msg, err := buildMessage(s.cfg.From, to, subject, body, attachment)
	if err != nil {
		return err
	}
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	return s.send(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.From, []string{to}, msg)
}

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// buildMessage refuses addresses containing line breaks and Q-encodes the
// subject, so no caller-supplied value can start a header of its own.
func buildMessage(from, to, subject, body string, attachment *Attachment) ([]byte, error) {
	if strings.ContainsAny(from+to, "\r\n") {
		return nil, errors.New("mail address contains a line break")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", lineBreaks.Replace(subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if attachment == nil {
		buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		buf.WriteString(body + "\r\n")
		return buf.Bytes(), nil
	}

	w := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", w.Boundary())

	text, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=UTF-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := text.Write([]byte(body + "\r\n")); err != nil {
		return nil, err
	}

	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {attachment.ContentType},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", attachment.Filename)},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(wrap76(base64.StdEncoding.EncodeToString(attachment.Data)))); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func wrap76(s string) string {
	var b strings.Builder
	for len(s) > 76 {
		b.WriteString(s[:76] + "\r\n")
		s = s[76:]
	}
	b.WriteString(s)
	return b.String()
}
