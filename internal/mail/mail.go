package mail

import (
	"context"
	"os"
	"path/filepath"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/bashhack/scriptkit/internal/common"
	"github.com/bashhack/scriptkit/internal/config"
	"github.com/bashhack/scriptkit/internal/errors"
)

const (
	// DefaultHost is the SMTP relay used when none is configured
	DefaultHost = "smtp.gmail.com"

	// DefaultPort is the SMTP submission port
	DefaultPort = 587

	// DefaultTimeout bounds the SMTP dial and each command
	DefaultTimeout = 30 * time.Second
)

// Settings configures the SMTP relay.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string

	// From is the sender used when a Message has none.
	// Defaults to donotreply@<hostname>.
	From string
}

// SettingsFromFile reads the sendEmail section of a config file and fills in
// defaults.
func SettingsFromFile(f *config.File) Settings {
	var s Settings
	if f != nil {
		s = Settings{
			Host:     f.Mail.Host,
			Port:     f.Mail.Port,
			Username: f.Mail.Username,
			Password: f.Mail.Password,
			From:     f.Mail.From,
		}
	}
	return s.withDefaults()
}

func (s Settings) withDefaults() Settings {
	if s.Host == "" {
		s.Host = DefaultHost
	}
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	if s.From == "" {
		s.From = defaultFrom()
	}
	return s
}

func defaultFrom() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	return "donotreply@" + hostname
}

// Message is a single email.
type Message struct {
	To      string
	Subject string

	// Text is the plain-text body. Newlines are line breaks.
	Text string

	// HTML is an optional alternative body
	HTML string

	// AttachmentPath is an optional file sent as application/octet-stream
	AttachmentPath string

	// From overrides Settings.From
	From string
}

// Sender delivers messages through an SMTP relay.
type Sender struct {
	settings Settings
	logger   common.Logger
	deliver  func(ctx context.Context, msg *gomail.Msg) error
}

// NewSender creates a Sender that dials the relay for every Send.
func NewSender(settings Settings, logger common.Logger) *Sender {
	if logger == nil {
		logger = common.NopLogger{}
	}
	s := &Sender{
		settings: settings.withDefaults(),
		logger:   logger,
	}
	s.deliver = s.dialAndSend
	return s
}

// Settings returns the effective settings after defaults
func (s *Sender) Settings() Settings {
	return s.settings
}

// Send builds msg and delivers it over STARTTLS with PLAIN auth.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}

	s.logger.Info("Sending email to %s with subject %q", msg.To, msg.Subject)
	if err := s.deliver(ctx, m); err != nil {
		s.logger.Error("Failed to send email to %s: %v", msg.To, err)
		return errors.Wrapf(errors.ErrMailFailed, "send to %s: %v", msg.To, err)
	}
	s.logger.Info("Email sent to %s", msg.To)
	return nil
}

func (s *Sender) build(msg Message) (*gomail.Msg, error) {
	if msg.To == "" {
		return nil, errors.Wrap(errors.ErrMailFailed, "recipient is required")
	}

	from := msg.From
	if from == "" {
		from = s.settings.From
	}

	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, errors.Wrapf(errors.ErrMailFailed, "invalid sender %q: %v", from, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, errors.Wrapf(errors.ErrMailFailed, "invalid recipient %q: %v", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()

	text := msg.Text
	if msg.AttachmentPath != "" {
		info, err := os.Stat(msg.AttachmentPath)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrMailFailed, "attachment: %v", err)
		}
		if info.IsDir() {
			return nil, errors.Wrapf(errors.ErrMailFailed, "attachment %s is a directory", msg.AttachmentPath)
		}
		m.AttachFile(msg.AttachmentPath,
			gomail.WithFileName(filepath.Base(msg.AttachmentPath)),
			gomail.WithFileContentType(gomail.TypeAppOctetStream))
		text += "\n\nThis file is attached: " + msg.AttachmentPath
	}

	m.SetBodyString(gomail.TypeTextPlain, text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}

	return m, nil
}

func (s *Sender) dialAndSend(ctx context.Context, m *gomail.Msg) error {
	client, err := gomail.NewClient(s.settings.Host,
		gomail.WithPort(s.settings.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.settings.Username),
		gomail.WithPassword(s.settings.Password),
		gomail.WithTimeout(DefaultTimeout),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, m)
}
