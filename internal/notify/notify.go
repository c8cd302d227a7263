package notify

import (
	"context"
	"os"
	"strings"

	"github.com/bashhack/scriptkit/internal/common"
	"github.com/bashhack/scriptkit/internal/config"
	"github.com/bashhack/scriptkit/internal/errors"
)

// Notifier delivers a direct message, optionally with a file, to a single
// recipient.
type Notifier interface {
	Notify(ctx context.Context, to, text, attachmentPath string) error
}

// Kind names a notification channel
type Kind string

const (
	KindTelegram Kind = "telegram"
	KindDiscord  Kind = "discord"
)

// ParseKind converts a channel name to a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindTelegram:
		return KindTelegram, nil
	case KindDiscord:
		return KindDiscord, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidConfiguration, "unknown notification channel %q (expected telegram or discord)", s)
	}
}

// New builds the notifier for kind using the token from the config file.
func New(kind string, file *config.File, logger common.Logger) (Notifier, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	if file == nil {
		file = &config.File{}
	}

	switch k {
	case KindTelegram:
		return NewTelegram(file.Telegram.Token, logger)
	default:
		return NewDiscord(file.Discord.Token, logger)
	}
}

// openAttachment opens path for upload. An empty path yields a nil file.
func openAttachment(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotifyFailed, "attachment: %v", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(errors.ErrNotifyFailed, "attachment: %v", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, errors.Wrapf(errors.ErrNotifyFailed, "attachment %s is a directory", path)
	}
	return f, nil
}

func loggerOrNop(logger common.Logger) common.Logger {
	if logger == nil {
		return common.NopLogger{}
	}
	return logger
}
