package notify

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/bashhack/scriptkit/internal/common"
	"github.com/bashhack/scriptkit/internal/errors"
)

// telegramAPI is the subset of *bot.Bot used for direct messages
type telegramAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
}

// Telegram sends messages through a Telegram bot. Recipients are chat IDs
// or @channel usernames.
type Telegram struct {
	api    telegramAPI
	logger common.Logger
}

// NewTelegram creates a Telegram notifier for the bot token.
func NewTelegram(token string, logger common.Logger) (*Telegram, error) {
	if token == "" {
		return nil, errors.Wrap(errors.ErrNotifyFailed, "telegram token is not configured")
	}

	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotifyFailed, "failed to create telegram bot: %v", err)
	}

	return &Telegram{api: b, logger: loggerOrNop(logger)}, nil
}

// Notify sends text to the chat, as a document caption when a file is given.
func (t *Telegram) Notify(ctx context.Context, to, text, attachmentPath string) error {
	if to == "" {
		return errors.Wrap(errors.ErrNotifyFailed, "telegram recipient is required")
	}
	chatID := telegramChatID(to)

	file, err := openAttachment(attachmentPath)
	if err != nil {
		return err
	}

	if file == nil {
		_, err = t.api.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   text,
		})
	} else {
		defer file.Close()
		_, err = t.api.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:   chatID,
			Document: &models.InputFileUpload{Filename: filepath.Base(attachmentPath), Data: file},
			Caption:  text,
		})
	}
	if err != nil {
		t.logger.Error("Telegram message to %s failed: %v", to, err)
		return errors.Wrapf(errors.ErrNotifyFailed, "telegram to %s: %v", to, err)
	}

	t.logger.Info("Telegram message sent to %s", to)
	return nil
}

// telegramChatID returns numeric IDs as int64 and anything else unchanged
func telegramChatID(to string) any {
	if id, err := strconv.ParseInt(to, 10, 64); err == nil {
		return id
	}
	return to
}
